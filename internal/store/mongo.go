// server/internal/store/mongo.go
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shipping-admin-api-server/internal/models"
)

// Mongo implements Store on top of a Mongo database. Every call runs on the
// caller's context so a cancelled request abandons its query.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (s *Mongo) cities() *mongo.Collection    { return s.db.Collection("cities") }
func (s *Mongo) drivers() *mongo.Collection   { return s.db.Collection("drivers") }
func (s *Mongo) shipments() *mongo.Collection { return s.db.Collection("shipments") }
func (s *Mongo) users() *mongo.Collection     { return s.db.Collection("users") }

func listByCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
}

// --- Cities ---

func (s *Mongo) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	count, err := s.cities().CountDocuments(ctx, bson.M{"name": city.Name})
	if err != nil {
		return models.City{}, err
	}
	if count > 0 {
		return models.City{}, ErrDuplicate
	}
	if city.ID == "" {
		city.ID = uuid.New().String()
	}
	if city.ShippingTo == nil {
		city.ShippingTo = map[string]models.RouteRate{}
	}
	city.CreatedAt = time.Now()
	city.UpdatedAt = city.CreatedAt
	if _, err := s.cities().InsertOne(ctx, city); err != nil {
		return models.City{}, err
	}
	return city, nil
}

func (s *Mongo) ListCities(ctx context.Context) ([]models.City, error) {
	cursor, err := s.cities().Find(ctx, bson.M{}, listByCreation())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cities []models.City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []models.City{}
	}
	return cities, nil
}

func (s *Mongo) GetCity(ctx context.Context, id string) (models.City, error) {
	var city models.City
	err := s.cities().FindOne(ctx, bson.M{"id": id}).Decode(&city)
	if err == mongo.ErrNoDocuments {
		return models.City{}, ErrNotFound
	}
	if err != nil {
		return models.City{}, err
	}
	return city, nil
}

func (s *Mongo) UpdateCity(ctx context.Context, id string, city models.City) (models.City, error) {
	if city.ShippingTo == nil {
		city.ShippingTo = map[string]models.RouteRate{}
	}
	update := bson.M{"$set": bson.M{
		"name":          city.Name,
		"nameEn":        city.NameEn,
		"region":        city.Region,
		"type":          city.Type,
		"latitude":      city.Latitude,
		"longitude":     city.Longitude,
		"active":        city.Active,
		"localDelivery": city.LocalDelivery,
		"shippingTo":    city.ShippingTo,
		"updatedAt":     time.Now(),
	}}
	result, err := s.cities().UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return models.City{}, err
	}
	if result.MatchedCount == 0 {
		return models.City{}, ErrNotFound
	}
	return s.GetCity(ctx, id)
}

// DeleteCity removes the record only. Routes in other cities' shippingTo
// maps that point at the deleted city are left as-is; no cleanup policy is
// defined for them.
func (s *Mongo) DeleteCity(ctx context.Context, id string) error {
	result, err := s.cities().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Drivers ---

func (s *Mongo) CreateDriver(ctx context.Context, driver models.Driver) (models.Driver, error) {
	if driver.ID == "" {
		driver.ID = uuid.New().String()
	}
	if driver.Status == "" {
		driver.Status = models.DriverStatusPending
	}
	if driver.AssignedShipments == nil {
		driver.AssignedShipments = []string{}
	}
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt
	if _, err := s.drivers().InsertOne(ctx, driver); err != nil {
		return models.Driver{}, err
	}
	return driver, nil
}

func (s *Mongo) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	cursor, err := s.drivers().Find(ctx, bson.M{}, listByCreation())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	return drivers, nil
}

func (s *Mongo) GetDriver(ctx context.Context, id string) (models.Driver, error) {
	var driver models.Driver
	err := s.drivers().FindOne(ctx, bson.M{"id": id}).Decode(&driver)
	if err == mongo.ErrNoDocuments {
		return models.Driver{}, ErrNotFound
	}
	if err != nil {
		return models.Driver{}, err
	}
	return driver, nil
}

func (s *Mongo) UpdateDriver(ctx context.Context, id string, driver models.Driver) (models.Driver, error) {
	update := bson.M{"$set": bson.M{
		"name":          driver.Name,
		"phone":         driver.Phone,
		"licenseNumber": driver.LicenseNumber,
		"region":        driver.Region,
		"subArea":       driver.SubArea,
		"available":     driver.Available,
		"updatedAt":     time.Now(),
	}}
	result, err := s.drivers().UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return models.Driver{}, err
	}
	if result.MatchedCount == 0 {
		return models.Driver{}, ErrNotFound
	}
	return s.GetDriver(ctx, id)
}

func (s *Mongo) DeleteDriver(ctx context.Context, id string) error {
	result, err := s.drivers().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) SetDriverStatus(ctx context.Context, id, status string) (models.Driver, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := s.drivers().UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return models.Driver{}, err
	}
	if result.MatchedCount == 0 {
		return models.Driver{}, ErrNotFound
	}
	return s.GetDriver(ctx, id)
}

// --- Shipments ---

func (s *Mongo) CreateShipment(ctx context.Context, shipment models.Shipment) (models.Shipment, error) {
	count, err := s.shipments().CountDocuments(ctx, bson.M{"trackingNumber": shipment.TrackingNumber})
	if err != nil {
		return models.Shipment{}, err
	}
	if count > 0 {
		return models.Shipment{}, ErrDuplicate
	}
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	shipment.CreatedAt = time.Now()
	shipment.UpdatedAt = shipment.CreatedAt
	if _, err := s.shipments().InsertOne(ctx, shipment); err != nil {
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *Mongo) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	return s.findShipments(ctx, bson.M{})
}

func (s *Mongo) ListUnassignedShipments(ctx context.Context) ([]models.Shipment, error) {
	return s.findShipments(ctx, bson.M{"$or": bson.A{
		bson.M{"driverID": ""},
		bson.M{"driverID": bson.M{"$exists": false}},
	}})
}

func (s *Mongo) findShipments(ctx context.Context, filter bson.M) ([]models.Shipment, error) {
	cursor, err := s.shipments().Find(ctx, filter, listByCreation())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []models.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}
	return shipments, nil
}

func (s *Mongo) GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error) {
	var shipment models.Shipment
	err := s.shipments().FindOne(ctx, bson.M{"trackingNumber": trackingNumber}).Decode(&shipment)
	if err == mongo.ErrNoDocuments {
		return models.Shipment{}, ErrNotFound
	}
	if err != nil {
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *Mongo) UpdateShipment(ctx context.Context, trackingNumber string, shipment models.Shipment) (models.Shipment, error) {
	update := bson.M{"$set": bson.M{
		"sender":    shipment.Sender,
		"recipient": shipment.Recipient,
		"type":      shipment.Type,
		"weightKg":  shipment.WeightKg,
		"status":    shipment.Status,
		"notes":     shipment.Notes,
		"updatedAt": time.Now(),
	}}
	result, err := s.shipments().UpdateOne(ctx, bson.M{"trackingNumber": trackingNumber}, update)
	if err != nil {
		return models.Shipment{}, err
	}
	if result.MatchedCount == 0 {
		return models.Shipment{}, ErrNotFound
	}
	return s.GetShipmentByTracking(ctx, trackingNumber)
}

func (s *Mongo) DeleteShipment(ctx context.Context, trackingNumber string) error {
	result, err := s.shipments().DeleteOne(ctx, bson.M{"trackingNumber": trackingNumber})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.drivers().UpdateMany(ctx,
		bson.M{"assignedShipments": trackingNumber},
		bson.M{"$pull": bson.M{"assignedShipments": trackingNumber}})
	return err
}

func (s *Mongo) AssignDriver(ctx context.Context, trackingNumber, driverID string) (models.Shipment, error) {
	if _, err := s.GetDriver(ctx, driverID); err != nil {
		return models.Shipment{}, err
	}
	result, err := s.shipments().UpdateOne(ctx,
		bson.M{"trackingNumber": trackingNumber},
		bson.M{"$set": bson.M{"driverID": driverID, "updatedAt": time.Now()}})
	if err != nil {
		return models.Shipment{}, err
	}
	if result.MatchedCount == 0 {
		return models.Shipment{}, ErrNotFound
	}
	// Reassignment drops the tracking number from any previous driver.
	if _, err := s.drivers().UpdateMany(ctx,
		bson.M{"id": bson.M{"$ne": driverID}, "assignedShipments": trackingNumber},
		bson.M{"$pull": bson.M{"assignedShipments": trackingNumber}}); err != nil {
		return models.Shipment{}, err
	}
	if _, err := s.drivers().UpdateOne(ctx,
		bson.M{"id": driverID},
		bson.M{"$addToSet": bson.M{"assignedShipments": trackingNumber}}); err != nil {
		return models.Shipment{}, err
	}
	return s.GetShipmentByTracking(ctx, trackingNumber)
}

func (s *Mongo) SetShipmentProofPhoto(ctx context.Context, trackingNumber, url string) (models.Shipment, error) {
	result, err := s.shipments().UpdateOne(ctx,
		bson.M{"trackingNumber": trackingNumber},
		bson.M{"$set": bson.M{"proofPhotoURL": url, "updatedAt": time.Now()}})
	if err != nil {
		return models.Shipment{}, err
	}
	if result.MatchedCount == 0 {
		return models.Shipment{}, ErrNotFound
	}
	return s.GetShipmentByTracking(ctx, trackingNumber)
}

// --- Users ---

func (s *Mongo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	count, err := s.users().CountDocuments(ctx, bson.M{"phone": user.Phone})
	if err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if _, err := s.users().InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{}, listByCreation())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *Mongo) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Mongo) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Mongo) SetUserVerified(ctx context.Context, phone string) (models.User, error) {
	result, err := s.users().UpdateOne(ctx,
		bson.M{"phone": phone},
		bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now()}})
	if err != nil {
		return models.User{}, err
	}
	if result.MatchedCount == 0 {
		return models.User{}, ErrNotFound
	}
	return s.GetUserByPhone(ctx, phone)
}

func (s *Mongo) DeleteUser(ctx context.Context, id string) error {
	result, err := s.users().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Mongo) CountShipmentsBySender(ctx context.Context, phone string) (int, error) {
	count, err := s.shipments().CountDocuments(ctx, bson.M{"sender.phone": phone})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
