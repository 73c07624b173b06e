// server/internal/store/store.go
package store

import (
	"context"
	"errors"

	"shipping-admin-api-server/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence interface used by the API handlers. The Mongo
// implementation backs real deployments; the memory implementation backs
// tests and Mongo-less runs. Collections keep insertion order on list calls.
type Store interface {
	// Cities
	CreateCity(ctx context.Context, city models.City) (models.City, error)
	ListCities(ctx context.Context) ([]models.City, error)
	GetCity(ctx context.Context, id string) (models.City, error)
	UpdateCity(ctx context.Context, id string, city models.City) (models.City, error)
	DeleteCity(ctx context.Context, id string) error

	// Drivers
	CreateDriver(ctx context.Context, driver models.Driver) (models.Driver, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id string) (models.Driver, error)
	UpdateDriver(ctx context.Context, id string, driver models.Driver) (models.Driver, error)
	DeleteDriver(ctx context.Context, id string) error
	SetDriverStatus(ctx context.Context, id, status string) (models.Driver, error)

	// Shipments, keyed by tracking number (the externally visible key)
	CreateShipment(ctx context.Context, shipment models.Shipment) (models.Shipment, error)
	ListShipments(ctx context.Context) ([]models.Shipment, error)
	ListUnassignedShipments(ctx context.Context) ([]models.Shipment, error)
	GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error)
	UpdateShipment(ctx context.Context, trackingNumber string, shipment models.Shipment) (models.Shipment, error)
	DeleteShipment(ctx context.Context, trackingNumber string) error
	AssignDriver(ctx context.Context, trackingNumber, driverID string) (models.Shipment, error)
	SetShipmentProofPhoto(ctx context.Context, trackingNumber, url string) (models.Shipment, error)

	// Users
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (models.User, error)
	SetUserVerified(ctx context.Context, phone string) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	CountShipmentsBySender(ctx context.Context, phone string) (int, error)
}
