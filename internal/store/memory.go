// server/internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shipping-admin-api-server/internal/models"
)

// Memory is a mutex-guarded in-memory store. It preserves insertion order on
// list calls via per-collection key slices.
type Memory struct {
	mu sync.Mutex

	cities     map[string]models.City
	cityOrder  []string
	drivers    map[string]models.Driver
	drvOrder   []string
	shipments  map[string]models.Shipment // tracking number -> shipment
	shipOrder  []string
	users      map[string]models.User
	userOrder  []string
	usersPhone map[string]string // phone -> user id
}

func NewMemory() *Memory {
	return &Memory{
		cities:     map[string]models.City{},
		drivers:    map[string]models.Driver{},
		shipments:  map[string]models.Shipment{},
		users:      map[string]models.User{},
		usersPhone: map[string]string{},
	}
}

// cloneCity detaches the route map so callers never share it with stored
// state. Every read and write crosses this boundary; without it a caller
// editing routes would mutate the store outside the mutex.
func cloneCity(c models.City) models.City {
	routes := make(map[string]models.RouteRate, len(c.ShippingTo))
	for dest, rate := range c.ShippingTo {
		routes[dest] = rate
	}
	c.ShippingTo = routes
	return c
}

// cloneDriver detaches the assignment list for the same reason.
func cloneDriver(d models.Driver) models.Driver {
	d.AssignedShipments = append([]string{}, d.AssignedShipments...)
	return d
}

// --- Cities ---

func (m *Memory) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cities {
		if existing.Name == city.Name {
			return models.City{}, ErrDuplicate
		}
	}
	if city.ID == "" {
		city.ID = uuid.New().String()
	}
	if city.ShippingTo == nil {
		city.ShippingTo = map[string]models.RouteRate{}
	}
	city.CreatedAt = time.Now()
	city.UpdatedAt = city.CreatedAt
	m.cities[city.ID] = cloneCity(city)
	m.cityOrder = append(m.cityOrder, city.ID)
	return city, nil
}

func (m *Memory) ListCities(ctx context.Context) ([]models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.City, 0, len(m.cityOrder))
	for _, id := range m.cityOrder {
		out = append(out, cloneCity(m.cities[id]))
	}
	return out, nil
}

func (m *Memory) GetCity(ctx context.Context, id string) (models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	city, ok := m.cities[id]
	if !ok {
		return models.City{}, ErrNotFound
	}
	return cloneCity(city), nil
}

func (m *Memory) UpdateCity(ctx context.Context, id string, city models.City) (models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.cities[id]
	if !ok {
		return models.City{}, ErrNotFound
	}
	city.ID = existing.ID
	city.CreatedAt = existing.CreatedAt
	city.UpdatedAt = time.Now()
	if city.ShippingTo == nil {
		city.ShippingTo = map[string]models.RouteRate{}
	}
	m.cities[id] = cloneCity(city)
	return city, nil
}

// DeleteCity removes the record only. Routes in other cities' shippingTo
// maps that point at the deleted city are left as-is; no cleanup policy is
// defined for them.
func (m *Memory) DeleteCity(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cities[id]; !ok {
		return ErrNotFound
	}
	delete(m.cities, id)
	m.cityOrder = removeKey(m.cityOrder, id)
	return nil
}

// --- Drivers ---

func (m *Memory) CreateDriver(ctx context.Context, driver models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.drivers[driver.ID] = cloneDriver(driver)
	m.drvOrder = append(m.drvOrder, driver.ID)
	return driver, nil
}

func (m *Memory) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Driver, 0, len(m.drvOrder))
	for _, id := range m.drvOrder {
		out = append(out, cloneDriver(m.drivers[id]))
	}
	return out, nil
}

func (m *Memory) GetDriver(ctx context.Context, id string) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	return cloneDriver(driver), nil
}

func (m *Memory) UpdateDriver(ctx context.Context, id string, driver models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	driver.ID = existing.ID
	driver.AssignedShipments = append([]string{}, existing.AssignedShipments...)
	driver.CreatedAt = existing.CreatedAt
	driver.UpdatedAt = time.Now()
	m.drivers[id] = cloneDriver(driver)
	return driver, nil
}

func (m *Memory) DeleteDriver(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return ErrNotFound
	}
	delete(m.drivers, id)
	m.drvOrder = removeKey(m.drvOrder, id)
	return nil
}

func (m *Memory) SetDriverStatus(ctx context.Context, id, status string) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, ErrNotFound
	}
	driver.Status = status
	driver.UpdatedAt = time.Now()
	m.drivers[id] = driver
	return cloneDriver(driver), nil
}

// --- Shipments ---

func (m *Memory) CreateShipment(ctx context.Context, shipment models.Shipment) (models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.shipments[shipment.TrackingNumber]; exists {
		return models.Shipment{}, ErrDuplicate
	}
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	shipment.CreatedAt = time.Now()
	shipment.UpdatedAt = shipment.CreatedAt
	m.shipments[shipment.TrackingNumber] = shipment
	m.shipOrder = append(m.shipOrder, shipment.TrackingNumber)
	return shipment, nil
}

func (m *Memory) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Shipment, 0, len(m.shipOrder))
	for _, tn := range m.shipOrder {
		out = append(out, m.shipments[tn])
	}
	return out, nil
}

func (m *Memory) ListUnassignedShipments(ctx context.Context) ([]models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Shipment{}
	for _, tn := range m.shipOrder {
		if s := m.shipments[tn]; s.DriverID == "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) GetShipmentByTracking(ctx context.Context, trackingNumber string) (models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment, ok := m.shipments[trackingNumber]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	return shipment, nil
}

func (m *Memory) UpdateShipment(ctx context.Context, trackingNumber string, shipment models.Shipment) (models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.shipments[trackingNumber]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	shipment.ID = existing.ID
	shipment.TrackingNumber = existing.TrackingNumber
	shipment.DriverID = existing.DriverID
	shipment.ProofPhotoURL = existing.ProofPhotoURL
	shipment.CreatedAt = existing.CreatedAt
	shipment.UpdatedAt = time.Now()
	m.shipments[trackingNumber] = shipment
	return shipment, nil
}

func (m *Memory) DeleteShipment(ctx context.Context, trackingNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipments[trackingNumber]; !ok {
		return ErrNotFound
	}
	delete(m.shipments, trackingNumber)
	m.shipOrder = removeKey(m.shipOrder, trackingNumber)
	m.unassignLocked(trackingNumber)
	return nil
}

func (m *Memory) AssignDriver(ctx context.Context, trackingNumber, driverID string) (models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment, ok := m.shipments[trackingNumber]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	if _, ok := m.drivers[driverID]; !ok {
		return models.Shipment{}, ErrNotFound
	}
	// Reassignment drops the tracking number from the previous driver.
	m.unassignLocked(trackingNumber)
	shipment.DriverID = driverID
	shipment.UpdatedAt = time.Now()
	m.shipments[trackingNumber] = shipment

	driver := m.drivers[driverID]
	driver.AssignedShipments = append(driver.AssignedShipments, trackingNumber)
	driver.UpdatedAt = time.Now()
	m.drivers[driverID] = driver
	return shipment, nil
}

func (m *Memory) SetShipmentProofPhoto(ctx context.Context, trackingNumber, url string) (models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment, ok := m.shipments[trackingNumber]
	if !ok {
		return models.Shipment{}, ErrNotFound
	}
	shipment.ProofPhotoURL = url
	shipment.UpdatedAt = time.Now()
	m.shipments[trackingNumber] = shipment
	return shipment, nil
}

func (m *Memory) unassignLocked(trackingNumber string) {
	for id, driver := range m.drivers {
		kept := driver.AssignedShipments[:0]
		for _, tn := range driver.AssignedShipments {
			if tn != trackingNumber {
				kept = append(kept, tn)
			}
		}
		if len(kept) != len(driver.AssignedShipments) {
			driver.AssignedShipments = kept
			m.drivers[id] = driver
		}
	}
}

// --- Users ---

func (m *Memory) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.usersPhone[user.Phone]; exists {
		return models.User{}, ErrDuplicate
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	m.userOrder = append(m.userOrder, user.ID)
	m.usersPhone[user.Phone] = user.ID
	return user, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.usersPhone[phone]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return m.users[id], nil
}

func (m *Memory) SetUserVerified(ctx context.Context, phone string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.usersPhone[phone]
	if !ok {
		return models.User{}, ErrNotFound
	}
	user := m.users[id]
	user.Verified = true
	user.UpdatedAt = time.Now()
	m.users[id] = user
	return user, nil
}

func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	delete(m.usersPhone, user.Phone)
	m.userOrder = removeKey(m.userOrder, id)
	return nil
}

func (m *Memory) CountShipmentsBySender(ctx context.Context, phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.shipments {
		if s.Sender.Phone == phone {
			count++
		}
	}
	return count, nil
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
