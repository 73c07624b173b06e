package store

import (
	"context"
	"errors"
	"testing"

	"shipping-admin-api-server/internal/models"
)

func TestCityLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	city, err := m.CreateCity(ctx, models.City{Name: "Riyadh", NameEn: "Riyadh", Region: "Riyadh Province", Type: models.CityTypeCapital})
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if city.ID == "" {
		t.Fatal("no ID assigned")
	}
	if city.ShippingTo == nil {
		t.Fatal("ShippingTo not initialized")
	}

	if _, err := m.CreateCity(ctx, models.City{Name: "Riyadh"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicate", err)
	}

	city.ShippingTo["Jeddah"] = models.RouteRate{DistanceKm: 950, Small: 45, Medium: 65, Large: 95}
	updated, err := m.UpdateCity(ctx, city.ID, city)
	if err != nil {
		t.Fatalf("UpdateCity: %v", err)
	}
	if len(updated.ShippingTo) != 1 {
		t.Fatalf("route not persisted: %v", updated.ShippingTo)
	}

	if err := m.DeleteCity(ctx, city.ID); err != nil {
		t.Fatalf("DeleteCity: %v", err)
	}
	if _, err := m.GetCity(ctx, city.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted city still readable: %v", err)
	}
}

func TestListCitiesPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, name := range []string{"Riyadh", "Jeddah", "Dammam"} {
		if _, err := m.CreateCity(ctx, models.City{Name: name}); err != nil {
			t.Fatalf("CreateCity(%s): %v", name, err)
		}
	}
	cities, err := m.ListCities(ctx)
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	want := []string{"Riyadh", "Jeddah", "Dammam"}
	for i, name := range want {
		if cities[i].Name != name {
			t.Fatalf("order not preserved: got %q at %d, want %q", cities[i].Name, i, name)
		}
	}
}

func TestDriverStatusTransitions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	driver, err := m.CreateDriver(ctx, models.Driver{Name: "Ahmed", Phone: "+966500000001"})
	if err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	if driver.Status != models.DriverStatusPending {
		t.Fatalf("new driver status %q, want pending", driver.Status)
	}

	approved, err := m.SetDriverStatus(ctx, driver.ID, models.DriverStatusApproved)
	if err != nil {
		t.Fatalf("SetDriverStatus: %v", err)
	}
	if approved.Status != models.DriverStatusApproved {
		t.Fatalf("status %q after approve", approved.Status)
	}
}

func TestAssignDriver(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	driver, _ := m.CreateDriver(ctx, models.Driver{Name: "Ahmed", Status: models.DriverStatusApproved, Available: true})
	other, _ := m.CreateDriver(ctx, models.Driver{Name: "Salem", Status: models.DriverStatusApproved, Available: true})
	shipment, err := m.CreateShipment(ctx, models.Shipment{TrackingNumber: "SHP-TEST0001", Status: models.ShipmentStatusPending})
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}

	unassigned, _ := m.ListUnassignedShipments(ctx)
	if len(unassigned) != 1 {
		t.Fatalf("expected 1 unassigned shipment, got %d", len(unassigned))
	}

	assigned, err := m.AssignDriver(ctx, shipment.TrackingNumber, driver.ID)
	if err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if assigned.DriverID != driver.ID {
		t.Fatalf("driverID %q", assigned.DriverID)
	}
	got, _ := m.GetDriver(ctx, driver.ID)
	if len(got.AssignedShipments) != 1 || got.AssignedShipments[0] != shipment.TrackingNumber {
		t.Fatalf("driver assignments %v", got.AssignedShipments)
	}

	unassigned, _ = m.ListUnassignedShipments(ctx)
	if len(unassigned) != 0 {
		t.Fatalf("expected 0 unassigned shipments, got %d", len(unassigned))
	}

	// Reassignment moves the tracking number between drivers.
	if _, err := m.AssignDriver(ctx, shipment.TrackingNumber, other.ID); err != nil {
		t.Fatalf("AssignDriver (reassign): %v", err)
	}
	prev, _ := m.GetDriver(ctx, driver.ID)
	if len(prev.AssignedShipments) != 0 {
		t.Fatalf("previous driver keeps assignment: %v", prev.AssignedShipments)
	}
	next, _ := m.GetDriver(ctx, other.ID)
	if len(next.AssignedShipments) != 1 {
		t.Fatalf("new driver assignments %v", next.AssignedShipments)
	}
}

func TestDeleteShipmentClearsDriverAssignment(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	driver, _ := m.CreateDriver(ctx, models.Driver{Name: "Ahmed"})
	shipment, _ := m.CreateShipment(ctx, models.Shipment{TrackingNumber: "SHP-TEST0002"})
	if _, err := m.AssignDriver(ctx, shipment.TrackingNumber, driver.ID); err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if err := m.DeleteShipment(ctx, shipment.TrackingNumber); err != nil {
		t.Fatalf("DeleteShipment: %v", err)
	}
	got, _ := m.GetDriver(ctx, driver.ID)
	if len(got.AssignedShipments) != 0 {
		t.Fatalf("dangling assignment after delete: %v", got.AssignedShipments)
	}
}

func TestUserLifecycleAndShipmentCount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	user, err := m.CreateUser(ctx, models.User{Phone: "+966500000002", Role: models.RoleUser, UserType: models.UserTypeIndividual})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := m.CreateUser(ctx, models.User{Phone: "+966500000002"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate phone: got %v", err)
	}

	verified, err := m.SetUserVerified(ctx, user.Phone)
	if err != nil || !verified.Verified {
		t.Fatalf("SetUserVerified: %v (verified=%v)", err, verified.Verified)
	}

	for i := 0; i < 2; i++ {
		_, err := m.CreateShipment(ctx, models.Shipment{
			TrackingNumber: "SHP-CNT000" + string(rune('0'+i)),
			Sender:         models.Party{Phone: user.Phone},
		})
		if err != nil {
			t.Fatalf("CreateShipment: %v", err)
		}
	}
	count, err := m.CountShipmentsBySender(ctx, user.Phone)
	if err != nil || count != 2 {
		t.Fatalf("CountShipmentsBySender = %d, %v", count, err)
	}

	if err := m.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := m.GetUserByPhone(ctx, user.Phone); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted user still readable by phone: %v", err)
	}
}

func TestGetCityDetachesRouteMap(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.CreateCity(ctx, models.City{
		Name: "Riyadh", NameEn: "Riyadh", Region: "Riyadh Province", Type: models.CityTypeCapital,
		ShippingTo: map[string]models.RouteRate{
			"Jeddah": {DistanceKm: 950, Small: 45, Medium: 65, Large: 95},
		},
	})
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}

	// Editing the map returned by a read must not touch stored state until
	// the edit is written back.
	got, err := m.GetCity(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCity: %v", err)
	}
	got.ShippingTo["Dammam"] = models.RouteRate{DistanceKm: 400, Small: 20, Medium: 30, Large: 50}
	delete(got.ShippingTo, "Jeddah")

	stored, err := m.GetCity(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCity: %v", err)
	}
	if _, ok := stored.ShippingTo["Dammam"]; ok {
		t.Error("stored city mutated through the value returned by GetCity")
	}
	if _, ok := stored.ShippingTo["Jeddah"]; !ok {
		t.Error("stored route lost through the value returned by GetCity")
	}

	// Same for lists and for the caller's own map after a write.
	list, err := m.ListCities(ctx)
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	delete(list[0].ShippingTo, "Jeddah")
	stored, _ = m.GetCity(ctx, created.ID)
	if len(stored.ShippingTo) != 1 {
		t.Error("stored city mutated through the value returned by ListCities")
	}

	input := stored
	if _, err := m.UpdateCity(ctx, created.ID, input); err != nil {
		t.Fatalf("UpdateCity: %v", err)
	}
	input.ShippingTo["Makkah"] = models.RouteRate{DistanceKm: 80, Small: 10, Medium: 15, Large: 20}
	stored, _ = m.GetCity(ctx, created.ID)
	if _, ok := stored.ShippingTo["Makkah"]; ok {
		t.Error("stored city mutated through the map passed to UpdateCity")
	}
}

func TestGetDriverDetachesAssignments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	driver, err := m.CreateDriver(ctx, models.Driver{
		Name: "Ahmed", Phone: "0501111111", LicenseNumber: "L-100", Region: "Riyadh",
		Status: models.DriverStatusApproved, Available: true,
	})
	if err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	if _, err := m.CreateShipment(ctx, models.Shipment{
		TrackingNumber: "SHP-DETACH01",
		Sender:         models.Party{Name: "S", Phone: "0500000001"},
		Recipient:      models.Party{Name: "R", Phone: "0500000002"},
		Type:           models.ShipmentTypeNormal,
		Status:         models.ShipmentStatusPending,
	}); err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}
	if _, err := m.AssignDriver(ctx, "SHP-DETACH01", driver.ID); err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}

	got, err := m.GetDriver(ctx, driver.ID)
	if err != nil {
		t.Fatalf("GetDriver: %v", err)
	}
	got.AssignedShipments[0] = "SHP-TAMPERED"

	stored, _ := m.GetDriver(ctx, driver.ID)
	if stored.AssignedShipments[0] != "SHP-DETACH01" {
		t.Error("stored driver mutated through the slice returned by GetDriver")
	}
}
