package routemap

import (
	"testing"

	"shipping-admin-api-server/internal/models"
)

func TestAddRouteInsertsNumericValues(t *testing.T) {
	shippingTo := map[string]models.RouteRate{}
	errs := AddRoute(shippingTo, RouteInput{
		Destination: "Jeddah",
		DistanceKm:  "950",
		Small:       "45",
		Medium:      "65",
		Large:       "95",
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(shippingTo) != 1 {
		t.Fatalf("expected exactly one route, got %d", len(shippingTo))
	}
	got, ok := shippingTo["Jeddah"]
	if !ok {
		t.Fatal("route to Jeddah not inserted")
	}
	want := models.RouteRate{DistanceKm: 950, Small: 45, Medium: 65, Large: 95}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAddRouteRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		in    RouteInput
		field string
	}{
		{"missing destination", RouteInput{DistanceKm: "10", Small: "1", Medium: "2", Large: "3"}, "destination"},
		{"missing distance", RouteInput{Destination: "Jeddah", Small: "1", Medium: "2", Large: "3"}, "distanceKm"},
		{"missing price", RouteInput{Destination: "Jeddah", DistanceKm: "10", Small: "1", Medium: "2"}, "large"},
		{"non-numeric distance", RouteInput{Destination: "Jeddah", DistanceKm: "far", Small: "1", Medium: "2", Large: "3"}, "distanceKm"},
		{"negative price", RouteInput{Destination: "Jeddah", DistanceKm: "10", Small: "-1", Medium: "2", Large: "3"}, "small"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shippingTo := map[string]models.RouteRate{"Dammam": {DistanceKm: 400}}
			errs := AddRoute(shippingTo, tc.in)
			if len(errs) == 0 {
				t.Fatal("expected a non-empty error map")
			}
			if _, ok := errs[tc.field]; !ok {
				t.Fatalf("expected error on field %q, got %v", tc.field, errs)
			}
			if len(shippingTo) != 1 {
				t.Fatalf("map mutated on failed add: %v", shippingTo)
			}
		})
	}
}

func TestRemoveRouteDeletesExactlyOneKey(t *testing.T) {
	shippingTo := map[string]models.RouteRate{
		"Jeddah": {DistanceKm: 950, Small: 45, Medium: 65, Large: 95},
		"Dammam": {DistanceKm: 400, Small: 30, Medium: 45, Large: 60},
	}
	RemoveRoute(shippingTo, "Jeddah")
	if _, ok := shippingTo["Jeddah"]; ok {
		t.Fatal("Jeddah still present after removal")
	}
	want := models.RouteRate{DistanceKm: 400, Small: 30, Medium: 45, Large: 60}
	if shippingTo["Dammam"] != want {
		t.Fatalf("other route changed: %+v", shippingTo["Dammam"])
	}

	// Removing an absent key is a no-op.
	RemoveRoute(shippingTo, "Abha")
	if len(shippingTo) != 1 {
		t.Fatalf("unexpected map size %d", len(shippingTo))
	}
}

func TestAvailableDestinations(t *testing.T) {
	all := []models.City{
		{Name: "Riyadh"},
		{Name: "Jeddah"},
		{Name: "Dammam"},
		{Name: "Abha"},
	}
	shippingTo := map[string]models.RouteRate{"Jeddah": {}}

	got := AvailableDestinations("Riyadh", shippingTo, all)
	for _, c := range got {
		if c.Name == "Riyadh" {
			t.Fatal("available destinations include the city itself")
		}
		if _, exists := shippingTo[c.Name]; exists {
			t.Fatalf("available destinations include existing route %q", c.Name)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(got))
	}
}

func TestValidateCity(t *testing.T) {
	valid := models.City{
		Name:      "Riyadh",
		NameEn:    "Riyadh",
		Region:    "Riyadh Province",
		Type:      models.CityTypeCapital,
		Latitude:  24.7136,
		Longitude: 46.6753,
		LocalDelivery: models.ParcelRates{
			Small: 10, Medium: 15, Large: 20,
		},
		ShippingTo: map[string]models.RouteRate{},
	}
	if errs := ValidateCity(valid); len(errs) != 0 {
		t.Fatalf("valid city rejected: %v", errs)
	}

	selfRoute := valid
	selfRoute.ShippingTo = map[string]models.RouteRate{"Riyadh": {DistanceKm: 1}}
	if errs := ValidateCity(selfRoute); errs["shippingTo"] == "" {
		t.Fatalf("self-route accepted: %v", errs)
	}

	bad := models.City{Type: "village", Latitude: 120, Longitude: -200}
	errs := ValidateCity(bad)
	for _, field := range []string{"name", "nameEn", "region", "type", "latitude", "longitude"} {
		if errs[field] == "" {
			t.Errorf("expected error for %q, got %v", field, errs)
		}
	}
}
