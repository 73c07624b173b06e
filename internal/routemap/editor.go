// server/internal/routemap/editor.go
package routemap

import (
	"strconv"
	"strings"

	"shipping-admin-api-server/internal/models"
)

// RouteInput is the staging record for one not-yet-added route. Distance and
// prices arrive as form strings and are coerced to numbers on validation.
type RouteInput struct {
	Destination string `json:"destination"`
	DistanceKm  string `json:"distanceKm"`
	Small       string `json:"small"`
	Medium      string `json:"medium"`
	Large       string `json:"large"`
}

// Validate checks the staging record and returns a map of field-level error
// messages, empty when the input is acceptable.
func (in RouteInput) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Destination) == "" {
		errs["destination"] = "destination city is required"
	}
	checkNumber(errs, "distanceKm", in.DistanceKm)
	checkNumber(errs, "small", in.Small)
	checkNumber(errs, "medium", in.Medium)
	checkNumber(errs, "large", in.Large)
	return errs
}

func checkNumber(errs map[string]string, field, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs[field] = field + " is required"
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs[field] = field + " must be a number"
		return
	}
	if v < 0 {
		errs[field] = field + " must not be negative"
	}
}

// rate coerces an already-validated input into its numeric form.
func (in RouteInput) rate() models.RouteRate {
	parse := func(raw string) float64 {
		v, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return v
	}
	return models.RouteRate{
		DistanceKm: parse(in.DistanceKm),
		Small:      parse(in.Small),
		Medium:     parse(in.Medium),
		Large:      parse(in.Large),
	}
}

// AddRoute validates in and, on success, inserts exactly one entry into
// shippingTo keyed by the destination name. On failure the map is left
// untouched and the returned error map is non-empty; there are no partial
// writes.
func AddRoute(shippingTo map[string]models.RouteRate, in RouteInput) map[string]string {
	errs := in.Validate()
	if len(errs) > 0 {
		return errs
	}
	shippingTo[strings.TrimSpace(in.Destination)] = in.rate()
	return map[string]string{}
}

// RemoveRoute deletes the route to destination, leaving every other entry
// unchanged. Removing an absent destination is a no-op.
func RemoveRoute(shippingTo map[string]models.RouteRate, destination string) {
	delete(shippingTo, destination)
}

// AvailableDestinations returns every city from all that can still be added
// as a route target: the city being edited is excluded (no self-routes) and
// so is any city already present as a key in shippingTo (no duplicates).
// It is recomputed from current state on every call so the result is always
// consistent with the in-progress edit.
func AvailableDestinations(cityName string, shippingTo map[string]models.RouteRate, all []models.City) []models.City {
	out := make([]models.City, 0, len(all))
	for _, c := range all {
		if c.Name == cityName {
			continue
		}
		if _, exists := shippingTo[c.Name]; exists {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ValidateCity performs whole-record validation before a create or update
// call. An empty route map is valid. Errors are keyed by field name and are
// non-fatal: the caller keeps the draft and reports them back.
func ValidateCity(c models.City) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(c.NameEn) == "" {
		errs["nameEn"] = "English name is required"
	}
	if strings.TrimSpace(c.Region) == "" {
		errs["region"] = "region is required"
	}
	switch c.Type {
	case models.CityTypeCapital, models.CityTypeHoly, models.CityTypeMajor, models.CityTypeOrdinary:
	default:
		errs["type"] = "type must be one of capital, holy, major, ordinary"
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		errs["latitude"] = "latitude must be between -90 and 90"
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		errs["longitude"] = "longitude must be between -180 and 180"
	}
	if c.LocalDelivery.Small < 0 || c.LocalDelivery.Medium < 0 || c.LocalDelivery.Large < 0 {
		errs["localDelivery"] = "local delivery prices must not be negative"
	}
	for dest, rate := range c.ShippingTo {
		if dest == c.Name {
			errs["shippingTo"] = "a city must not hold a route to itself"
			continue
		}
		if rate.DistanceKm < 0 || rate.Small < 0 || rate.Medium < 0 || rate.Large < 0 {
			errs["shippingTo."+dest] = "distance and prices must not be negative"
		}
	}
	return errs
}
