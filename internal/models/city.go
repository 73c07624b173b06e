// server/internal/models/city.go
package models

import (
	"time"
)

// City type tags.
const (
	CityTypeCapital  = "capital"
	CityTypeHoly     = "holy"
	CityTypeMajor    = "major"
	CityTypeOrdinary = "ordinary"
)

// RouteRate is one outbound shipping route: the distance to a destination
// city and the price per parcel size. Routes are directed; a route A->B does
// not imply B->A exists.
type RouteRate struct {
	DistanceKm float64 `bson:"distanceKm" json:"distanceKm"`
	Small      float64 `bson:"small" json:"small"`
	Medium     float64 `bson:"medium" json:"medium"`
	Large      float64 `bson:"large" json:"large"`
}

type City struct {
	ID            string               `bson:"id" json:"id"`
	Name          string               `bson:"name" json:"name"`     // localized name
	NameEn        string               `bson:"nameEn" json:"nameEn"` // English name
	Region        string               `bson:"region" json:"region"`
	Type          string               `bson:"type" json:"type"` // capital, holy, major, ordinary
	Latitude      float64              `bson:"latitude" json:"latitude"`
	Longitude     float64              `bson:"longitude" json:"longitude"`
	Active        bool                 `bson:"active" json:"active"`
	LocalDelivery ParcelRates          `bson:"localDelivery" json:"localDelivery"`
	ShippingTo    map[string]RouteRate `bson:"shippingTo" json:"shippingTo"` // destination city name -> route
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
