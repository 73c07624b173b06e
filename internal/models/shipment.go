// server/internal/models/shipment.go
package models

import (
	"strings"
	"time"
)

// Shipment lifecycle statuses. Pending through Delivered form the ordered
// main line; Cancelled and Returned are terminal side-branches.
const (
	ShipmentStatusPending        = "Pending"
	ShipmentStatusProcessing     = "Processing"
	ShipmentStatusInTransit      = "InTransit"
	ShipmentStatusOutForDelivery = "OutForDelivery"
	ShipmentStatusDelivered      = "Delivered"
	ShipmentStatusCancelled      = "Cancelled"
	ShipmentStatusReturned       = "Returned"
)

// Shipment types.
const (
	ShipmentTypeNormal    = "normal"
	ShipmentTypeDocuments = "documents"
)

type Shipment struct {
	ID             string    `bson:"id" json:"id"`
	TrackingNumber string    `bson:"trackingNumber" json:"trackingNumber"` // externally visible key
	Sender         Party     `bson:"sender" json:"sender"`
	Recipient      Party     `bson:"recipient" json:"recipient"`
	Type           string    `bson:"type" json:"type"` // normal, documents
	WeightKg       *float64  `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Status         string    `bson:"status" json:"status"`
	DriverID       string    `bson:"driverID,omitempty" json:"driverID,omitempty"`
	Notes          string    `bson:"notes" json:"notes"`
	ProofPhotoURL  string    `bson:"proofPhotoURL,omitempty" json:"proofPhotoURL,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the recognized lifecycle statuses.
// Spaced spellings like "In Transit" and "Out For Delivery" are in
// circulation alongside the compact forms and are accepted as-is; the stored
// value is never rewritten.
func ValidStatus(s string) bool {
	switch strings.ReplaceAll(s, " ", "") {
	case ShipmentStatusPending, ShipmentStatusProcessing, ShipmentStatusInTransit,
		ShipmentStatusOutForDelivery, ShipmentStatusDelivered,
		ShipmentStatusCancelled, ShipmentStatusReturned:
		return true
	}
	return false
}
