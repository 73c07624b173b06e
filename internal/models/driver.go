// server/internal/models/driver.go
package models

import (
	"time"
)

// Driver approval statuses. A driver is created pending and is moved to
// approved or rejected by an administrator action.
const (
	DriverStatusPending  = "pending"
	DriverStatusApproved = "approved"
	DriverStatusRejected = "rejected"
)

type Driver struct {
	ID                string    `bson:"id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	Phone             string    `bson:"phone" json:"phone"`
	LicenseNumber     string    `bson:"licenseNumber" json:"licenseNumber"`
	Region            string    `bson:"region" json:"region"`
	SubArea           string    `bson:"subArea" json:"subArea"`
	Status            string    `bson:"status" json:"status"` // pending, approved, rejected
	Available         bool      `bson:"available" json:"available"`
	AssignedShipments []string  `bson:"assignedShipments" json:"assignedShipments"` // tracking numbers
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}
