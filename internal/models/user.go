// server/internal/models/user.go
package models

import (
	"time"
)

// User roles.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

// User account types.
const (
	UserTypeIndividual = "individual"
	UserTypeCompany    = "company"
)

type User struct {
	ID       string `bson:"id" json:"id"`
	Phone    string `bson:"phone" json:"phone"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"`         // user, admin, driver
	UserType string `bson:"userType" json:"userType"` // individual, company
	Verified bool   `bson:"verified" json:"verified"`

	// Company fields, populated when userType is "company".
	StoreName              string `bson:"storeName,omitempty" json:"storeName,omitempty"`
	OfficialName           string `bson:"officialName,omitempty" json:"officialName,omitempty"`
	CommercialRegistration string `bson:"commercialRegistration,omitempty" json:"commercialRegistration,omitempty"`

	// ShipmentCount is derived at read time, never stored.
	ShipmentCount int `bson:"-" json:"shipmentCount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
