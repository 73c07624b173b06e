// server/internal/models/common.go
package models

// ParcelRates holds one price per parcel size, in the operation's currency unit.
type ParcelRates struct {
	Small  float64 `bson:"small" json:"small"`
	Medium float64 `bson:"medium" json:"medium"`
	Large  float64 `bson:"large" json:"large"`
}

// NationalAddress is a structured address following the national format.
type NationalAddress struct {
	Building   string `bson:"building" json:"building"`
	Street     string `bson:"street" json:"street"`
	District   string `bson:"district" json:"district"`
	City       string `bson:"city" json:"city"`
	Region     string `bson:"region" json:"region"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
}

// Address is a tagged union: either an opaque short code or a structured
// national address. Exactly one arm must be set.
type Address struct {
	ShortCode string           `bson:"shortCode,omitempty" json:"shortCode,omitempty"`
	National  *NationalAddress `bson:"national,omitempty" json:"national,omitempty"`
}

// Valid reports whether exactly one arm of the union is populated.
func (a Address) Valid() bool {
	hasShortCode := a.ShortCode != ""
	hasNational := a.National != nil
	return hasShortCode != hasNational
}

// Party is one end of a shipment: who sends or receives it.
type Party struct {
	Name    string  `bson:"name" json:"name"`
	Phone   string  `bson:"phone" json:"phone"`
	Address Address `bson:"address" json:"address"`
}
