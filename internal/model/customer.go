package model

import "time"

// Address types. An address tagged "both" serves shipping and billing and
// competes with either pool for the default slot.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
	AddressBoth     = "both"
)

type Customer struct {
	ID          string `gorm:"primaryKey;size:64;not null" json:"id"`
	Email       string `gorm:"size:128;index" json:"email"`
	DisplayName string `gorm:"size:128" json:"displayName"`
	Phone       string `gorm:"size:32" json:"phone"`

	Addresses      []Address            `gorm:"foreignKey:CustomerID" json:"addresses"`
	PaymentMethods []SavedPaymentMethod `gorm:"foreignKey:CustomerID" json:"paymentMethods"`

	OrderCount    int `gorm:"not null" json:"orderCount"`
	LoyaltyPoints int `gorm:"not null" json:"loyaltyPoints"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	ID         string `gorm:"primaryKey;size:64;not null" json:"id"`
	CustomerID string `gorm:"size:64;index;not null" json:"-"`
	Type       string `gorm:"size:16;not null" json:"type"` // shipping, billing, both

	FullName string `gorm:"size:128" json:"fullName"`
	Line1    string `gorm:"size:256" json:"line1"`
	Line2    string `gorm:"size:256" json:"line2,omitempty"`
	City     string `gorm:"size:64" json:"city"`
	Region   string `gorm:"size:64" json:"region,omitempty"`
	Postcode string `gorm:"size:16" json:"postcode,omitempty"`
	Country  string `gorm:"size:2;not null" json:"country"`
	Phone    string `gorm:"size:32" json:"phone,omitempty"`

	IsDefault bool `gorm:"not null" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SavedPaymentMethod struct {
	ID         string `gorm:"primaryKey;size:64;not null" json:"id"`
	CustomerID string `gorm:"size:64;index;not null" json:"-"`

	// ProviderRef is the canonical provider id; the single place a saved
	// method points at its provider.
	ProviderRef string `gorm:"size:64;not null" json:"providerRef"`
	MethodType  string `gorm:"size:32;not null" json:"methodType"`

	// Display-only remnants of the instrument; never full card data.
	Label    string `gorm:"size:128" json:"label,omitempty"`
	Last4    string `gorm:"size:4" json:"last4,omitempty"`
	ExpMonth int    `json:"expMonth,omitempty"`
	ExpYear  int    `json:"expYear,omitempty"`

	// Token is the gateway-side vault reference for charging this method.
	Token string `gorm:"size:256" json:"-"`

	IsDefault bool `gorm:"not null" json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CoversType reports whether the address can serve the given address type.
func (a *Address) CoversType(t string) bool {
	return a.Type == AddressBoth || t == AddressBoth || a.Type == t
}
