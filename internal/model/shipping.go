package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const ShippingTypePickup = "pickup"

type ShippingMethod struct {
	ID   string `gorm:"primaryKey;size:64;not null" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`
	// Type tags pickup methods; upstream rows are inconsistently tagged, so
	// pickup detection also checks id and name (see pricing.IsPickupMethod).
	Type     string          `gorm:"size:32" json:"type,omitempty"`
	BaseCost decimal.Decimal `gorm:"type:numeric;not null" json:"baseCost"`
	Currency string          `gorm:"size:8;not null" json:"currency"`

	EstimatedDays int  `json:"estimatedDays,omitempty"`
	Enabled       bool `gorm:"not null" json:"enabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
