package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment intent statuses. requires_payment_method and requires_capture are
// the two non-terminal states; everything else is final.
const (
	IntentRequiresPaymentMethod = "requires_payment_method"
	IntentRequiresCapture       = "requires_capture"
	IntentSucceeded             = "succeeded"
	IntentCancelled             = "cancelled"
	IntentFailed                = "failed"
)

const (
	RefundSucceeded = "succeeded"
	RefundFailed    = "failed"
)

type PaymentIntent struct {
	ID       string          `gorm:"primaryKey;size:64;not null" json:"id"`
	OrderID  string          `gorm:"size:64;index;not null" json:"orderId"`
	Amount   decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency string          `gorm:"size:8;not null" json:"currency"`
	Provider string          `gorm:"size:64;not null" json:"provider"`
	TestMode bool            `gorm:"not null" json:"testMode"`
	Status   string          `gorm:"size:32;index;not null" json:"status"`

	// IdempotencyKey allows replayed create calls to land on the same intent.
	IdempotencyKey string `gorm:"size:128;index" json:"-"`
	// GatewayRef is the external charge/transaction id once confirmed.
	GatewayRef   string `gorm:"size:128" json:"-"`
	CancelReason string `gorm:"size:256" json:"cancelReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Refund struct {
	ID       string          `gorm:"primaryKey;size:64;not null" json:"id"`
	IntentID string          `gorm:"size:64;index;not null" json:"intentId"`
	Amount   decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency string          `gorm:"size:8;not null" json:"currency"`
	Reason   string          `gorm:"size:256" json:"reason,omitempty"`
	Status   string          `gorm:"size:16;not null" json:"status"`

	// IdempotencyKey allows replayed refund calls to land on the same row.
	IdempotencyKey string `gorm:"size:128;index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// ProviderSettings is the persisted per-merchant override row for one
// provider: toggle flags plus the secret config blob. Capability data lives
// in the static catalog, not here.
type ProviderSettings struct {
	ProviderID string `gorm:"primaryKey;size:64;not null" json:"providerId"`
	Enabled    bool   `gorm:"not null" json:"enabled"`
	TestMode   bool   `gorm:"not null" json:"testMode"`
	// Config holds provider-specific secret fields as JSON.
	Config string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTerminalIntent reports whether the intent status admits no further moves.
func IsTerminalIntent(status string) bool {
	switch status {
	case IntentSucceeded, IntentCancelled, IntentFailed:
		return true
	}
	return false
}
