package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fulfillment stages in their fixed forward order. Cancelled sits outside
// the sequence and is reachable from any non-terminal stage.
const (
	StageOrdered   = "ordered"
	StagePaid      = "paid"
	StageShipped   = "shipped"
	StageDelivered = "delivered"
	StageReviewed  = "reviewed"
	StageCancelled = "cancelled"
)

// Item types. Ebooks and audiobooks are fulfilled digitally on payment.
const (
	ItemPhysical  = "physical"
	ItemEbook     = "ebook"
	ItemAudiobook = "audiobook"
)

type Order struct {
	ID          string `gorm:"primaryKey;size:64;not null" json:"id"`
	OrderNumber string `gorm:"size:32;uniqueIndex;not null" json:"orderNumber"`
	CustomerID  string `gorm:"size:64;index;not null" json:"customerId"`

	CustomerName  string `gorm:"size:128" json:"customerName"`
	CustomerEmail string `gorm:"size:128" json:"customerEmail"`
	CustomerPhone string `gorm:"size:32" json:"customerPhone"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	ShippingAddressID string `gorm:"size:64" json:"shippingAddressId,omitempty"`
	ShippingMethodID  string `gorm:"size:64" json:"shippingMethodId,omitempty"`
	PaymentMethod     string `gorm:"size:64;not null" json:"paymentMethod"` // provider ref of the chosen option

	// Persisted as a cache; always recomputed before writes, never trusted.
	Subtotal       decimal.Decimal `gorm:"type:numeric;not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric;not null" json:"discountAmount"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric;not null" json:"shippingCost"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric;not null" json:"taxAmount"`
	Total          decimal.Decimal `gorm:"type:numeric;not null" json:"total"`
	Currency       string          `gorm:"size:8;not null" json:"currency"`

	CurrentStage string        `gorm:"size:16;index;not null" json:"currentStage"`
	StageHistory []StageRecord `gorm:"foreignKey:OrderID" json:"stageHistory"`

	OrderedAt   time.Time  `json:"orderedAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   string `gorm:"size:64;index;not null" json:"-"`
	ProductID string `gorm:"size:64;index;not null" json:"productId"`
	Title     string `gorm:"size:256" json:"title"`
	Type      string `gorm:"size:16;not null" json:"type"`

	Price    decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
	// Weight in kg, physical items only.
	Weight decimal.Decimal `gorm:"type:numeric" json:"weight,omitempty"`

	IsDelivered bool       `gorm:"not null" json:"isDelivered"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	DownloadURL string     `gorm:"size:512" json:"downloadUrl,omitempty"`

	CreatedAt time.Time `json:"-"`
}

type StageRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	OrderID   string    `gorm:"size:64;index;not null" json:"-"`
	Stage     string    `gorm:"size:16;not null" json:"stage"`
	Notes     string    `gorm:"size:512" json:"notes,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

func (i *OrderItem) IsDigital() bool {
	return i.Type == ItemEbook || i.Type == ItemAudiobook
}

func (o *Order) HasPhysicalItems() bool {
	for _, it := range o.Items {
		if it.Type == ItemPhysical {
			return true
		}
	}
	return false
}

// TotalWeight sums the weight of physical items, quantity included.
func (o *Order) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		if it.Type != ItemPhysical {
			continue
		}
		total = total.Add(it.Weight.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// IsTerminal reports whether the stage admits no further transitions.
func IsTerminalStage(stage string) bool {
	return stage == StageReviewed || stage == StageCancelled
}
