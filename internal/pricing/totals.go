package pricing

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/model"
)

// Totals is the derived money breakdown of an order. It is recomputed at
// every mutation point; stored values are a display cache only.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// Subtotal sums price*quantity across items.
func Subtotal(items []model.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2)
}

// Compute derives the full breakdown. Tax is a flat rate applied to the
// discounted subtotal; shipping is taxed separately by jurisdictions we do
// not model, so it stays out of the tax base.
func Compute(items []model.OrderItem, discount, shippingCost, taxRatePercent decimal.Decimal) Totals {
	subtotal := Subtotal(items)

	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(taxRatePercent).Div(hundred).Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		ShippingCost:   shippingCost,
		TaxAmount:      tax,
		Total:          subtotal.Sub(discount).Add(shippingCost).Add(tax).Round(2),
	}
}

// Apply writes the breakdown onto an order.
func (t Totals) Apply(o *model.Order) {
	o.Subtotal = t.Subtotal
	o.DiscountAmount = t.DiscountAmount
	o.ShippingCost = t.ShippingCost
	o.TaxAmount = t.TaxAmount
	o.Total = t.Total
}
