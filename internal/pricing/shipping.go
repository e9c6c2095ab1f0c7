package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/model"
)

// DefaultPerKgRate is the configured fallback rate in currency units per kg.
var DefaultPerKgRate = decimal.NewFromInt(5)

// IsPickupMethod is the single pickup predicate. Upstream shipping rows are
// inconsistently tagged, so all three signals are checked: the explicit type
// tag, the well-known id, and a name match. Call sites must use this instead
// of re-deriving any subset of the checks.
func IsPickupMethod(method *model.ShippingMethod) bool {
	if method == nil {
		return false
	}
	if method.Type == model.ShippingTypePickup {
		return true
	}
	if strings.EqualFold(method.ID, "pickup") {
		return true
	}
	return strings.Contains(strings.ToLower(method.Name), "pickup")
}

// ShippingCost computes the delivery cost for a cart weight. Absent and
// pickup methods always cost zero regardless of their configured base cost.
func ShippingCost(method *model.ShippingMethod, totalWeightKg, perKgRate decimal.Decimal) decimal.Decimal {
	if method == nil || IsPickupMethod(method) {
		return decimal.Zero
	}
	if perKgRate.IsZero() {
		perKgRate = DefaultPerKgRate
	}
	return method.BaseCost.Add(totalWeightKg.Mul(perKgRate)).Round(2)
}
