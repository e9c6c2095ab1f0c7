package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestShippingCost_StandardMethod(t *testing.T) {
	method := &model.ShippingMethod{ID: "standard", Name: "Standard Delivery", BaseCost: d("25")}

	// base 25 + 0.8kg * 5/kg = 29
	cost := ShippingCost(method, d("0.8"), d("5"))
	assert.True(t, d("29").Equal(cost), "got %s", cost)
}

func TestShippingCost_NilMethodIsFree(t *testing.T) {
	cost := ShippingCost(nil, d("3"), d("5"))
	assert.True(t, cost.IsZero())
}

func TestShippingCost_ZeroRateFallsBackToDefault(t *testing.T) {
	method := &model.ShippingMethod{ID: "standard", Name: "Standard Delivery", BaseCost: d("10")}

	cost := ShippingCost(method, d("2"), decimal.Zero)
	assert.True(t, d("20").Equal(cost), "got %s", cost)
}

func TestShippingCost_PickupAlwaysFree(t *testing.T) {
	tests := []struct {
		name   string
		method model.ShippingMethod
	}{
		{"by id", model.ShippingMethod{ID: "pickup", Name: "Collect", BaseCost: d("15")}},
		{"by name", model.ShippingMethod{ID: "collect-1", Name: "Store Pickup", BaseCost: d("15")}},
		{"by type tag", model.ShippingMethod{ID: "collect-2", Name: "Collect", Type: model.ShippingTypePickup, BaseCost: d("15")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := ShippingCost(&tt.method, d("12.5"), d("5"))
			assert.True(t, cost.IsZero(), "pickup method must cost zero, got %s", cost)
		})
	}
}

func TestIsPickupMethod(t *testing.T) {
	assert.False(t, IsPickupMethod(nil))
	assert.False(t, IsPickupMethod(&model.ShippingMethod{ID: "express", Name: "Express Delivery"}))
	assert.True(t, IsPickupMethod(&model.ShippingMethod{ID: "PICKUP", Name: "x"}))
	assert.True(t, IsPickupMethod(&model.ShippingMethod{ID: "x", Name: "In-store pickup point"}))
}
