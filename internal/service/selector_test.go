package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/catalog"
)

func TestSelect_FiltersByCurrencyAndCountry(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	// USD is only supported by stripe
	options, err := selector.Select(context.Background(), OrderContext{
		Currency: "USD", Country: "US", HasPhysicalItems: false,
	})
	require.NoError(t, err)

	for _, opt := range options {
		assert.Equal(t, "stripe", opt.ProviderRef)
	}
	assert.Len(t, options, 2) // credit_card, apple_pay
}

func TestSelect_UnsupportedContextYieldsEmptyNotError(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	options, err := selector.Select(context.Background(), OrderContext{
		Currency: "JPY", Country: "JP", HasPhysicalItems: false,
	})
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestSelect_CashOnDeliveryIffPhysicalItems(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	withPhysical, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA", HasPhysicalItems: true,
	})
	require.NoError(t, err)

	withoutPhysical, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA", HasPhysicalItems: false,
	})
	require.NoError(t, err)

	assert.True(t, hasOption(withPhysical, "cash_on_delivery"))
	assert.False(t, hasOption(withoutPhysical, "cash_on_delivery"))
}

func TestSelect_CashOnDeliveryFallbackWhenNothingElseEligible(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	// no provider supports JPY, but the cart has a physical item
	options, err := selector.Select(context.Background(), OrderContext{
		Currency: "JPY", Country: "JP", HasPhysicalItems: true,
	})
	require.NoError(t, err)

	require.Len(t, options, 1)
	assert.Equal(t, "cash_on_delivery", options[0].ProviderRef)
	assert.Equal(t, catalog.MethodCashOnDeliver, options[0].MethodTag)
}

func TestSelect_SkipsDisabledAndDisconnected(t *testing.T) {
	selector := NewSelectorService(catalog.NewStatic([]catalog.Provider{
		{
			ID: "disabled", Type: catalog.TypeCardGateway, Enabled: false, TestMode: true,
			SupportedCountries: []string{"SA"}, SupportedCurrencies: []string{"SAR"},
			Methods: []string{catalog.MethodCreditCard},
		},
		{
			ID: "disconnected", Type: catalog.TypeCardGateway, Enabled: true,
			SupportedCountries: []string{"SA"}, SupportedCurrencies: []string{"SAR"},
			Methods:              []string{catalog.MethodCreditCard},
			RequiredSecretFields: []string{"secret_key"},
		},
		{
			// disconnected but in test mode still shows up
			ID: "testmode", Type: catalog.TypeCardGateway, Enabled: true, TestMode: true,
			SupportedCountries: []string{"SA"}, SupportedCurrencies: []string{"SAR"},
			Methods:              []string{catalog.MethodCreditCard},
			RequiredSecretFields: []string{"secret_key"},
		},
	}))

	options, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA",
	})
	require.NoError(t, err)

	require.Len(t, options, 1)
	assert.Equal(t, "testmode", options[0].ProviderRef)
	assert.True(t, options[0].TestMode)
}

func TestSelect_OutputOrderIsStable(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	octx := OrderContext{Currency: "SAR", Country: "SA", HasPhysicalItems: true}

	first, err := selector.Select(context.Background(), octx)
	require.NoError(t, err)

	// catalog order, then method declaration order
	want := []string{
		"stripe/" + catalog.MethodCreditCard,
		"stripe/" + catalog.MethodApplePay,
		"stc_pay/" + catalog.MethodSTCPay,
		"tamara/" + catalog.MethodInstallments,
		"cash_on_delivery/" + catalog.MethodCashOnDeliver,
	}
	assert.Equal(t, want, optionKeys(first))

	for i := 0; i < 5; i++ {
		again, err := selector.Select(context.Background(), octx)
		require.NoError(t, err)
		assert.Equal(t, optionKeys(first), optionKeys(again))
	}
}

func TestSelect_AppliesProviderLimits(t *testing.T) {
	selector := NewSelectorService(catalog.NewStatic([]catalog.Provider{
		{
			ID: "bnpl", Type: catalog.TypeBNPL, Enabled: true, TestMode: true,
			SupportedCountries: []string{"SA"}, SupportedCurrencies: []string{"SAR"},
			Methods: []string{catalog.MethodInstallments},
			Limits:  catalog.Limits{Min: d("100"), Max: d("5000")},
		},
	}))

	below, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA", Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Empty(t, below)

	within, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA", Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Len(t, within, 1)
}

func TestSelect_AttachesFeeQuoteWhenAmountKnown(t *testing.T) {
	selector := NewSelectorService(testCatalog())

	options, err := selector.Select(context.Background(), OrderContext{
		Currency: "SAR", Country: "SA", Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NotEmpty(t, options)

	// stripe: 100 + 2.9% + 1 = 103.90
	require.NotNil(t, options[0].FeeQuote)
	assert.True(t, d("103.9").Equal(options[0].FeeQuote.AmountDue))
}

func hasOption(options []PaymentOption, providerRef string) bool {
	for _, opt := range options {
		if opt.ProviderRef == providerRef {
			return true
		}
	}
	return false
}

func optionKeys(options []PaymentOption) []string {
	keys := make([]string, len(options))
	for i, opt := range options {
		keys[i] = opt.ProviderRef + "/" + opt.MethodTag
	}
	return keys
}
