package catalog

import "github.com/shopspring/decimal"

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// baseProviders is the static capability data for every provider the store
// can offer. Per-merchant settings toggle Enabled/TestMode and supply the
// secret config; nothing else is overridable.
func baseProviders() []Provider {
	return []Provider{
		{
			ID:                   "stripe",
			DisplayName:          "Stripe",
			Type:                 TypeCardGateway,
			SupportedCountries:   []string{"US", "GB", "DE", "FR", "AE", "SA"},
			SupportedCurrencies:  []string{"USD", "EUR", "GBP", "AED", "SAR"},
			Methods:              []string{MethodCreditCard, MethodDebitCard, MethodApplePay, MethodGooglePay},
			Fees:                 Fees{Percentage: pct("2.9"), Fixed: pct("1"), Currency: "SAR"},
			Limits:               Limits{Min: pct("2"), Max: pct("999999"), Currency: "SAR"},
			Features:             Features{ThreeDS: true, Recurring: true, Refunds: true, PartialRefunds: true, Webhooks: true},
			RequiredSecretFields: []string{"publishable_key", "secret_key"},
		},
		{
			ID:                   "tap",
			DisplayName:          "Tap Payments",
			Type:                 TypeCardGateway,
			SupportedCountries:   []string{"SA", "AE", "KW", "BH", "QA", "OM", "EG"},
			SupportedCurrencies:  []string{"SAR", "AED", "KWD", "BHD", "QAR", "OMR", "EGP", "USD"},
			Methods:              []string{MethodCreditCard, MethodMada, MethodApplePay},
			Fees:                 Fees{Percentage: pct("2.5"), Fixed: pct("1"), Currency: "SAR"},
			Limits:               Limits{Min: pct("1"), Max: pct("500000"), Currency: "SAR"},
			Features:             Features{ThreeDS: true, Refunds: true, PartialRefunds: true, Webhooks: true},
			RequiredSecretFields: []string{"public_key", "secret_key"},
		},
		{
			ID:                   "tamara",
			DisplayName:          "Tamara",
			Type:                 TypeBNPL,
			SupportedCountries:   []string{"SA", "AE", "KW"},
			SupportedCurrencies:  []string{"SAR", "AED", "KWD"},
			Methods:              []string{MethodInstallments, MethodPayLater},
			Fees:                 Fees{Percentage: pct("6"), Fixed: pct("0"), Currency: "SAR"},
			Limits:               Limits{Min: pct("100"), Max: pct("5000"), Currency: "SAR"},
			Features:             Features{Installments: true, Webhooks: true, Refunds: true},
			RequiredSecretFields: []string{"api_key", "merchant_url"},
		},
		{
			ID:                   "tabby",
			DisplayName:          "Tabby",
			Type:                 TypeBNPL,
			SupportedCountries:   []string{"SA", "AE"},
			SupportedCurrencies:  []string{"SAR", "AED"},
			Methods:              []string{MethodInstallments},
			Fees:                 Fees{Percentage: pct("5.5"), Fixed: pct("0"), Currency: "SAR"},
			Limits:               Limits{Min: pct("50"), Max: pct("10000"), Currency: "SAR"},
			Features:             Features{Installments: true, Webhooks: true, Refunds: true, PartialRefunds: true},
			RequiredSecretFields: []string{"public_key", "secret_key", "merchant_id"},
		},
		{
			ID:                   "stc_pay",
			DisplayName:          "STC Pay",
			Type:                 TypeWallet,
			SupportedCountries:   []string{"SA"},
			SupportedCurrencies:  []string{"SAR"},
			Methods:              []string{MethodSTCPay},
			Fees:                 Fees{Percentage: pct("1.75"), Fixed: pct("0"), Currency: "SAR"},
			Limits:               Limits{Min: pct("1"), Max: pct("20000"), Currency: "SAR"},
			Features:             Features{Refunds: true, Webhooks: true},
			RequiredSecretFields: []string{"merchant_id", "api_key"},
		},
		{
			ID:          "cash_on_delivery",
			DisplayName: "Cash on Delivery",
			Type:        TypeManual,
			// Manual collection works anywhere the store ships to.
			SupportedCountries:  []string{"*"},
			SupportedCurrencies: []string{"*"},
			Methods:             []string{MethodCashOnDeliver},
			Fees:                Fees{Percentage: pct("0"), Fixed: pct("10"), Currency: "SAR"},
			Limits:              Limits{Min: pct("0"), Max: pct("5000"), Currency: "SAR"},
			Features:            Features{},
			// No secrets: a manual provider is always connected.
			Enabled: true,
		},
	}
}
