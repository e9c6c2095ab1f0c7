package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Provider families. A capability set on the record covers the rest; the
// family only decides charge mechanics (gateway call vs manual capture).
const (
	TypeCardGateway = "card_gateway"
	TypeBNPL        = "bnpl"
	TypeWallet      = "wallet"
	TypeManual      = "manual"
)

// Method tags surfaced to customers. Declaration order here fixes the
// expansion order of selector output.
const (
	MethodCreditCard    = "credit_card"
	MethodDebitCard     = "debit_card"
	MethodMada          = "mada"
	MethodApplePay      = "apple_pay"
	MethodGooglePay     = "google_pay"
	MethodSTCPay        = "stc_pay"
	MethodInstallments  = "installments"
	MethodPayLater      = "pay_later"
	MethodCashOnDeliver = "cash_on_delivery"
	MethodBankTransfer  = "bank_transfer"
)

type Fees struct {
	Percentage decimal.Decimal `json:"percentage"`
	Fixed      decimal.Decimal `json:"fixed"`
	Currency   string          `json:"currency"`
}

type Limits struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Currency string          `json:"currency"`
}

type Features struct {
	ThreeDS        bool `json:"threeDS"`
	Recurring      bool `json:"recurring"`
	Refunds        bool `json:"refunds"`
	PartialRefunds bool `json:"partialRefunds"`
	Webhooks       bool `json:"webhooks"`
	Installments   bool `json:"installments"`
}

// Provider is one immutable-per-configuration capability record. Enabled,
// TestMode and Config arrive from persisted per-merchant settings; the rest
// is static catalog data.
type Provider struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`

	Enabled  bool `json:"enabled"`
	TestMode bool `json:"testMode"`

	SupportedCountries  []string `json:"supportedCountries"`
	SupportedCurrencies []string `json:"supportedCurrencies"`
	Methods             []string `json:"supportedMethods"`

	Fees     Fees     `json:"fees"`
	Limits   Limits   `json:"limits"`
	Features Features `json:"features"`

	// RequiredSecretFields drives the Connected derivation.
	RequiredSecretFields []string `json:"-"`
	// Config holds the merchant's secret values, keyed by field name.
	Config map[string]string `json:"-"`
}

// Connected is always derived, never persisted: every required secret field
// must be present and non-blank.
func (p *Provider) Connected() bool {
	for _, f := range p.RequiredSecretFields {
		if strings.TrimSpace(p.Config[f]) == "" {
			return false
		}
	}
	return true
}

// A single "*" entry means no restriction (manual providers).
func (p *Provider) SupportsCurrency(currency string) bool {
	return containsFold(p.SupportedCurrencies, "*") || containsFold(p.SupportedCurrencies, currency)
}

func (p *Provider) SupportsCountry(country string) bool {
	return containsFold(p.SupportedCountries, "*") || containsFold(p.SupportedCountries, country)
}

func (p *Provider) IsManual() bool {
	return p.Type == TypeManual
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
