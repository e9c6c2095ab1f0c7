package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/pricing"
)

// OrderContext is what provider selection needs to know about a checkout.
// Amount is optional; when positive it also applies provider min/max limits
// and attaches a fee quote to each option.
type OrderContext struct {
	Currency         string
	Country          string
	HasPhysicalItems bool
	Amount           decimal.Decimal
}

// PaymentOption is one provider × method pairing surfaced to the customer.
// Built per checkout render, never persisted.
type PaymentOption struct {
	ProviderRef string `json:"providerRef"`
	MethodTag   string `json:"methodTag"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	TestMode    bool   `json:"testMode"`

	Fees     catalog.Fees     `json:"fees"`
	Features catalog.Features `json:"features"`

	FeeQuote       *pricing.FeeQuote   `json:"feeQuote,omitempty"`
	RequiredFields []catalog.FieldSpec `json:"requiredFields"`
}

type SelectorService interface {
	Select(ctx context.Context, octx OrderContext) ([]PaymentOption, error)
}

type selectorServiceImpl struct {
	catalog *catalog.Catalog
}

func NewSelectorService(cat *catalog.Catalog) SelectorService {
	return &selectorServiceImpl{
		catalog: cat,
	}
}

// Select returns the eligible payment options for the context, in catalog
// order then method declaration order. Unmet conditions yield an empty list,
// never an error; the caller decides whether to block checkout.
func (s *selectorServiceImpl) Select(ctx context.Context, octx OrderContext) ([]PaymentOption, error) {
	providers, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	options := []PaymentOption{}
	var manual *catalog.Provider

	for i := range providers {
		p := providers[i]

		if p.IsManual() {
			// Manual collection is appended after the filter pass; it does
			// not compete on connectivity or currency support.
			if manual == nil {
				manual = &providers[i]
			}
			continue
		}

		if !p.Enabled || (!p.Connected() && !p.TestMode) {
			continue
		}
		if !p.SupportsCurrency(octx.Currency) || !p.SupportsCountry(octx.Country) {
			continue
		}
		if octx.Amount.IsPositive() && !withinLimits(&p, octx.Amount) {
			continue
		}

		for _, tag := range p.Methods {
			options = append(options, buildOption(&p, tag, octx.Amount))
		}
	}

	// Cash on delivery needs someone at the door to hand cash to.
	if octx.HasPhysicalItems && manual != nil {
		for _, tag := range manual.Methods {
			options = append(options, buildOption(manual, tag, octx.Amount))
		}
	}

	return options, nil
}

func withinLimits(p *catalog.Provider, amount decimal.Decimal) bool {
	if !p.Limits.Min.IsZero() && amount.LessThan(p.Limits.Min) {
		return false
	}
	if !p.Limits.Max.IsZero() && amount.GreaterThan(p.Limits.Max) {
		return false
	}
	return true
}

func buildOption(p *catalog.Provider, tag string, amount decimal.Decimal) PaymentOption {
	info := catalog.InfoFor(tag)

	opt := PaymentOption{
		ProviderRef:    p.ID,
		MethodTag:      tag,
		Name:           info.Name,
		Description:    info.Description,
		Icon:           info.Icon,
		TestMode:       p.TestMode,
		Fees:           p.Fees,
		Features:       p.Features,
		RequiredFields: catalog.CustomerFieldsFor(tag),
	}

	if amount.IsPositive() {
		quote := pricing.Fee(p.Fees, amount)
		opt.FeeQuote = &quote
	}

	return opt
}
