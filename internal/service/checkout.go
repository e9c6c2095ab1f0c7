package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/catalog"
	"storefront-backend/internal/config"
	"storefront-backend/internal/model"
	"storefront-backend/internal/pricing"
	"storefront-backend/internal/repository"
)

type ItemInput struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Weight    decimal.Decimal `json:"weight"`
}

type SummaryRequest struct {
	Items            []ItemInput
	ShippingMethodID string
	Country          string
	Currency         string
	DiscountAmount   decimal.Decimal
}

type Summary struct {
	Options        []PaymentOption       `json:"paymentOptions"`
	Totals         pricing.Totals        `json:"totals"`
	ShippingMethod *model.ShippingMethod `json:"shippingMethod,omitempty"`
}

type SubmitRequest struct {
	CustomerID        string
	CustomerInfo      CustomerSeed
	Items             []ItemInput
	ShippingAddressID string
	ShippingMethodID  string
	ProviderRef       string
	MethodTag         string
	PaymentToken      string
	DiscountAmount    decimal.Decimal
	IdempotencyKey    string
}

type SubmitResult struct {
	Order  *model.Order         `json:"order"`
	Intent *model.PaymentIntent `json:"paymentIntent"`
}

type CheckoutService interface {
	// Summary prices the cart and lists the eligible payment options.
	Summary(ctx context.Context, req SummaryRequest) (*Summary, error)
	// Submit places the order and drives payment through to the paid stage
	// for pre-paid providers. Cash-on-delivery orders stay at ordered with
	// an intent awaiting capture.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

type checkoutServiceImpl struct {
	db           *gorm.DB
	store        config.Store
	catalog      *catalog.Catalog
	selector     SelectorService
	payments     PaymentService
	lifecycle    LifecycleService
	customers    CustomerService
	orderRepo    repository.OrderRepository
	shippingRepo repository.ShippingMethodRepository
}

func NewCheckoutService(
	db *gorm.DB,
	store config.Store,
	cat *catalog.Catalog,
	selector SelectorService,
	payments PaymentService,
	lifecycle LifecycleService,
	customers CustomerService,
	orderRepo repository.OrderRepository,
	shippingRepo repository.ShippingMethodRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:           db,
		store:        store,
		catalog:      cat,
		selector:     selector,
		payments:     payments,
		lifecycle:    lifecycle,
		customers:    customers,
		orderRepo:    orderRepo,
		shippingRepo: shippingRepo,
	}
}

func (s *checkoutServiceImpl) Summary(ctx context.Context, req SummaryRequest) (*Summary, error) {
	items, hasPhysical, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	currency := defaultString(req.Currency, s.store.Currency)
	country := defaultString(req.Country, s.store.Country)

	method, shippingCost, err := s.priceShipping(ctx, items, hasPhysical, req.ShippingMethodID)
	if err != nil {
		return nil, err
	}

	totals := pricing.Compute(items, req.DiscountAmount, shippingCost, decimal.NewFromFloat(s.store.TaxRatePercent))

	options, err := s.selector.Select(ctx, OrderContext{
		Currency:         currency,
		Country:          country,
		HasPhysicalItems: hasPhysical,
		Amount:           totals.Total,
	})
	if err != nil {
		return nil, err
	}

	return &Summary{
		Options:        options,
		Totals:         totals,
		ShippingMethod: method,
	}, nil
}

func (s *checkoutServiceImpl) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	items, hasPhysical, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, apperror.Invalid("customerId", "customer id is required")
	}

	if err := validateCustomerFields(req.MethodTag, req.CustomerInfo); err != nil {
		return nil, err
	}

	provider, err := s.catalog.Get(ctx, req.ProviderRef)
	if err != nil {
		return nil, err
	}
	if provider.IsManual() && !hasPhysical {
		return nil, apperror.Invalid("paymentMethod", "cash on delivery requires at least one physical item")
	}

	method, shippingCost, err := s.priceShipping(ctx, items, hasPhysical, req.ShippingMethodID)
	if err != nil {
		return nil, err
	}
	if hasPhysical && method == nil {
		return nil, apperror.Invalid("shippingMethod", "a shipping method is required for physical items")
	}

	totals := pricing.Compute(items, req.DiscountAmount, shippingCost, decimal.NewFromFloat(s.store.TaxRatePercent))

	// Same eligibility rules the summary endpoint applies; a stale or
	// hand-crafted submission must not reach a provider the customer was
	// never offered.
	if err := s.checkEligibility(provider, totals.Total); err != nil {
		return nil, err
	}

	customer, err := s.customers.GetOrCreate(ctx, req.CustomerID, req.CustomerInfo)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            "ord_" + uuid.NewString(),
		OrderNumber:   "ORD-" + strings.ToUpper(shortID(uuid.NewString())),
		CustomerID:    customer.ID,
		CustomerName:  firstNonEmpty(req.CustomerInfo.DisplayName, customer.DisplayName),
		CustomerEmail: firstNonEmpty(req.CustomerInfo.Email, customer.Email),
		CustomerPhone: firstNonEmpty(req.CustomerInfo.Phone, customer.Phone),
		Items:         items,
		PaymentMethod: provider.ID,
		Currency:      s.store.Currency,
		CurrentStage:  model.StageOrdered,
		OrderedAt:     time.Now(),
	}
	if hasPhysical {
		order.ShippingAddressID = req.ShippingAddressID
		order.ShippingMethodID = method.ID
	}
	totals.Apply(order)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.AppendStage(ctx, tx, &model.StageRecord{
			OrderID: order.ID,
			Stage:   model.StageOrdered,
			Notes:   "order placed",
		}); err != nil {
			return fmt.Errorf("store stage history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	intent, err := s.payments.CreateIntent(ctx, CreateIntentRequest{
		OrderID:        order.ID,
		Amount:         order.Total,
		Currency:       order.Currency,
		Provider:       provider.ID,
		TestMode:       provider.TestMode,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	// Manual providers collect on delivery: intent stays requires_capture
	// and the order stays at ordered.
	if !provider.IsManual() {
		intent, err = s.payments.ConfirmIntent(ctx, intent.ID, PaymentMethodData{Token: req.PaymentToken})
		if err != nil {
			return nil, err
		}

		order, err = s.lifecycle.Advance(ctx, order.ID, model.StagePaid, "payment captured")
		if err != nil {
			return nil, err
		}
	}

	return &SubmitResult{
		Order:  order,
		Intent: intent,
	}, nil
}

func (s *checkoutServiceImpl) checkEligibility(provider *catalog.Provider, total decimal.Decimal) error {
	if !provider.Enabled {
		return apperror.Invalid("paymentMethod", fmt.Sprintf("provider %q is not available", provider.ID))
	}
	if provider.IsManual() {
		return nil
	}
	if !provider.Connected() && !provider.TestMode {
		return apperror.Invalid("paymentMethod", fmt.Sprintf("provider %q is not available", provider.ID))
	}
	if !provider.SupportsCurrency(s.store.Currency) || !provider.SupportsCountry(s.store.Country) {
		return apperror.Invalid("paymentMethod", fmt.Sprintf("provider %q does not serve this store", provider.ID))
	}
	if total.IsPositive() && !withinLimits(provider, total) {
		return apperror.Invalid("paymentMethod", fmt.Sprintf("order total is outside provider %q limits", provider.ID))
	}
	return nil
}

// priceShipping resolves the method and its cost. Digital-only carts skip
// the shipping section entirely and never invoke the cost calculator.
func (s *checkoutServiceImpl) priceShipping(ctx context.Context, items []model.OrderItem, hasPhysical bool, methodID string) (*model.ShippingMethod, decimal.Decimal, error) {
	if !hasPhysical || methodID == "" {
		return nil, decimal.Zero, nil
	}

	method, err := s.shippingRepo.Get(ctx, methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, apperror.NotFound("shipping method", methodID)
		}
		return nil, decimal.Zero, fmt.Errorf("get shipping method: %w", err)
	}

	weight := totalWeight(items)
	cost := pricing.ShippingCost(method, weight, decimal.NewFromFloat(s.store.ShippingPerKg))
	return method, cost, nil
}

func buildItems(inputs []ItemInput) ([]model.OrderItem, bool, error) {
	if len(inputs) == 0 {
		return nil, false, apperror.Invalid("items", "cart is empty")
	}

	items := make([]model.OrderItem, len(inputs))
	hasPhysical := false

	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, false, apperror.Invalid("items", "item quantity must be positive")
		}
		if in.Price.IsNegative() {
			return nil, false, apperror.Invalid("items", "item price cannot be negative")
		}
		switch in.Type {
		case model.ItemPhysical:
			hasPhysical = true
		case model.ItemEbook, model.ItemAudiobook:
		default:
			return nil, false, apperror.Invalid("items", fmt.Sprintf("unknown item type %q", in.Type))
		}

		items[i] = model.OrderItem{
			ProductID: in.ProductID,
			Title:     in.Title,
			Type:      in.Type,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Weight:    in.Weight,
		}
	}

	return items, hasPhysical, nil
}

// validateCustomerFields checks the chosen method's declarative field specs
// against the supplied customer info.
func validateCustomerFields(methodTag string, info CustomerSeed) error {
	values := map[string]string{
		"name":  info.DisplayName,
		"email": info.Email,
		"phone": info.Phone,
	}

	for _, spec := range catalog.CustomerFieldsFor(methodTag) {
		if spec.Required && strings.TrimSpace(values[spec.Name]) == "" {
			return apperror.Invalid(spec.Name, fmt.Sprintf("%s is required for this payment method", spec.Label))
		}
	}
	return nil
}

func totalWeight(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Type != model.ItemPhysical {
			continue
		}
		total = total.Add(it.Weight.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
