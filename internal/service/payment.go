package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/catalog"
	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type CreateIntentRequest struct {
	OrderID        string
	Amount         decimal.Decimal
	Currency       string
	Provider       string
	TestMode       bool
	IdempotencyKey string
	Metadata       map[string]string
}

// PaymentMethodData is the tokenized instrument handed over on confirm.
type PaymentMethodData struct {
	Token string
}

type PaymentService interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error)
	ConfirmIntent(ctx context.Context, intentID string, data PaymentMethodData) (*model.PaymentIntent, error)
	CancelIntent(ctx context.Context, intentID, reason string) (*model.PaymentIntent, error)
	Refund(ctx context.Context, intentID string, amount decimal.Decimal, reason, idempotencyKey string) (*model.Refund, error)
	GetIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error)
}

// Gateways bundles the processors the service can charge through. Test-mode
// intents always go to Simulated regardless of provider.
type Gateways struct {
	Simulated client.Gateway
	Card      client.Gateway
	Regional  client.Gateway
}

type paymentServiceImpl struct {
	db         *gorm.DB
	catalog    *catalog.Catalog
	intentRepo repository.IntentRepository
	gateways   Gateways
}

func NewPaymentService(
	db *gorm.DB,
	cat *catalog.Catalog,
	intentRepo repository.IntentRepository,
	gateways Gateways,
) PaymentService {
	return &paymentServiceImpl{
		db:         db,
		catalog:    cat,
		intentRepo: intentRepo,
		gateways:   gateways,
	}
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.Invalid("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(req.Currency) == "" {
		return nil, apperror.Invalid("currency", "currency is required")
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, apperror.Invalid("orderId", "order id is required")
	}

	provider, err := s.catalog.Get(ctx, req.Provider)
	if err != nil {
		return nil, err
	}

	// Replayed create with the same key lands on the previously created
	// intent without touching anything.
	if req.IdempotencyKey != "" {
		existing, err := s.intentRepo.FindByIdempotencyKey(ctx, req.OrderID, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	status := model.IntentRequiresPaymentMethod
	if provider.IsManual() {
		status = model.IntentRequiresCapture
	}

	intent := &model.PaymentIntent{
		ID:             "pi_" + uuid.NewString(),
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		Currency:       strings.ToUpper(req.Currency),
		Provider:       provider.ID,
		TestMode:       req.TestMode || provider.TestMode,
		Status:         status,
		IdempotencyKey: req.IdempotencyKey,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paid, err := s.intentRepo.HasSucceededForOrder(ctx, tx, req.OrderID)
		if err != nil {
			return fmt.Errorf("check order payment state: %w", err)
		}
		if paid {
			return apperror.Conflict("order already has a captured payment")
		}

		active, err := s.intentRepo.FindActiveByOrder(ctx, tx, req.OrderID)
		if err != nil {
			return fmt.Errorf("find active intent: %w", err)
		}
		if active != nil {
			// An abandoned unconfirmed intent is superseded, not a conflict.
			// Anything further along blocks the new create.
			if active.Status != model.IntentRequiresPaymentMethod {
				return apperror.Conflict("order already has an active payment intent")
			}
			active.Status = model.IntentCancelled
			active.CancelReason = "superseded by a new intent"
			if err := s.intentRepo.Save(ctx, tx, active); err != nil {
				return fmt.Errorf("supersede stale intent: %w", err)
			}
		}

		if err := s.intentRepo.Create(ctx, tx, intent); err != nil {
			return fmt.Errorf("store intent: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *paymentServiceImpl) ConfirmIntent(ctx context.Context, intentID string, data PaymentMethodData) (*model.PaymentIntent, error) {
	intent, err := s.getIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case model.IntentSucceeded:
		// Replay of a finished confirm returns the stored result.
		return intent, nil
	case model.IntentCancelled, model.IntentFailed:
		return nil, apperror.Conflict(fmt.Sprintf("intent is %s and cannot be confirmed", intent.Status))
	case model.IntentRequiresCapture:
		return nil, apperror.Invalid("provider", "manual intents are captured on delivery, not confirmed")
	}

	provider, err := s.catalog.Get(ctx, intent.Provider)
	if err != nil {
		return nil, err
	}

	gateway := s.resolveGateway(provider, intent.TestMode)
	result, err := gateway.Charge(ctx, client.ChargeRequest{
		IntentID: intent.ID,
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Token:    data.Token,
	})
	if err != nil {
		return nil, apperror.Gateway(fmt.Sprintf("provider unavailable: %v", err))
	}

	if result.Declined {
		intent.Status = model.IntentFailed
		if err := s.saveIntent(ctx, intent); err != nil {
			return nil, err
		}
		return nil, apperror.Gateway(result.DeclineReason)
	}

	intent.Status = model.IntentSucceeded
	intent.GatewayRef = result.TransactionID
	if err := s.saveIntent(ctx, intent); err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *paymentServiceImpl) CancelIntent(ctx context.Context, intentID, reason string) (*model.PaymentIntent, error) {
	intent, err := s.getIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case model.IntentCancelled:
		return intent, nil
	case model.IntentSucceeded:
		return nil, apperror.Conflict("captured payments are refunded, not cancelled")
	}

	intent.Status = model.IntentCancelled
	intent.CancelReason = reason
	if err := s.saveIntent(ctx, intent); err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *paymentServiceImpl) Refund(ctx context.Context, intentID string, amount decimal.Decimal, reason, idempotencyKey string) (*model.Refund, error) {
	if !amount.IsPositive() {
		return nil, apperror.Invalid("amount", "refund amount must be greater than zero")
	}

	intent, err := s.getIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	// A replayed refund with the same key returns the recorded row instead of
	// moving money again.
	if idempotencyKey != "" {
		existing, err := s.intentRepo.FindRefundByIdempotencyKey(ctx, intent.ID, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("refund idempotency lookup: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	if intent.Status != model.IntentSucceeded {
		return nil, apperror.Conflict("only captured payments can be refunded")
	}

	provider, err := s.catalog.Get(ctx, intent.Provider)
	if err != nil {
		return nil, err
	}
	if !provider.Features.Refunds {
		return nil, apperror.RefundDenied(fmt.Sprintf("provider %q does not support refunds", provider.ID))
	}
	if amount.LessThan(intent.Amount) && !provider.Features.PartialRefunds {
		return nil, apperror.RefundDenied(fmt.Sprintf("provider %q does not support partial refunds", provider.ID))
	}

	refund := &model.Refund{
		ID:             "re_" + uuid.NewString(),
		IntentID:       intent.ID,
		Amount:         amount,
		Currency:       intent.Currency,
		Reason:         reason,
		IdempotencyKey: idempotencyKey,
	}

	refunded, err := s.intentRepo.SumRefunds(ctx, s.db, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("sum refunds: %w", err)
	}
	if refunded.Add(amount).GreaterThan(intent.Amount) {
		return nil, apperror.RefundExceeds(fmt.Sprintf(
			"refund of %s exceeds remaining captured amount %s",
			amount.StringFixed(2), intent.Amount.Sub(refunded).StringFixed(2),
		))
	}

	gateway := s.resolveGateway(provider, intent.TestMode)
	result, gwErr := gateway.Refund(ctx, client.RefundRequest{
		TransactionID: intent.GatewayRef,
		Amount:        amount,
		Currency:      intent.Currency,
		Reason:        reason,
	})
	if gwErr != nil {
		// The failed attempt is still recorded for the ledger.
		refund.Status = model.RefundFailed
		if err := s.storeRefund(ctx, refund); err != nil {
			return nil, err
		}
		return refund, apperror.Gateway(fmt.Sprintf("refund failed at provider: %v", gwErr))
	}

	refund.Status = model.RefundSucceeded
	if result.RefundID != "" {
		refund.ID = result.RefundID
	}
	if err := s.storeRefund(ctx, refund); err != nil {
		return nil, err
	}

	return refund, nil
}

func (s *paymentServiceImpl) storeRefund(ctx context.Context, refund *model.Refund) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.intentRepo.CreateRefund(ctx, tx, refund)
	})
	if err != nil {
		return fmt.Errorf("store refund: %w", err)
	}
	return nil
}

func (s *paymentServiceImpl) GetIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	return s.getIntent(ctx, intentID)
}

func (s *paymentServiceImpl) getIntent(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	intent, err := s.intentRepo.Get(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("payment intent", intentID)
		}
		return nil, fmt.Errorf("get intent: %w", err)
	}
	return intent, nil
}

func (s *paymentServiceImpl) saveIntent(ctx context.Context, intent *model.PaymentIntent) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.intentRepo.Save(ctx, tx, intent)
	})
	if err != nil {
		return fmt.Errorf("save intent: %w", err)
	}
	return nil
}

func (s *paymentServiceImpl) resolveGateway(provider *catalog.Provider, testMode bool) client.Gateway {
	if testMode {
		return s.gateways.Simulated
	}
	if provider.Type == catalog.TypeCardGateway {
		return s.gateways.Card
	}
	return s.gateways.Regional
}
