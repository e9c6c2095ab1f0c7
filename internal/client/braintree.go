package client

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
)

// BraintreeGateway drives live card charges through the Braintree SDK. Used
// for card-family providers when an intent is confirmed outside test mode.
type BraintreeGateway struct {
	gateway *braintree.Braintree
}

func NewBraintreeGateway(cfg *config.Braintree) *BraintreeGateway {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &BraintreeGateway{
		gateway: gateway,
	}
}

func (g *BraintreeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	// Braintree expects NewDecimal(unscaled, scale). For 2 decimal places:
	// 50.00 -> 5000 -> braintree.NewDecimal(5000, 2)
	cents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	btAmount := braintree.NewDecimal(cents, 2)

	txReq := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodNonce: req.Token,
		OrderId:            req.IntentID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := g.gateway.Transaction().Create(ctx, txReq)
	if err != nil {
		return nil, fmt.Errorf("braintree transaction create: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return &ChargeResult{
			Status:        "declined",
			Declined:      true,
			DeclineReason: tx.ProcessorResponseText,
		}, nil
	}

	return &ChargeResult{
		TransactionID: tx.Id,
		Status:        "succeeded",
	}, nil
}

func (g *BraintreeGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	cents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	btAmount := braintree.NewDecimal(cents, 2)

	tx, err := g.gateway.Transaction().Refund(ctx, req.TransactionID, btAmount)
	if err != nil {
		return nil, fmt.Errorf("braintree refund: %w", err)
	}

	return &RefundResult{
		RefundID: tx.Id,
		Status:   "succeeded",
	}, nil
}
