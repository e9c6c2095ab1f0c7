package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway is the one interface every external payment processor is driven
// through. Amounts are decimal in major currency units.
type Gateway interface {
	// Charge captures the amount against the customer's instrument.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	// Refund returns part or all of a captured charge.
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}

type ChargeRequest struct {
	IntentID string
	Amount   decimal.Decimal
	Currency string
	// Token is the tokenized instrument from the frontend (nonce or vault id).
	Token    string
	Metadata map[string]string
}

type ChargeResult struct {
	TransactionID string
	Status        string // "succeeded" or "declined"
	Declined      bool
	DeclineReason string
}

type RefundRequest struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	Reason        string
}

type RefundResult struct {
	RefundID string
	Status   string
}

// Tokens the simulator treats as deterministic declines. Mirrors the usual
// gateway sandbox conventions.
const (
	SimTokenDeclined          = "tok_declined"
	SimTokenInsufficientFunds = "tok_insufficient_funds"
)

// SimulatedGateway is the test-mode processor: no network, deterministic
// outcomes keyed off the instrument token so checkout flows are replayable.
type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	switch strings.TrimSpace(req.Token) {
	case SimTokenDeclined:
		return &ChargeResult{
			Status:        "declined",
			Declined:      true,
			DeclineReason: "card declined",
		}, nil
	case SimTokenInsufficientFunds:
		return &ChargeResult{
			Status:        "declined",
			Declined:      true,
			DeclineReason: "insufficient funds",
		}, nil
	}

	return &ChargeResult{
		TransactionID: "sim_" + uuid.NewString(),
		Status:        "succeeded",
	}, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	return &RefundResult{
		RefundID: "simre_" + uuid.NewString(),
		Status:   "succeeded",
	}, nil
}
