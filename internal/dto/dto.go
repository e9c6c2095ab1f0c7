package dto

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/service"
)

// ErrorBody is the wire shape of every failed call.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type CreateIntentRequest struct {
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	OrderID        string            `json:"orderId"`
	CustomerID     string            `json:"customerId"`
	Provider       string            `json:"provider"`
	TestMode       bool              `json:"testMode"`
	IdempotencyKey string            `json:"idempotencyKey"`
	Metadata       map[string]string `json:"metadata"`
}

type ConfirmPaymentRequest struct {
	Token string `json:"token"`
}

type RefundPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

type CancelPaymentRequest struct {
	Reason string `json:"reason"`
}

type UpdateStageRequest struct {
	TargetStage string `json:"targetStage"`
	Notes       string `json:"notes"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CheckoutSummaryRequest struct {
	Items            []service.ItemInput `json:"items"`
	ShippingMethodID string              `json:"shippingMethodId"`
	Country          string              `json:"country"`
	Currency         string              `json:"currency"`
	DiscountAmount   decimal.Decimal     `json:"discountAmount"`
}

type CheckoutSubmitRequest struct {
	CustomerInfo      CustomerInfo        `json:"customerInfo"`
	Items             []service.ItemInput `json:"items"`
	ShippingAddressID string              `json:"shippingAddressId"`
	ShippingMethodID  string              `json:"shippingMethodId"`
	ProviderRef       string              `json:"providerRef"`
	MethodTag         string              `json:"methodTag"`
	PaymentToken      string              `json:"paymentToken"`
	DiscountAmount    decimal.Decimal     `json:"discountAmount"`
	IdempotencyKey    string              `json:"idempotencyKey"`
}
