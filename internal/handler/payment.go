package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type PaymentHandler struct {
	paymentService  service.PaymentService
	selectorService service.SelectorService
}

func NewPaymentHandler(paymentService service.PaymentService, selectorService service.SelectorService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:  paymentService,
		selectorService: selectorService,
	}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	intent, err := h.paymentService.CreateIntent(ctx, service.CreateIntentRequest{
		OrderID:        req.OrderID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Provider:       req.Provider,
		TestMode:       req.TestMode,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "paymentIntent", intent)
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	ctx := c.Request().Context()
	intentID := c.Param("id")

	var req dto.ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	intent, err := h.paymentService.ConfirmIntent(ctx, intentID, service.PaymentMethodData{Token: req.Token})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "result", intent)
}

func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	ctx := c.Request().Context()
	intentID := c.Param("id")

	var req dto.CancelPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	intent, err := h.paymentService.CancelIntent(ctx, intentID, req.Reason)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "result", intent)
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	ctx := c.Request().Context()
	intentID := c.Param("id")

	var req dto.RefundPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	refund, err := h.paymentService.Refund(ctx, intentID, req.Amount, req.Reason, req.IdempotencyKey)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "refund", refund)
}

// GetAvailableMethods lists the payment options for an order context given
// via query parameters.
func (h *PaymentHandler) GetAvailableMethods(c echo.Context) error {
	ctx := c.Request().Context()

	amount := decimal.Zero
	if raw := c.QueryParam("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "invalid amount")
		}
		amount = parsed
	}

	hasPhysical := strings.EqualFold(c.QueryParam("hasPhysicalItems"), "true")

	options, err := h.selectorService.Select(ctx, service.OrderContext{
		Currency:         c.QueryParam("currency"),
		Country:          c.QueryParam("country"),
		HasPhysicalItems: hasPhysical,
		Amount:           amount,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "methods", options)
}
