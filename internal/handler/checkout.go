package handler

import (
	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutSummaryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	summary, err := h.checkoutService.Summary(ctx, service.SummaryRequest{
		Items:            req.Items,
		ShippingMethodID: req.ShippingMethodID,
		Country:          req.Country,
		Currency:         req.Currency,
		DiscountAmount:   req.DiscountAmount,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "summary", summary)
}

func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	var req dto.CheckoutSubmitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.checkoutService.Submit(ctx, service.SubmitRequest{
		CustomerID: customerID,
		CustomerInfo: service.CustomerSeed{
			DisplayName: req.CustomerInfo.Name,
			Email:       req.CustomerInfo.Email,
			Phone:       req.CustomerInfo.Phone,
		},
		Items:             req.Items,
		ShippingAddressID: req.ShippingAddressID,
		ShippingMethodID:  req.ShippingMethodID,
		ProviderRef:       req.ProviderRef,
		MethodTag:         req.MethodTag,
		PaymentToken:      req.PaymentToken,
		DiscountAmount:    req.DiscountAmount,
		IdempotencyKey:    req.IdempotencyKey,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "result", result)
}
