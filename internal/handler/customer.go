package handler

import (
	"github.com/labstack/echo/v4"

	"storefront-backend/internal/middleware"
	"storefront-backend/internal/model"
	"storefront-backend/internal/service"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

func (h *CustomerHandler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	customer, err := h.customerService.GetOrCreate(ctx, customerID, service.CustomerSeed{})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	var addr model.Address
	if err := c.Bind(&addr); err != nil {
		return badRequest(c, "invalid request body")
	}

	customer, err := h.customerService.AddAddress(ctx, customerID, &addr)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	var addr model.Address
	if err := c.Bind(&addr); err != nil {
		return badRequest(c, "invalid request body")
	}
	addr.ID = c.Param("id")

	customer, err := h.customerService.UpdateAddress(ctx, customerID, &addr)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) RemoveAddress(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	customer, err := h.customerService.RemoveAddress(ctx, customerID, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) AddPaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	var pm model.SavedPaymentMethod
	if err := c.Bind(&pm); err != nil {
		return badRequest(c, "invalid request body")
	}

	customer, err := h.customerService.AddPaymentMethod(ctx, customerID, &pm)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) UpdatePaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	var pm model.SavedPaymentMethod
	if err := c.Bind(&pm); err != nil {
		return badRequest(c, "invalid request body")
	}
	pm.ID = c.Param("id")

	customer, err := h.customerService.UpdatePaymentMethod(ctx, customerID, &pm)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}

func (h *CustomerHandler) RemovePaymentMethod(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	customer, err := h.customerService.RemovePaymentMethod(ctx, customerID, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "customer", customer)
}
