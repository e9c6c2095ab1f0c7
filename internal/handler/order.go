package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"
)

type OrderHandler struct {
	lifecycleService service.LifecycleService
	orderRepo        repository.OrderRepository
}

func NewOrderHandler(lifecycleService service.LifecycleService, orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{
		lifecycleService: lifecycleService,
		orderRepo:        orderRepo,
	}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	order, err := h.orderRepo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperror.NotFound("order", orderID))
		}
		return fail(c, err)
	}

	return ok(c, "order", order)
}

func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	customerID := middleware.CustomerID(c)

	orders, err := h.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "orders", orders)
}

func (h *OrderHandler) UpdateStage(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("id")

	var req dto.UpdateStageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.TargetStage == "" {
		return fail(c, apperror.Invalid("targetStage", "target stage is required"))
	}

	order, err := h.lifecycleService.Advance(ctx, orderID, req.TargetStage, req.Notes)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "order", order)
}
