package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"storefront-backend/internal/handler"
	appmw "storefront-backend/internal/middleware"
)

type Server struct {
	echo            *echo.Echo
	paymentHandler  *handler.PaymentHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	customerHandler *handler.CustomerHandler
}

func NewServer(
	jwtSecret string,
	paymentHandler *handler.PaymentHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	customerHandler *handler.CustomerHandler,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(appmw.AuthMiddleware(jwtSecret))

	s := &Server{
		echo:            e,
		paymentHandler:  paymentHandler,
		checkoutHandler: checkoutHandler,
		orderHandler:    orderHandler,
		customerHandler: customerHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- payments --------
	payments := api.Group("/payments")
	payments.GET("/methods", s.paymentHandler.GetAvailableMethods)
	payments.POST("/intents", s.paymentHandler.CreateIntent)
	payments.POST("/intents/:id/confirm", s.paymentHandler.ConfirmPayment)
	payments.POST("/intents/:id/cancel", s.paymentHandler.CancelPayment)
	payments.POST("/intents/:id/refund", s.paymentHandler.RefundPayment)

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/summary", s.checkoutHandler.Summary)
	checkout.POST("/submit", s.checkoutHandler.Submit)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.GET("", s.orderHandler.ListMyOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
	orders.POST("/:id/stage", s.orderHandler.UpdateStage)

	// -------- customer account --------
	account := api.Group("/account")
	account.GET("", s.customerHandler.GetMe)
	account.POST("/addresses", s.customerHandler.AddAddress)
	account.PUT("/addresses/:id", s.customerHandler.UpdateAddress)
	account.DELETE("/addresses/:id", s.customerHandler.RemoveAddress)
	account.POST("/payment-methods", s.customerHandler.AddPaymentMethod)
	account.PUT("/payment-methods/:id", s.customerHandler.UpdatePaymentMethod)
	account.DELETE("/payment-methods/:id", s.customerHandler.RemovePaymentMethod)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
