package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/handler"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/server"
	"storefront-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)

	orderRepo := repository.NewOrderRepository(db)
	intentRepo := repository.NewIntentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	settingsRepo := repository.NewProviderSettingsRepository(db)
	shippingRepo := repository.NewShippingMethodRepository(db)

	if err := shippingRepo.Seed(context.Background()); err != nil {
		log.Fatal("seed shipping methods:", err)
	}

	cat := catalog.New(settingsRepo)

	gateways := service.Gateways{
		Simulated: client.NewSimulatedGateway(),
		Card:      client.NewBraintreeGateway(&cfg.BrainTree),
		Regional:  client.NewTapGateway(&cfg.Tap),
	}

	selectorService := service.NewSelectorService(cat)
	paymentService := service.NewPaymentService(db, cat, intentRepo, gateways)
	lifecycleService := service.NewLifecycleService(db, orderRepo, cfg.Store.DownloadBaseURL)
	customerService := service.NewCustomerService(db, customerRepo)
	checkoutService := service.NewCheckoutService(
		db, cfg.Store, cat,
		selectorService,
		paymentService,
		lifecycleService,
		customerService,
		orderRepo,
		shippingRepo,
	)

	paymentHandler := handler.NewPaymentHandler(paymentService, selectorService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(lifecycleService, orderRepo)
	customerHandler := handler.NewCustomerHandler(customerService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(cfg.JWTSecret, paymentHandler, checkoutHandler, orderHandler, customerHandler)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
