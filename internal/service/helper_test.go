package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Address{},
		&model.SavedPaymentMethod{},
		&model.Order{},
		&model.OrderItem{},
		&model.StageRecord{},
		&model.PaymentIntent{},
		&model.Refund{},
		&model.ProviderSettings{},
		&model.ShippingMethod{},
	))

	return db
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testCatalog covers the provider shapes the services branch on: a connected
// card gateway, a test-mode-only gateway, a no-refunds wallet, a
// full-refunds-only BNPL, the manual cash option, plus a disabled provider
// and a disconnected live-mode provider that must never be offered.
func testCatalog() *catalog.Catalog {
	return catalog.NewStatic([]catalog.Provider{
		{
			ID:                  "stripe",
			DisplayName:         "Stripe",
			Type:                catalog.TypeCardGateway,
			Enabled:             true,
			TestMode:            true,
			SupportedCountries:  []string{"SA", "US"},
			SupportedCurrencies: []string{"SAR", "USD"},
			Methods:             []string{catalog.MethodCreditCard, catalog.MethodApplePay},
			Fees:                catalog.Fees{Percentage: d("2.9"), Fixed: d("1"), Currency: "SAR"},
			Features:            catalog.Features{Refunds: true, PartialRefunds: true},
		},
		{
			ID:                  "stc_pay",
			DisplayName:         "STC Pay",
			Type:                catalog.TypeWallet,
			Enabled:             true,
			TestMode:            true,
			SupportedCountries:  []string{"SA"},
			SupportedCurrencies: []string{"SAR"},
			Methods:             []string{catalog.MethodSTCPay},
			Fees:                catalog.Fees{Percentage: d("1.75"), Fixed: d("0"), Currency: "SAR"},
			Features:            catalog.Features{},
		},
		{
			ID:                  "tamara",
			DisplayName:         "Tamara",
			Type:                catalog.TypeBNPL,
			Enabled:             true,
			TestMode:            true,
			SupportedCountries:  []string{"SA"},
			SupportedCurrencies: []string{"SAR"},
			Methods:             []string{catalog.MethodInstallments},
			Fees:                catalog.Fees{Percentage: d("6"), Fixed: d("0"), Currency: "SAR"},
			Features:            catalog.Features{Refunds: true},
		},
		{
			ID:                  "cash_on_delivery",
			DisplayName:         "Cash on Delivery",
			Type:                catalog.TypeManual,
			Enabled:             true,
			SupportedCountries:  []string{"*"},
			SupportedCurrencies: []string{"*"},
			Methods:             []string{catalog.MethodCashOnDeliver},
			Fees:                catalog.Fees{Percentage: d("0"), Fixed: d("10"), Currency: "SAR"},
		},
		{
			ID:                  "tabby",
			DisplayName:         "Tabby",
			Type:                catalog.TypeBNPL,
			Enabled:             false,
			TestMode:            true,
			SupportedCountries:  []string{"SA"},
			SupportedCurrencies: []string{"SAR"},
			Methods:             []string{catalog.MethodPayLater},
			Fees:                catalog.Fees{Percentage: d("5"), Fixed: d("0"), Currency: "SAR"},
		},
		{
			ID:                   "tap",
			DisplayName:          "Tap",
			Type:                 catalog.TypeCardGateway,
			Enabled:              true,
			SupportedCountries:   []string{"SA"},
			SupportedCurrencies:  []string{"SAR"},
			Methods:              []string{catalog.MethodMada},
			Fees:                 catalog.Fees{Percentage: d("2.5"), Fixed: d("1"), Currency: "SAR"},
			RequiredSecretFields: []string{"secret_key"},
		},
	})
}

func simGateways() Gateways {
	sim := client.NewSimulatedGateway()
	return Gateways{Simulated: sim, Card: sim, Regional: sim}
}

func newTestPaymentService(t *testing.T, db *gorm.DB) PaymentService {
	t.Helper()
	return NewPaymentService(db, testCatalog(), repository.NewIntentRepository(db), simGateways())
}

func newTestLifecycleService(db *gorm.DB) LifecycleService {
	return NewLifecycleService(db, repository.NewOrderRepository(db), "/downloads")
}

func testStore() config.Store {
	return config.Store{
		Currency:        "SAR",
		Country:         "SA",
		TaxRatePercent:  15,
		ShippingPerKg:   5,
		DownloadBaseURL: "/downloads",
	}
}

func seedOrder(t *testing.T, db *gorm.DB, order *model.Order) {
	t.Helper()
	require.NoError(t, db.WithContext(context.Background()).Create(order).Error)
}

// physicalBookOrder is the standard fixture: one 0.8kg book priced 150.
func physicalBookOrder(id string) *model.Order {
	return &model.Order{
		ID:           id,
		OrderNumber:  "ORD-" + id,
		CustomerID:   "cust-1",
		Currency:     "SAR",
		CurrentStage: model.StageOrdered,
		Items: []model.OrderItem{
			{ProductID: "book-1", Type: model.ItemPhysical, Price: d("150"), Quantity: 1, Weight: d("0.8")},
		},
		Subtotal: d("150"),
		Total:    d("150"),
	}
}

func digitalOnlyOrder(id string) *model.Order {
	return &model.Order{
		ID:           id,
		OrderNumber:  "ORD-" + id,
		CustomerID:   "cust-1",
		Currency:     "SAR",
		CurrentStage: model.StageOrdered,
		Items: []model.OrderItem{
			{ProductID: "ebook-1", Type: model.ItemEbook, Price: d("45"), Quantity: 1},
			{ProductID: "audio-1", Type: model.ItemAudiobook, Price: d("60"), Quantity: 1},
		},
		Subtotal: d("105"),
		Total:    d("105"),
	}
}
