package client

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatal(err)
	}

	return db
}
