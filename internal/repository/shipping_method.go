package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-backend/internal/model"
)

type ShippingMethodRepository interface {
	Seed(ctx context.Context) error
	Get(ctx context.Context, methodID string) (*model.ShippingMethod, error)
	ListEnabled(ctx context.Context) ([]*model.ShippingMethod, error)
}

type shippingMethodRepoImpl struct {
	db *gorm.DB
}

func NewShippingMethodRepository(db *gorm.DB) ShippingMethodRepository {
	return &shippingMethodRepoImpl{
		db: db,
	}
}

func (r *shippingMethodRepoImpl) Seed(ctx context.Context) error {
	methods := []model.ShippingMethod{
		{ID: "standard", Name: "Standard Delivery", BaseCost: decimal.NewFromInt(25), Currency: "SAR", EstimatedDays: 5, Enabled: true},
		{ID: "express", Name: "Express Delivery", BaseCost: decimal.NewFromInt(50), Currency: "SAR", EstimatedDays: 2, Enabled: true},
		{ID: "pickup", Name: "Store Pickup", Type: model.ShippingTypePickup, BaseCost: decimal.NewFromInt(15), Currency: "SAR", Enabled: true},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
}

func (r *shippingMethodRepoImpl) Get(ctx context.Context, methodID string) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("id = ?", methodID).
		First(&method).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	return &method, nil
}

func (r *shippingMethodRepoImpl) ListEnabled(ctx context.Context) ([]*model.ShippingMethod, error) {
	var methods []*model.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&methods).Error

	if err != nil {
		return nil, err
	}

	return methods, nil
}
