package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	Get(ctx context.Context, orderID string) (*model.Order, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error)
	Save(ctx context.Context, tx *gorm.DB, order *model.Order) error
	SaveItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error
	AppendStage(ctx context.Context, tx *gorm.DB, rec *model.StageRecord) error
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return getOrder(r.db.WithContext(ctx), orderID)
}

func (r *orderRepoImpl) GetForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*model.Order, error) {
	return getOrder(tx.WithContext(ctx), orderID)
}

func getOrder(db *gorm.DB, orderID string) (*model.Order, error) {
	var order model.Order
	err := db.
		Preload("Items").
		Preload("StageHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_records.id ASC")
		}).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) Save(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	// Items and history rows are written through their own methods; Save
	// only touches the order row itself.
	return tx.WithContext(ctx).Omit("Items", "StageHistory").Save(order).Error
}

func (r *orderRepoImpl) SaveItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return tx.WithContext(ctx).Save(item).Error
}

func (r *orderRepoImpl) AppendStage(ctx context.Context, tx *gorm.DB, rec *model.StageRecord) error {
	return tx.WithContext(ctx).Create(rec).Error
}

func (r *orderRepoImpl) ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
