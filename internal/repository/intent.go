package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

var nonTerminalStatuses = []string{
	model.IntentRequiresPaymentMethod,
	model.IntentRequiresCapture,
}

type IntentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, intent *model.PaymentIntent) error
	Get(ctx context.Context, intentID string) (*model.PaymentIntent, error)
	FindActiveByOrder(ctx context.Context, tx *gorm.DB, orderID string) (*model.PaymentIntent, error)
	FindByIdempotencyKey(ctx context.Context, orderID, key string) (*model.PaymentIntent, error)
	HasSucceededForOrder(ctx context.Context, tx *gorm.DB, orderID string) (bool, error)
	Save(ctx context.Context, tx *gorm.DB, intent *model.PaymentIntent) error
	CreateRefund(ctx context.Context, tx *gorm.DB, refund *model.Refund) error
	FindRefundByIdempotencyKey(ctx context.Context, intentID, key string) (*model.Refund, error)
	SumRefunds(ctx context.Context, tx *gorm.DB, intentID string) (decimal.Decimal, error)
}

type intentRepoImpl struct {
	db *gorm.DB
}

func NewIntentRepository(db *gorm.DB) IntentRepository {
	return &intentRepoImpl{
		db: db,
	}
}

func (r *intentRepoImpl) Create(ctx context.Context, tx *gorm.DB, intent *model.PaymentIntent) error {
	return tx.WithContext(ctx).Create(intent).Error
}

func (r *intentRepoImpl) Get(ctx context.Context, intentID string) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("id = ?", intentID).
		First(&intent).Error

	if err != nil {
		return nil, err
	}

	return &intent, nil
}

// FindActiveByOrder returns the order's non-terminal intent, or nil when
// there is none. At most one can exist at a time.
func (r *intentRepoImpl) FindActiveByOrder(ctx context.Context, tx *gorm.DB, orderID string) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	err := tx.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID, nonTerminalStatuses).
		First(&intent).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &intent, nil
}

func (r *intentRepoImpl) FindByIdempotencyKey(ctx context.Context, orderID, key string) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND idempotency_key = ?", orderID, key).
		First(&intent).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &intent, nil
}

func (r *intentRepoImpl) HasSucceededForOrder(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.PaymentIntent{}).
		Where("order_id = ? AND status = ?", orderID, model.IntentSucceeded).
		Count(&count).Error

	return count > 0, err
}

func (r *intentRepoImpl) Save(ctx context.Context, tx *gorm.DB, intent *model.PaymentIntent) error {
	return tx.WithContext(ctx).Save(intent).Error
}

func (r *intentRepoImpl) CreateRefund(ctx context.Context, tx *gorm.DB, refund *model.Refund) error {
	return tx.WithContext(ctx).Create(refund).Error
}

// FindRefundByIdempotencyKey returns the succeeded refund recorded under the
// key, or nil. Failed attempts are not returned; retrying them is allowed.
func (r *intentRepoImpl) FindRefundByIdempotencyKey(ctx context.Context, intentID, key string) (*model.Refund, error) {
	var refund model.Refund
	err := r.db.WithContext(ctx).
		Where("intent_id = ? AND idempotency_key = ? AND status = ?", intentID, key, model.RefundSucceeded).
		First(&refund).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &refund, nil
}

// SumRefunds totals the succeeded refunds recorded against an intent.
func (r *intentRepoImpl) SumRefunds(ctx context.Context, tx *gorm.DB, intentID string) (decimal.Decimal, error) {
	var refunds []model.Refund
	err := tx.WithContext(ctx).
		Where("intent_id = ? AND status = ?", intentID, model.RefundSucceeded).
		Find(&refunds).Error

	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, ref := range refunds {
		sum = sum.Add(ref.Amount)
	}
	return sum, nil
}
