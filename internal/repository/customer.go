package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type CustomerRepository interface {
	Get(ctx context.Context, customerID string) (*model.Customer, error)
	Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error
	Save(ctx context.Context, tx *gorm.DB, customer *model.Customer) error

	SaveAddress(ctx context.Context, tx *gorm.DB, addr *model.Address) error
	DeleteAddress(ctx context.Context, tx *gorm.DB, customerID, addressID string) error

	SavePaymentMethod(ctx context.Context, tx *gorm.DB, pm *model.SavedPaymentMethod) error
	DeletePaymentMethod(ctx context.Context, tx *gorm.DB, customerID, methodID string) error
}

type customerRepoImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepoImpl{
		db: db,
	}
}

func (r *customerRepoImpl) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Preload("Addresses", func(db *gorm.DB) *gorm.DB {
			return db.Order("addresses.created_at ASC")
		}).
		Preload("PaymentMethods", func(db *gorm.DB) *gorm.DB {
			return db.Order("saved_payment_methods.created_at ASC")
		}).
		Where("id = ?", customerID).
		First(&customer).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepoImpl) Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error {
	return tx.WithContext(ctx).Create(customer).Error
}

func (r *customerRepoImpl) Save(ctx context.Context, tx *gorm.DB, customer *model.Customer) error {
	return tx.WithContext(ctx).Omit("Addresses", "PaymentMethods").Save(customer).Error
}

func (r *customerRepoImpl) SaveAddress(ctx context.Context, tx *gorm.DB, addr *model.Address) error {
	return tx.WithContext(ctx).Save(addr).Error
}

func (r *customerRepoImpl) DeleteAddress(ctx context.Context, tx *gorm.DB, customerID, addressID string) error {
	return tx.WithContext(ctx).
		Where("customer_id = ? AND id = ?", customerID, addressID).
		Delete(&model.Address{}).Error
}

func (r *customerRepoImpl) SavePaymentMethod(ctx context.Context, tx *gorm.DB, pm *model.SavedPaymentMethod) error {
	return tx.WithContext(ctx).Save(pm).Error
}

func (r *customerRepoImpl) DeletePaymentMethod(ctx context.Context, tx *gorm.DB, customerID, methodID string) error {
	return tx.WithContext(ctx).
		Where("customer_id = ? AND id = ?", customerID, methodID).
		Delete(&model.SavedPaymentMethod{}).Error
}
