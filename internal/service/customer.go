package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

// CustomerSeed is the profile data known at auto-creation time. Blank fields
// get placeholders; supplied fields are kept verbatim.
type CustomerSeed struct {
	Email       string
	DisplayName string
	Phone       string
}

type CustomerService interface {
	GetOrCreate(ctx context.Context, customerID string, seed CustomerSeed) (*model.Customer, error)
	Get(ctx context.Context, customerID string) (*model.Customer, error)

	AddAddress(ctx context.Context, customerID string, addr *model.Address) (*model.Customer, error)
	UpdateAddress(ctx context.Context, customerID string, addr *model.Address) (*model.Customer, error)
	RemoveAddress(ctx context.Context, customerID, addressID string) (*model.Customer, error)

	AddPaymentMethod(ctx context.Context, customerID string, pm *model.SavedPaymentMethod) (*model.Customer, error)
	UpdatePaymentMethod(ctx context.Context, customerID string, pm *model.SavedPaymentMethod) (*model.Customer, error)
	RemovePaymentMethod(ctx context.Context, customerID, methodID string) (*model.Customer, error)
}

type customerServiceImpl struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
}

func NewCustomerService(db *gorm.DB, customerRepo repository.CustomerRepository) CustomerService {
	return &customerServiceImpl{
		db:           db,
		customerRepo: customerRepo,
	}
}

// GetOrCreate never fails on missing profile fields: auto-created records
// get placeholder values and skip strict validation. Real values supplied by
// the caller are never replaced with placeholders.
func (s *customerServiceImpl) GetOrCreate(ctx context.Context, customerID string, seed CustomerSeed) (*model.Customer, error) {
	customer, err := s.customerRepo.Get(ctx, customerID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	email := strings.TrimSpace(seed.Email)
	if email == "" {
		email = fmt.Sprintf("guest-%s@placeholder.invalid", shortID(customerID))
	}
	name := strings.TrimSpace(seed.DisplayName)
	if name == "" {
		name = "Guest"
	}

	customer = &model.Customer{
		ID:          customerID,
		Email:       email,
		DisplayName: name,
		Phone:       strings.TrimSpace(seed.Phone),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.customerRepo.Create(ctx, tx, customer)
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func (s *customerServiceImpl) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	customer, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (s *customerServiceImpl) AddAddress(ctx context.Context, customerID string, addr *model.Address) (*model.Customer, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr.ID = "addr_" + uuid.NewString()
	addr.CustomerID = customerID
	// The first address of its type becomes the default automatically.
	if !addr.IsDefault && !hasDefaultForType(customer.Addresses, addr.Type) {
		addr.IsDefault = true
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := s.unsetOverlappingDefaults(ctx, tx, customer.Addresses, addr.Type, ""); err != nil {
				return err
			}
		}
		return s.customerRepo.SaveAddress(ctx, tx, addr)
	})
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}

	return s.Get(ctx, customerID)
}

func (s *customerServiceImpl) UpdateAddress(ctx context.Context, customerID string, addr *model.Address) (*model.Customer, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	existing := findAddress(customer.Addresses, addr.ID)
	if existing == nil {
		return nil, apperror.NotFound("address", addr.ID)
	}

	addr.CustomerID = customerID
	addr.CreatedAt = existing.CreatedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if addr.IsDefault {
			if err := s.unsetOverlappingDefaults(ctx, tx, customer.Addresses, addr.Type, addr.ID); err != nil {
				return err
			}
		}
		return s.customerRepo.SaveAddress(ctx, tx, addr)
	})
	if err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	return s.Get(ctx, customerID)
}

func (s *customerServiceImpl) RemoveAddress(ctx context.Context, customerID, addressID string) (*model.Customer, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	removed := findAddress(customer.Addresses, addressID)
	if removed == nil {
		return nil, apperror.NotFound("address", addressID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.DeleteAddress(ctx, tx, customerID, addressID); err != nil {
			return err
		}

		// Removing the default promotes the first remaining address that
		// can serve the same type; none means no default.
		if removed.IsDefault {
			for i := range customer.Addresses {
				next := customer.Addresses[i]
				if next.ID == addressID || !next.CoversType(removed.Type) {
					continue
				}
				next.IsDefault = true
				return s.customerRepo.SaveAddress(ctx, tx, &next)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove address: %w", err)
	}

	return s.Get(ctx, customerID)
}

func (s *customerServiceImpl) AddPaymentMethod(ctx context.Context, customerID string, pm *model.SavedPaymentMethod) (*model.Customer, error) {
	if strings.TrimSpace(pm.ProviderRef) == "" {
		return nil, apperror.Invalid("providerRef", "payment method provider is required")
	}

	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	pm.ID = "pm_" + uuid.NewString()
	pm.CustomerID = customerID
	if !pm.IsDefault && !hasDefaultMethod(customer.PaymentMethods) {
		pm.IsDefault = true
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pm.IsDefault {
			if err := s.unsetMethodDefaults(ctx, tx, customer.PaymentMethods, ""); err != nil {
				return err
			}
		}
		return s.customerRepo.SavePaymentMethod(ctx, tx, pm)
	})
	if err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}

	return s.Get(ctx, customerID)
}

func (s *customerServiceImpl) UpdatePaymentMethod(ctx context.Context, customerID string, pm *model.SavedPaymentMethod) (*model.Customer, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	existing := findMethod(customer.PaymentMethods, pm.ID)
	if existing == nil {
		return nil, apperror.NotFound("payment method", pm.ID)
	}

	pm.CustomerID = customerID
	pm.CreatedAt = existing.CreatedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if pm.IsDefault {
			if err := s.unsetMethodDefaults(ctx, tx, customer.PaymentMethods, pm.ID); err != nil {
				return err
			}
		}
		return s.customerRepo.SavePaymentMethod(ctx, tx, pm)
	})
	if err != nil {
		return nil, fmt.Errorf("update payment method: %w", err)
	}

	return s.Get(ctx, customerID)
}

func (s *customerServiceImpl) RemovePaymentMethod(ctx context.Context, customerID, methodID string) (*model.Customer, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	removed := findMethod(customer.PaymentMethods, methodID)
	if removed == nil {
		return nil, apperror.NotFound("payment method", methodID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.customerRepo.DeletePaymentMethod(ctx, tx, customerID, methodID); err != nil {
			return err
		}

		if removed.IsDefault {
			for i := range customer.PaymentMethods {
				next := customer.PaymentMethods[i]
				if next.ID == methodID {
					continue
				}
				next.IsDefault = true
				return s.customerRepo.SavePaymentMethod(ctx, tx, &next)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove payment method: %w", err)
	}

	return s.Get(ctx, customerID)
}

// unsetOverlappingDefaults clears the default flag from every address whose
// type intersects the given type, inside the caller's transaction.
func (s *customerServiceImpl) unsetOverlappingDefaults(ctx context.Context, tx *gorm.DB, addresses []model.Address, addrType, exceptID string) error {
	for i := range addresses {
		other := addresses[i]
		if other.ID == exceptID || !other.IsDefault || !other.CoversType(addrType) {
			continue
		}
		other.IsDefault = false
		if err := s.customerRepo.SaveAddress(ctx, tx, &other); err != nil {
			return err
		}
	}
	return nil
}

func (s *customerServiceImpl) unsetMethodDefaults(ctx context.Context, tx *gorm.DB, methods []model.SavedPaymentMethod, exceptID string) error {
	for i := range methods {
		other := methods[i]
		if other.ID == exceptID || !other.IsDefault {
			continue
		}
		other.IsDefault = false
		if err := s.customerRepo.SavePaymentMethod(ctx, tx, &other); err != nil {
			return err
		}
	}
	return nil
}

func validateAddress(addr *model.Address) error {
	switch addr.Type {
	case model.AddressShipping, model.AddressBilling, model.AddressBoth:
	default:
		return apperror.Invalid("type", "address type must be shipping, billing or both")
	}
	if strings.TrimSpace(addr.Country) == "" {
		return apperror.Invalid("country", "address country is required")
	}
	return nil
}

func findAddress(addresses []model.Address, id string) *model.Address {
	for i := range addresses {
		if addresses[i].ID == id {
			return &addresses[i]
		}
	}
	return nil
}

func findMethod(methods []model.SavedPaymentMethod, id string) *model.SavedPaymentMethod {
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i]
		}
	}
	return nil
}

func hasDefaultForType(addresses []model.Address, addrType string) bool {
	for _, a := range addresses {
		if a.IsDefault && a.CoversType(addrType) {
			return true
		}
	}
	return false
}

func hasDefaultMethod(methods []model.SavedPaymentMethod) bool {
	for _, m := range methods {
		if m.IsDefault {
			return true
		}
	}
	return false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
