package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

// stageSequence is the fixed forward order of the fulfillment lifecycle.
var stageSequence = []string{
	model.StageOrdered,
	model.StagePaid,
	model.StageShipped,
	model.StageDelivered,
	model.StageReviewed,
}

type LifecycleService interface {
	// Advance moves the order to targetStage if the transition is legal,
	// recording history and firing stage side effects atomically.
	Advance(ctx context.Context, orderID, targetStage, notes string) (*model.Order, error)
}

type lifecycleServiceImpl struct {
	db              *gorm.DB
	orderRepo       repository.OrderRepository
	downloadBaseURL string
}

func NewLifecycleService(db *gorm.DB, orderRepo repository.OrderRepository, downloadBaseURL string) LifecycleService {
	return &lifecycleServiceImpl{
		db:              db,
		orderRepo:       orderRepo,
		downloadBaseURL: downloadBaseURL,
	}
}

func (s *lifecycleServiceImpl) Advance(ctx context.Context, orderID, targetStage, notes string) (*model.Order, error) {
	var order *model.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("order", orderID)
			}
			return fmt.Errorf("load order: %w", err)
		}

		if err := validateTransition(order, targetStage); err != nil {
			return err
		}

		now := time.Now()

		if targetStage == model.StagePaid {
			// Digital delivery rides the same transaction: a failure here
			// rolls the whole transition back and the order stays ordered.
			if err := s.deliverDigitalItems(ctx, tx, order, now); err != nil {
				return apperror.DeliveryFailed(fmt.Sprintf("digital fulfillment failed: %v", err))
			}
		}

		order.CurrentStage = targetStage
		setStageTimestamp(order, targetStage, now)

		rec := &model.StageRecord{
			OrderID:   order.ID,
			Stage:     targetStage,
			Notes:     notes,
			CreatedAt: now,
		}
		if err := s.orderRepo.AppendStage(ctx, tx, rec); err != nil {
			return fmt.Errorf("append stage history: %w", err)
		}
		order.StageHistory = append(order.StageHistory, *rec)

		if err := s.orderRepo.Save(ctx, tx, order); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// validateTransition enforces the forward-only sequence with the cancel side
// exit. Digital-only orders skip shipped entirely.
func validateTransition(order *model.Order, target string) error {
	current := order.CurrentStage

	if target == model.StageCancelled {
		switch current {
		case model.StageOrdered, model.StagePaid, model.StageShipped:
			return nil
		}
		return apperror.Transition(current, target)
	}

	if target == nextStage(order) {
		// Shipping a parcel needs a parcel.
		if target == model.StageShipped && !order.HasPhysicalItems() {
			return apperror.Transition(current, target)
		}
		return nil
	}

	return apperror.Transition(current, target)
}

// nextStage returns the only legal forward target from the order's current
// stage, or "" when the order is terminal.
func nextStage(order *model.Order) string {
	// All-digital orders have nothing to ship; paid hands off straight to
	// delivered.
	if order.CurrentStage == model.StagePaid && !order.HasPhysicalItems() {
		return model.StageDelivered
	}

	for i, stage := range stageSequence {
		if stage == order.CurrentStage && i+1 < len(stageSequence) {
			return stageSequence[i+1]
		}
	}
	return ""
}

func setStageTimestamp(order *model.Order, stage string, now time.Time) {
	switch stage {
	case model.StagePaid:
		order.PaidAt = &now
	case model.StageShipped:
		order.ShippedAt = &now
	case model.StageDelivered:
		order.DeliveredAt = &now
	case model.StageReviewed:
		order.ReviewedAt = &now
	case model.StageCancelled:
		order.CancelledAt = &now
	}
}

// deliverDigitalItems marks every ebook/audiobook item delivered and assigns
// its download reference. Already-delivered items keep their URL, so a
// replayed paid entry never hands out a different link.
func (s *lifecycleServiceImpl) deliverDigitalItems(ctx context.Context, tx *gorm.DB, order *model.Order, now time.Time) error {
	for i := range order.Items {
		item := &order.Items[i]
		if !item.IsDigital() || item.IsDelivered {
			continue
		}

		item.IsDelivered = true
		item.DeliveredAt = &now
		item.DownloadURL = s.downloadURL(order.ID, item.ProductID)

		if err := s.orderRepo.SaveItem(ctx, tx, item); err != nil {
			return fmt.Errorf("store delivery for product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// downloadURL derives a stable opaque reference from order and product ids,
// so regeneration is impossible by construction.
func (s *lifecycleServiceImpl) downloadURL(orderID, productID string) string {
	token := uuid.NewSHA1(uuid.NameSpaceURL, []byte(orderID+":"+productID))
	return fmt.Sprintf("%s/%s/%s?token=%s", s.downloadBaseURL, orderID, productID, token.String())
}
