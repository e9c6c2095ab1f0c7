package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-backend/internal/apperror"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func TestAdvance_FullPhysicalLifecycle(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, physicalBookOrder("ord-1"))

	for _, stage := range []string{
		model.StagePaid, model.StageShipped, model.StageDelivered, model.StageReviewed,
	} {
		order, err := svc.Advance(ctx, "ord-1", stage, "")
		require.NoError(t, err, "advancing to %s", stage)
		assert.Equal(t, stage, order.CurrentStage)
	}
}

func TestAdvance_SkippingStagesRejected(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, physicalBookOrder("ord-1"))

	tests := []struct {
		name   string
		target string
	}{
		{"ordered to shipped", model.StageShipped},
		{"ordered to delivered", model.StageDelivered},
		{"ordered to reviewed", model.StageReviewed},
		{"ordered to ordered", model.StageOrdered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Advance(ctx, "ord-1", tt.target, "")
			require.Error(t, err)
			assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
		})
	}
}

func TestAdvance_BackwardsRejected(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, physicalBookOrder("ord-1"))
	_, err := svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, "ord-1", model.StageShipped, "")
	require.NoError(t, err)

	_, err = svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.Error(t, err)
	assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
}

func TestAdvance_CancelSideExit(t *testing.T) {
	ctx := context.Background()

	advanceTo := func(t *testing.T, svc LifecycleService, id string, stages ...string) {
		t.Helper()
		for _, stage := range stages {
			_, err := svc.Advance(ctx, id, stage, "")
			require.NoError(t, err)
		}
	}

	t.Run("from ordered", func(t *testing.T) {
		db := testDB(t)
		svc := newTestLifecycleService(db)
		seedOrder(t, db, physicalBookOrder("ord-1"))

		order, err := svc.Advance(ctx, "ord-1", model.StageCancelled, "customer request")
		require.NoError(t, err)
		assert.Equal(t, model.StageCancelled, order.CurrentStage)
		require.NotNil(t, order.CancelledAt)
	})

	t.Run("from shipped", func(t *testing.T) {
		db := testDB(t)
		svc := newTestLifecycleService(db)
		seedOrder(t, db, physicalBookOrder("ord-1"))
		advanceTo(t, svc, "ord-1", model.StagePaid, model.StageShipped)

		_, err := svc.Advance(ctx, "ord-1", model.StageCancelled, "lost in transit")
		require.NoError(t, err)
	})

	t.Run("not from delivered", func(t *testing.T) {
		db := testDB(t)
		svc := newTestLifecycleService(db)
		seedOrder(t, db, physicalBookOrder("ord-1"))
		advanceTo(t, svc, "ord-1", model.StagePaid, model.StageShipped, model.StageDelivered)

		_, err := svc.Advance(ctx, "ord-1", model.StageCancelled, "")
		require.Error(t, err)
		assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
	})

	t.Run("not from cancelled", func(t *testing.T) {
		db := testDB(t)
		svc := newTestLifecycleService(db)
		seedOrder(t, db, physicalBookOrder("ord-1"))
		advanceTo(t, svc, "ord-1", model.StageCancelled)

		_, err := svc.Advance(ctx, "ord-1", model.StageCancelled, "")
		require.Error(t, err)
		assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
	})
}

func TestAdvance_CancelledIsTerminal(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, physicalBookOrder("ord-1"))
	_, err := svc.Advance(ctx, "ord-1", model.StageCancelled, "")
	require.NoError(t, err)

	_, err = svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.Error(t, err)
	assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
}

func TestAdvance_DigitalOrderSkipsShipped(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, digitalOnlyOrder("ord-1"))

	order, err := svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.NoError(t, err)
	assert.Equal(t, model.StagePaid, order.CurrentStage)

	// nothing to ship
	_, err = svc.Advance(ctx, "ord-1", model.StageShipped, "")
	require.Error(t, err)
	assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))

	order, err = svc.Advance(ctx, "ord-1", model.StageDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, model.StageDelivered, order.CurrentStage)
	require.NotNil(t, order.DeliveredAt)
	assert.Nil(t, order.ShippedAt)
}

func TestAdvance_PaidDeliversDigitalItems(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, digitalOnlyOrder("ord-1"))

	order, err := svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.True(t, item.IsDelivered, "item %s", item.ProductID)
		assert.Contains(t, item.DownloadURL, "/downloads/ord-1/"+item.ProductID)
		assert.Contains(t, item.DownloadURL, "token=")
		require.NotNil(t, item.DeliveredAt)
	}
}

func TestAdvance_DownloadURLsAreStable(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, digitalOnlyOrder("ord-a"))
	a, err := svc.Advance(ctx, "ord-a", model.StagePaid, "")
	require.NoError(t, err)

	// the link is a pure function of the order/product pair, so it can be
	// recomputed from scratch and must come out identical
	token := uuid.NewSHA1(uuid.NameSpaceURL, []byte("ord-a:ebook-1"))
	want := fmt.Sprintf("/downloads/ord-a/ebook-1?token=%s", token)
	assert.Equal(t, want, a.Items[0].DownloadURL)

	// a different order gets a different link for the same product
	seedOrder(t, db, digitalOnlyOrder("ord-b"))
	b, err := svc.Advance(ctx, "ord-b", model.StagePaid, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.Items[0].DownloadURL, b.Items[0].DownloadURL)
}

// failingItemOrderRepo behaves like the real repository except that item rows
// never persist, simulating a fulfillment write failure mid-transaction.
type failingItemOrderRepo struct {
	repository.OrderRepository
}

func (r failingItemOrderRepo) SaveItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return errors.New("disk full")
}

func TestAdvance_DeliveryFailureRollsBackTransition(t *testing.T) {
	db := testDB(t)
	orders := repository.NewOrderRepository(db)
	svc := NewLifecycleService(db, failingItemOrderRepo{orders}, "/downloads")
	ctx := context.Background()

	seedOrder(t, db, digitalOnlyOrder("ord-1"))

	_, err := svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.Error(t, err)
	assert.Equal(t, apperror.EDELIVERY, apperror.Code(err))

	// the whole transition rolled back: still ordered, no history row,
	// nothing delivered
	order, err := orders.Get(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, model.StageOrdered, order.CurrentStage)
	assert.Empty(t, order.StageHistory)
	assert.Nil(t, order.PaidAt)
	for _, item := range order.Items {
		assert.False(t, item.IsDelivered, "item %s", item.ProductID)
		assert.Empty(t, item.DownloadURL)
	}
}

func TestAdvance_MixedOrderDeliversDigitalOnPaid(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	mixed := physicalBookOrder("ord-1")
	mixed.Items = append(mixed.Items, model.OrderItem{
		ProductID: "ebook-1", Type: model.ItemEbook, Price: d("45"), Quantity: 1,
	})
	seedOrder(t, db, mixed)

	order, err := svc.Advance(ctx, "ord-1", model.StagePaid, "")
	require.NoError(t, err)

	var book, ebook *model.OrderItem
	for i := range order.Items {
		switch order.Items[i].ProductID {
		case "book-1":
			book = &order.Items[i]
		case "ebook-1":
			ebook = &order.Items[i]
		}
	}
	require.NotNil(t, book)
	require.NotNil(t, ebook)

	assert.True(t, ebook.IsDelivered)
	assert.NotEmpty(t, ebook.DownloadURL)
	assert.False(t, book.IsDelivered)
	assert.Empty(t, book.DownloadURL)

	// the physical half still goes through shipped
	order, err = svc.Advance(ctx, "ord-1", model.StageShipped, "")
	require.NoError(t, err)
	assert.Equal(t, model.StageShipped, order.CurrentStage)
}

func TestAdvance_RecordsStageHistory(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)
	ctx := context.Background()

	seedOrder(t, db, physicalBookOrder("ord-1"))

	_, err := svc.Advance(ctx, "ord-1", model.StagePaid, "paid via stripe")
	require.NoError(t, err)
	order, err := svc.Advance(ctx, "ord-1", model.StageShipped, "tracking SMSA-123")
	require.NoError(t, err)

	require.Len(t, order.StageHistory, 2)
	assert.Equal(t, model.StagePaid, order.StageHistory[0].Stage)
	assert.Equal(t, "paid via stripe", order.StageHistory[0].Notes)
	assert.Equal(t, model.StageShipped, order.StageHistory[1].Stage)
	assert.Equal(t, "tracking SMSA-123", order.StageHistory[1].Notes)
	assert.False(t, order.StageHistory[1].CreatedAt.Before(order.StageHistory[0].CreatedAt))

	require.NotNil(t, order.PaidAt)
	require.NotNil(t, order.ShippedAt)
}

func TestAdvance_UnknownOrder(t *testing.T) {
	svc := newTestLifecycleService(testDB(t))

	_, err := svc.Advance(context.Background(), "ord-missing", model.StagePaid, "")
	require.Error(t, err)
	assert.Equal(t, apperror.ENOTFOUND, apperror.Code(err))
}

func TestAdvance_UnknownStage(t *testing.T) {
	db := testDB(t)
	svc := newTestLifecycleService(db)

	seedOrder(t, db, physicalBookOrder("ord-1"))

	_, err := svc.Advance(context.Background(), "ord-1", "archived", "")
	require.Error(t, err)
	assert.Equal(t, apperror.ETRANSITION, apperror.Code(err))
}
