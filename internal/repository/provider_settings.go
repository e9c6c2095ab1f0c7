package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-backend/internal/model"
)

type ProviderSettingsRepository interface {
	List(ctx context.Context) ([]model.ProviderSettings, error)
	Upsert(ctx context.Context, row *model.ProviderSettings) error
}

type providerSettingsRepoImpl struct {
	db *gorm.DB
}

func NewProviderSettingsRepository(db *gorm.DB) ProviderSettingsRepository {
	return &providerSettingsRepoImpl{
		db: db,
	}
}

func (r *providerSettingsRepoImpl) List(ctx context.Context) ([]model.ProviderSettings, error) {
	var rows []model.ProviderSettings
	err := r.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *providerSettingsRepoImpl) Upsert(ctx context.Context, row *model.ProviderSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":    row.Enabled,
			"test_mode":  row.TestMode,
			"config":     row.Config,
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
}
