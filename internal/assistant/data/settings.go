package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/assistant-admin/internal/assistant/models"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
)

// SettingsRepo stores the singleton settings row
type SettingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored settings, or empty settings when none were saved
func (r *SettingsRepo) Get(ctx context.Context) (*types.Settings, error) {
	var model models.Settings
	if err := r.db.WithContext(ctx).First(&model, models.SettingsSingletonID).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return &types.Settings{}, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &types.Settings{
		SecretKey: model.SecretKey,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// Save upserts the settings row
func (r *SettingsRepo) Save(ctx context.Context, settings *types.Settings) error {
	model := &models.Settings{
		ID:        models.SettingsSingletonID,
		SecretKey: settings.SecretKey,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	settings.UpdatedAt = model.UpdatedAt
	return nil
}
