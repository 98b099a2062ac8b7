package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/models"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"

	"gorm.io/gorm"
)

// AssistantRepo implements the assistant repository using GORM
type AssistantRepo struct {
	db *database.DB
}

// NewAssistantRepo creates a new assistant repository
func NewAssistantRepo(db *database.DB) *AssistantRepo {
	return &AssistantRepo{db: db}
}

// Create creates a new assistant
func (r *AssistantRepo) Create(ctx context.Context, assistant *types.Assistant) error {
	return r.create(r.db.WithContext(ctx), assistant)
}

func (r *AssistantRepo) create(tx *gorm.DB, assistant *types.Assistant) error {
	if assistant.ID == "" {
		return errors.New("assistant id is required")
	}

	model := r.toModel(assistant)
	if err := tx.Create(model).Error; err != nil {
		if database.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", biz.ErrAssistantExists, assistant.ID)
		}
		return fmt.Errorf("failed to create assistant: %w", err)
	}

	assistant.CreatedAt = model.CreatedAt
	assistant.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves an assistant by ID
func (r *AssistantRepo) GetByID(ctx context.Context, id string) (*types.Assistant, error) {
	return r.getByID(r.db.WithContext(ctx), id)
}

func (r *AssistantRepo) getByID(tx *gorm.DB, id string) (*types.Assistant, error) {
	var model models.Assistant
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrAssistantNotFound
		}
		return nil, fmt.Errorf("failed to get assistant: %w", err)
	}

	return r.toDomain(&model), nil
}

// List lists all assistants ordered by creation time
func (r *AssistantRepo) List(ctx context.Context) ([]*types.Assistant, error) {
	var modelList []models.Assistant
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}

	assistants := make([]*types.Assistant, 0, len(modelList))
	for i := range modelList {
		assistants = append(assistants, r.toDomain(&modelList[i]))
	}

	return assistants, nil
}

// Update updates an existing assistant
func (r *AssistantRepo) Update(ctx context.Context, assistant *types.Assistant) error {
	return r.update(r.db.WithContext(ctx), assistant)
}

func (r *AssistantRepo) update(tx *gorm.DB, assistant *types.Assistant) error {
	assistant.UpdatedAt = time.Now()
	model := r.toModel(assistant)
	result := tx.Model(&models.Assistant{}).
		Where("id = ?", assistant.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update assistant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrAssistantNotFound
	}
	return nil
}

// Save inserts the assistant when its id is unknown and overwrites it otherwise
func (r *AssistantRepo) Save(ctx context.Context, assistant *types.Assistant) (types.SaveResult, error) {
	var result types.SaveResult
	err := r.db.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
		_, err := r.getByID(tx, assistant.ID)
		switch {
		case errors.Is(err, biz.ErrAssistantNotFound):
			result = types.SaveCreated
			return r.create(tx, assistant)
		case err != nil:
			return err
		default:
			result = types.SaveUpdated
			return r.update(tx, assistant)
		}
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// Rekey moves the record stored under oldID to assistant.ID
func (r *AssistantRepo) Rekey(ctx context.Context, oldID string, assistant *types.Assistant) error {
	if oldID == assistant.ID {
		return r.Update(ctx, assistant)
	}

	return r.db.Transaction(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := r.getByID(tx, oldID); err != nil {
			return err
		}

		// 新 id 必须空闲，避免覆盖已有记录
		if _, err := r.getByID(tx, assistant.ID); err == nil {
			return fmt.Errorf("%w: %s", biz.ErrAssistantExists, assistant.ID)
		} else if !errors.Is(err, biz.ErrAssistantNotFound) {
			return err
		}

		if err := tx.Where("id = ?", oldID).Delete(&models.Assistant{}).Error; err != nil {
			return fmt.Errorf("failed to delete assistant %s: %w", oldID, err)
		}
		assistant.UpdatedAt = time.Now()
		return r.create(tx, assistant)
	})
}

// toModel converts domain type to GORM model
func (r *AssistantRepo) toModel(a *types.Assistant) *models.Assistant {
	return &models.Assistant{
		ID:                 a.ID,
		Label:              a.Label,
		Description:        a.Description,
		Model:              a.Model,
		Temperature:        a.Temperature,
		TopP:               a.TopP,
		SystemInstructions: a.SystemInstructions,
		ProjectID:          a.ProjectID,
		Enabled:            a.Enabled,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// toDomain converts GORM model to domain type
func (r *AssistantRepo) toDomain(m *models.Assistant) *types.Assistant {
	return &types.Assistant{
		ID:                 m.ID,
		Label:              m.Label,
		Description:        m.Description,
		Model:              m.Model,
		Temperature:        m.Temperature,
		TopP:               m.TopP,
		SystemInstructions: m.SystemInstructions,
		ProjectID:          m.ProjectID,
		Enabled:            m.Enabled,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
