package biz

import (
	"context"
	"errors"
	"fmt"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"

	"go.uber.org/zap"
)

// Defaults for records that have not been created yet
const (
	DefaultTemperature  = 1.0
	DefaultTopP         = 1.0
	DefaultInstructions = "You are a friendly and helpful assistant."
)

// AssistantUseCase mirrors local create and edit submissions to the gateway
type AssistantUseCase struct {
	repo           AssistantRepo
	gateway        Gateway
	catalog        *ModelCatalog
	preferredModel string
	logger         *logger.Logger
}

// NewAssistantUseCase creates a new assistant use case
func NewAssistantUseCase(
	repo AssistantRepo,
	gateway Gateway,
	catalog *ModelCatalog,
	preferredModel string,
	log *logger.Logger,
) *AssistantUseCase {
	return &AssistantUseCase{
		repo:           repo,
		gateway:        gateway,
		catalog:        catalog,
		preferredModel: preferredModel,
		logger:         log,
	}
}

// SaveMessage is the operator message for a save outcome
func SaveMessage(result types.SaveResult, label string) string {
	if result == types.SaveCreated {
		return fmt.Sprintf("Created new assistant %s.", label)
	}
	return fmt.Sprintf("Updated assistant %s.", label)
}

// NewDefaults returns the values a creation form starts from, plus the model
// option set. When models cannot be listed the model stays blank and the
// listing error is returned alongside the defaults.
func (uc *AssistantUseCase) NewDefaults(ctx context.Context) (*types.Assistant, []types.RemoteModel, error) {
	defaults := &types.Assistant{
		Temperature:        DefaultTemperature,
		TopP:               DefaultTopP,
		SystemInstructions: DefaultInstructions,
		Enabled:            true,
	}

	list, err := uc.catalog.Models(ctx)
	if err != nil {
		return defaults, nil, err
	}
	if uc.preferredModel != "" && containsModel(list, uc.preferredModel) {
		defaults.Model = uc.preferredModel
	}
	return defaults, list, nil
}

// Get returns one local record
func (uc *AssistantUseCase) Get(ctx context.Context, id string) (*types.Assistant, error) {
	return uc.repo.GetByID(ctx, id)
}

// List returns every local record
func (uc *AssistantUseCase) List(ctx context.Context) ([]*types.Assistant, error) {
	return uc.repo.List(ctx)
}

// Create saves a New record: the remote assistant is created first and its id
// becomes the local id. Nothing is stored when the remote call fails.
func (uc *AssistantUseCase) Create(ctx context.Context, in *AssistantInput) (*types.Assistant, types.SaveResult, error) {
	assistant, err := in.Validate()
	if err != nil {
		return nil, 0, err
	}
	if err := uc.catalog.Require(ctx, assistant.Model); err != nil {
		return nil, 0, err
	}

	remote, err := uc.gateway.CreateAssistant(ctx, assistant.Fields())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create remote assistant: %w", err)
	}
	assistant.ID = remote.ID

	result, err := uc.repo.Save(ctx, assistant)
	if err != nil {
		// 远端已创建，本地保存失败；下次同步不会发现它，只能通过导入找回
		uc.logger.WithContext(ctx).Error("remote assistant created but local save failed",
			zap.String("assistant_id", remote.ID),
			zap.String("label", assistant.Label),
			zap.Error(err),
		)
		return nil, 0, fmt.Errorf("failed to save assistant %s: %w", remote.ID, err)
	}

	uc.logger.WithContext(ctx).Info("assistant created",
		zap.String("assistant_id", assistant.ID),
		zap.String("label", assistant.Label),
	)
	return assistant, result, nil
}

// Update saves a Persisted record: the remote assistant is updated with the
// submitted values and the local save only happens if that succeeds.
func (uc *AssistantUseCase) Update(ctx context.Context, id string, in *AssistantInput) (*types.Assistant, types.SaveResult, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	assistant, err := in.Validate()
	if err != nil {
		return nil, 0, err
	}
	if err := uc.catalog.Require(ctx, assistant.Model); err != nil {
		return nil, 0, err
	}

	assistant.ID = current.ID
	assistant.CreatedAt = current.CreatedAt
	if in.Enabled == nil {
		assistant.Enabled = current.Enabled
	}

	if _, err := uc.gateway.UpdateAssistant(ctx, assistant.ID, assistant.Fields()); err != nil {
		return nil, 0, fmt.Errorf("failed to update remote assistant: %w", err)
	}

	result, err := uc.repo.Save(ctx, assistant)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to save assistant %s: %w", assistant.ID, err)
	}

	uc.logger.WithContext(ctx).Info("assistant updated",
		zap.String("assistant_id", assistant.ID),
		zap.String("label", assistant.Label),
	)
	return assistant, result, nil
}

// SetEnabled toggles the local-only status flag without a remote call
func (uc *AssistantUseCase) SetEnabled(ctx context.Context, id string, enabled bool) (*types.Assistant, error) {
	assistant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	assistant.Enabled = enabled
	if err := uc.repo.Update(ctx, assistant); err != nil {
		if errors.Is(err, ErrAssistantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update assistant status: %w", err)
	}
	return assistant, nil
}
