package biz

import (
	"context"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
)

// AssistantRepo is the local assistant store
type AssistantRepo interface {
	// Create inserts a record, returning ErrAssistantExists when the id is taken.
	Create(ctx context.Context, assistant *types.Assistant) error
	// GetByID returns ErrAssistantNotFound when no record has the id.
	GetByID(ctx context.Context, id string) (*types.Assistant, error)
	// List returns every record in the store's natural order.
	List(ctx context.Context) ([]*types.Assistant, error)
	// Update overwrites an existing record, returning ErrAssistantNotFound otherwise.
	Update(ctx context.Context, assistant *types.Assistant) error
	// Save inserts or overwrites the record and reports which happened.
	Save(ctx context.Context, assistant *types.Assistant) (types.SaveResult, error)
	// Rekey replaces the record stored under oldID with assistant, atomically.
	Rekey(ctx context.Context, oldID string, assistant *types.Assistant) error
}

// SettingsRepo stores the singleton settings record
type SettingsRepo interface {
	// Get returns empty settings when nothing was saved yet.
	Get(ctx context.Context) (*types.Settings, error)
	Save(ctx context.Context, settings *types.Settings) error
}

// SyncRunRepo stores the synchronization run log
type SyncRunRepo interface {
	Create(ctx context.Context, run *types.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*types.SyncRun, error)
}

// ModelCache caches the remote model list
type ModelCache interface {
	Get(ctx context.Context) ([]types.RemoteModel, bool, error)
	Set(ctx context.Context, models []types.RemoteModel) error
	Invalidate(ctx context.Context) error
}

// Gateway performs the remote assistant operations
type Gateway interface {
	ListModels(ctx context.Context) ([]types.RemoteModel, error)
	ListAssistants(ctx context.Context) ([]types.RemoteAssistant, error)
	CreateAssistant(ctx context.Context, fields types.AssistantFields) (*types.RemoteAssistant, error)
	UpdateAssistant(ctx context.Context, id string, fields types.AssistantFields) (*types.RemoteAssistant, error)
}

// NoopModelCache never caches anything; used when redis is disabled.
type NoopModelCache struct{}

func (NoopModelCache) Get(context.Context) ([]types.RemoteModel, bool, error) { return nil, false, nil }
func (NoopModelCache) Set(context.Context, []types.RemoteModel) error { return nil }
func (NoopModelCache) Invalidate(context.Context) error { return nil }
