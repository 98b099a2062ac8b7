package data

import (
	"context"
	"fmt"

	"github.com/lk2023060901/assistant-admin/internal/assistant/models"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
)

const defaultSyncRunLimit = 20

// SyncRunRepo persists the synchronization run log
type SyncRunRepo struct {
	db *database.DB
}

// NewSyncRunRepo creates a new sync run repository
func NewSyncRunRepo(db *database.DB) *SyncRunRepo {
	return &SyncRunRepo{db: db}
}

// Create records a finished run
func (r *SyncRunRepo) Create(ctx context.Context, run *types.SyncRun) error {
	model := &models.SyncRun{
		ID:              run.ID,
		Trigger:         run.Trigger,
		Operator:        run.Operator,
		Checked:         run.Checked,
		ReconciledCount: len(run.Reconciled),
		FailedCount:     len(run.Failures),
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
	}
	for _, rc := range run.Reconciled {
		model.Details.Reconciled = append(model.Details.Reconciled, models.SyncRunEntry{
			Label:    rc.Label,
			ID:       rc.ID,
			Previous: rc.Previous,
		})
	}
	for _, f := range run.Failures {
		model.Details.Failures = append(model.Details.Failures, models.SyncRunEntry{
			Label: f.Label,
			ID:    f.ID,
			Error: f.Error,
		})
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create sync run: %w", err)
	}
	return nil
}

// ListRecent returns the latest runs, newest first
func (r *SyncRunRepo) ListRecent(ctx context.Context, limit int) ([]*types.SyncRun, error) {
	if limit <= 0 {
		limit = defaultSyncRunLimit
	}

	var modelList []models.SyncRun
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	runs := make([]*types.SyncRun, 0, len(modelList))
	for i := range modelList {
		runs = append(runs, toSyncRun(&modelList[i]))
	}
	return runs, nil
}

func toSyncRun(m *models.SyncRun) *types.SyncRun {
	run := &types.SyncRun{
		ID:         m.ID,
		Trigger:    m.Trigger,
		Operator:   m.Operator,
		Checked:    m.Checked,
		Reconciled: make([]types.Reconciled, 0, len(m.Details.Reconciled)),
		Failures:   make([]types.RecordFailure, 0, len(m.Details.Failures)),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
	for _, e := range m.Details.Reconciled {
		run.Reconciled = append(run.Reconciled, types.Reconciled{Label: e.Label, Previous: e.Previous, ID: e.ID})
	}
	for _, e := range m.Details.Failures {
		run.Failures = append(run.Failures, types.RecordFailure{Label: e.Label, ID: e.ID, Error: e.Error})
	}
	return run
}
