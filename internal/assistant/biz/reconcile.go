package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sync triggers
const (
	TriggerHTTP = "http"
	TriggerCLI  = "cli"
)

// SyncUseCase compares the local store with the remote inventory. Audit only
// reports drift; Synchronize repairs it by creating missing records remotely.
type SyncUseCase struct {
	repo    AssistantRepo
	gateway Gateway
	runs    SyncRunRepo
	logger  *logger.Logger
}

// NewSyncUseCase creates a new sync use case
func NewSyncUseCase(repo AssistantRepo, gateway Gateway, runs SyncRunRepo, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{
		repo:    repo,
		gateway: gateway,
		runs:    runs,
		logger:  log,
	}
}

// OrphanMessage is the warning shown for a local record missing remotely
func OrphanMessage(o types.LocalOrphan) string {
	return fmt.Sprintf("Assistant %s (ID: %s) is present locally but not on the OpenAI platform.", o.Label, o.ID)
}

// inventory fetches both sides; the remote set is keyed by id
func (uc *SyncUseCase) inventory(ctx context.Context) (map[string]struct{}, []*types.Assistant, error) {
	remoteList, err := uc.gateway.ListAssistants(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list remote assistants: %w", err)
	}
	remoteIDs := make(map[string]struct{}, len(remoteList))
	for _, r := range remoteList {
		remoteIDs[r.ID] = struct{}{}
	}

	localList, err := uc.repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list local assistants: %w", err)
	}
	return remoteIDs, localList, nil
}

// Audit reports local records missing remotely without changing anything
func (uc *SyncUseCase) Audit(ctx context.Context) (*types.AuditReport, error) {
	remoteIDs, localList, err := uc.inventory(ctx)
	if err != nil {
		return nil, err
	}

	report := &types.AuditReport{
		RemoteCount: len(remoteIDs),
		LocalCount:  len(localList),
		Orphans:     []types.LocalOrphan{},
	}
	for _, local := range localList {
		if _, ok := remoteIDs[local.ID]; !ok {
			report.Orphans = append(report.Orphans, types.LocalOrphan{Label: local.Label, ID: local.ID})
		}
	}
	return report, nil
}

// Listing returns the local records with audit warnings. A failed audit
// degrades to a single warning so the listing still renders.
func (uc *SyncUseCase) Listing(ctx context.Context) (*types.Listing, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local assistants: %w", err)
	}

	listing := &types.Listing{Items: items, Warnings: []string{}}

	report, err := uc.Audit(ctx)
	if err != nil {
		uc.logger.WithContext(ctx).Warn("assistant audit failed", zap.Error(err))
		listing.Warnings = append(listing.Warnings, fmt.Sprintf("Could not compare with the OpenAI platform: %v", err))
		return listing, nil
	}
	for _, o := range report.Orphans {
		listing.Warnings = append(listing.Warnings, OrphanMessage(o))
	}
	listing.SyncHint = len(report.Orphans) > 0
	return listing, nil
}

// Synchronize creates every local record missing remotely and moves it to the
// remote-issued id. Failures are collected per record and the run continues.
// Only a failure to list either inventory aborts the run.
func (uc *SyncUseCase) Synchronize(ctx context.Context, trigger string) (*types.SyncReport, error) {
	log := uc.logger.WithContext(ctx)
	report := &types.SyncReport{
		RunID:      uuid.New().String(),
		Reconciled: []types.Reconciled{},
		Failures:   []types.RecordFailure{},
		StartedAt:  time.Now(),
	}

	remoteIDs, localList, err := uc.inventory(ctx)
	if err != nil {
		return nil, err
	}
	report.Checked = len(localList)

	for _, local := range localList {
		if _, ok := remoteIDs[local.ID]; ok {
			continue
		}

		previous := local.ID
		remote, err := uc.gateway.CreateAssistant(ctx, local.Fields())
		if err != nil {
			report.Failures = append(report.Failures, failure(local, err))
			log.Warn("assistant synchronization failed",
				zap.String("assistant_id", previous),
				zap.String("label", local.Label),
				zap.Error(err),
			)
			continue
		}

		local.ID = remote.ID
		if err := uc.repo.Rekey(ctx, previous, local); err != nil {
			err = fmt.Errorf("created remotely as %s but local save failed: %w", remote.ID, err)
			local.ID = previous
			report.Failures = append(report.Failures, failure(local, err))
			log.Error("assistant synchronization failed", zap.String("assistant_id", previous), zap.Error(err))
			continue
		}

		report.Reconciled = append(report.Reconciled, types.Reconciled{
			Label:    local.Label,
			Previous: previous,
			ID:       remote.ID,
		})
		log.Info("assistant synchronized",
			zap.String("label", local.Label),
			zap.String("previous_id", previous),
			zap.String("assistant_id", remote.ID),
		)
	}

	report.FinishedAt = time.Now()
	uc.record(ctx, trigger, report)

	log.Info("assistant synchronization finished",
		zap.String("run_id", report.RunID),
		zap.Int("checked", report.Checked),
		zap.Int("reconciled", len(report.Reconciled)),
		zap.Int("failed", len(report.Failures)),
	)
	return report, nil
}

// ListRuns returns the most recent synchronization runs
func (uc *SyncUseCase) ListRuns(ctx context.Context, limit int) ([]*types.SyncRun, error) {
	return uc.runs.ListRecent(ctx, limit)
}

func (uc *SyncUseCase) record(ctx context.Context, trigger string, report *types.SyncReport) {
	if uc.runs == nil {
		return
	}
	run := &types.SyncRun{
		ID:         report.RunID,
		Trigger:    trigger,
		Operator:   logger.GetOperator(ctx),
		Checked:    report.Checked,
		Reconciled: report.Reconciled,
		Failures:   report.Failures,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	if err := uc.runs.Create(ctx, run); err != nil {
		uc.logger.WithContext(ctx).Warn("failed to record sync run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func failure(a *types.Assistant, err error) types.RecordFailure {
	return types.RecordFailure{Label: a.Label, ID: a.ID, Error: err.Error(), Err: err}
}
