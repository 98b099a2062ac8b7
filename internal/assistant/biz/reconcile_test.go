package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/lk2023060901/assistant-admin/internal/assistant/gateway"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, label string) *types.Assistant {
	return &types.Assistant{
		ID:                 id,
		Label:              label,
		Model:              "gpt-4o-mini",
		Temperature:        1,
		TopP:               1,
		SystemInstructions: "instr " + label,
		ProjectID:          "proj",
		Enabled:            true,
	}
}

func TestSynchronize_CreatesOnlyMissingRecords(t *testing.T) {
	repo := newFakeRepo(record("x", "A"), record("y", "B"))
	gw := &fakeGateway{assistants: []types.RemoteAssistant{{ID: "y", Name: "B"}}}
	runs := &fakeRunRepo{}
	uc := NewSyncUseCase(repo, gw, runs, logger.NewNop())

	report, err := uc.Synchronize(context.Background(), TriggerCLI)
	require.NoError(t, err)

	require.Len(t, gw.createCalls, 1)
	assert.Equal(t, "A", gw.createCalls[0].Name)
	assert.Equal(t, "instr A", gw.createCalls[0].Instructions)

	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Reconciled, 1)
	assert.Equal(t, types.Reconciled{Label: "A", Previous: "x", ID: "asst_new_1"}, report.Reconciled[0])
	assert.False(t, report.HasFailures())

	assert.Equal(t, []string{"asst_new_1", "y"}, repo.ids())
	a, err := repo.GetByID(context.Background(), "asst_new_1")
	require.NoError(t, err)
	assert.Equal(t, "A", a.Label)
	assert.Equal(t, "proj", a.ProjectID)

	b, err := repo.GetByID(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, *record("y", "B"), *b)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, report.RunID, runs.runs[0].ID)
	assert.Equal(t, TriggerCLI, runs.runs[0].Trigger)
}

func TestSynchronize_EveryRecordEndsRemoteOrFailed(t *testing.T) {
	repo := newFakeRepo(record("a", "Alpha"), record("b", "Beta"), record("c", "Gamma"), record("d", "Delta"))
	gw := &fakeGateway{
		assistants: []types.RemoteAssistant{{ID: "d"}},
		createErr:  map[string]error{"Beta": errRemoteDown},
	}
	uc := NewSyncUseCase(repo, gw, &fakeRunRepo{}, logger.NewNop())

	report, err := uc.Synchronize(context.Background(), TriggerHTTP)
	require.NoError(t, err)
	assert.Len(t, gw.createCalls, 3)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Beta", report.Failures[0].Label)
	assert.Equal(t, "b", report.Failures[0].ID)
	assert.True(t, gateway.IsRemoteError(report.Failures[0].Err))

	remote, err := gw.ListAssistants(context.Background())
	require.NoError(t, err)
	remoteIDs := map[string]bool{}
	for _, r := range remote {
		remoteIDs[r.ID] = true
	}
	failed := map[string]bool{}
	for _, f := range report.Failures {
		failed[f.ID] = true
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	for _, l := range list {
		assert.True(t, remoteIDs[l.ID] || failed[l.ID], "record %s neither remote nor reported", l.ID)
	}
}

func TestSynchronize_EdgeCases(t *testing.T) {
	t.Run("empty remote list creates everything", func(t *testing.T) {
		repo := newFakeRepo(record("a", "A"), record("b", "B"))
		gw := &fakeGateway{}
		report, err := NewSyncUseCase(repo, gw, nil, logger.NewNop()).Synchronize(context.Background(), TriggerCLI)
		require.NoError(t, err)
		assert.Len(t, gw.createCalls, 2)
		assert.Len(t, report.Reconciled, 2)
	})

	t.Run("empty local list is a no-op", func(t *testing.T) {
		gw := &fakeGateway{assistants: []types.RemoteAssistant{{ID: "z"}}}
		report, err := NewSyncUseCase(newFakeRepo(), gw, nil, logger.NewNop()).Synchronize(context.Background(), TriggerCLI)
		require.NoError(t, err)
		assert.Empty(t, gw.createCalls)
		assert.Zero(t, report.Checked)
	})

	t.Run("listing failure aborts", func(t *testing.T) {
		repo := newFakeRepo(record("a", "A"))
		gw := &fakeGateway{listErr: errRemoteDown}
		runs := &fakeRunRepo{}
		_, err := NewSyncUseCase(repo, gw, runs, logger.NewNop()).Synchronize(context.Background(), TriggerCLI)
		assert.Error(t, err)
		assert.Empty(t, gw.createCalls)
		assert.Empty(t, runs.runs)
	})

	t.Run("local save failure is reported", func(t *testing.T) {
		repo := newFakeRepo(record("a", "A"))
		repo.failRekey = errors.New("disk full")
		gw := &fakeGateway{}
		report, err := NewSyncUseCase(repo, gw, nil, logger.NewNop()).Synchronize(context.Background(), TriggerCLI)
		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "a", report.Failures[0].ID)
		assert.Contains(t, report.Failures[0].Error, "asst_new_1")
	})

	t.Run("run log failure does not fail the run", func(t *testing.T) {
		repo := newFakeRepo(record("a", "A"))
		report, err := NewSyncUseCase(repo, &fakeGateway{}, &fakeRunRepo{err: errors.New("db")}, logger.NewNop()).
			Synchronize(context.Background(), TriggerCLI)
		require.NoError(t, err)
		assert.Len(t, report.Reconciled, 1)
	})
}

func TestAudit_ReadOnlyAndIdempotent(t *testing.T) {
	repo := newFakeRepo(record("x", "A"), record("y", "B"))
	gw := &fakeGateway{assistants: []types.RemoteAssistant{{ID: "y"}, {ID: "only-remote"}}}
	uc := NewSyncUseCase(repo, gw, nil, logger.NewNop())

	first, err := uc.Audit(context.Background())
	require.NoError(t, err)
	second, err := uc.Audit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []types.LocalOrphan{{Label: "A", ID: "x"}}, first.Orphans)
	assert.Equal(t, 2, first.RemoteCount)
	assert.Equal(t, 2, first.LocalCount)
	assert.Empty(t, gw.createCalls)
	assert.Zero(t, repo.writes)
}

func TestListing(t *testing.T) {
	repo := newFakeRepo(record("x", "A"), record("y", "B"))

	t.Run("orphans produce warnings and a sync hint", func(t *testing.T) {
		gw := &fakeGateway{assistants: []types.RemoteAssistant{{ID: "y"}}}
		listing, err := NewSyncUseCase(repo, gw, nil, logger.NewNop()).Listing(context.Background())
		require.NoError(t, err)
		assert.Len(t, listing.Items, 2)
		assert.Equal(t, []string{"Assistant A (ID: x) is present locally but not on the OpenAI platform."}, listing.Warnings)
		assert.True(t, listing.SyncHint)
	})

	t.Run("audit failure degrades to a warning", func(t *testing.T) {
		listing, err := NewSyncUseCase(repo, missingCredentialGateway{}, nil, logger.NewNop()).Listing(context.Background())
		require.NoError(t, err)
		assert.Len(t, listing.Items, 2)
		require.Len(t, listing.Warnings, 1)
		assert.Contains(t, listing.Warnings[0], "secret key")
		assert.False(t, listing.SyncHint)
	})
}

func TestSynchronize_MissingCredential(t *testing.T) {
	repo := newFakeRepo(record("x", "A"))
	_, err := NewSyncUseCase(repo, missingCredentialGateway{}, nil, logger.NewNop()).Synchronize(context.Background(), TriggerCLI)
	assert.ErrorIs(t, err, gateway.ErrMissingCredential)
	assert.Equal(t, []string{"x"}, repo.ids())
}
