package data

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/models"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/lk2023060901/assistant-admin/internal/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.SQLiteConfig(":memory:"), logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db.DB))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleAssistant(id, label string) *types.Assistant {
	return &types.Assistant{
		ID:                 id,
		Label:              label,
		Description:        "desc " + label,
		Model:              "gpt-4o-mini",
		Temperature:        0.7,
		TopP:               0.9,
		SystemInstructions: "Be nice",
		ProjectID:          "proj_local",
		Enabled:            true,
	}
}

func TestAssistantRepo_CreateAndGet(t *testing.T) {
	repo := NewAssistantRepo(newTestDB(t))
	ctx := context.Background()

	a := sampleAssistant("asst_1", "Helper")
	require.NoError(t, repo.Create(ctx, a))
	assert.False(t, a.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "asst_1")
	require.NoError(t, err)
	assert.Equal(t, "Helper", got.Label)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 0.9, got.TopP)
	assert.Equal(t, "Be nice", got.SystemInstructions)
	assert.Equal(t, "proj_local", got.ProjectID)
	assert.True(t, got.Enabled)

	err = repo.Create(ctx, sampleAssistant("asst_1", "Again"))
	assert.ErrorIs(t, err, biz.ErrAssistantExists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, biz.ErrAssistantNotFound)

	assert.Error(t, repo.Create(ctx, sampleAssistant("", "No id")))
}

func TestAssistantRepo_ZeroValuesPersist(t *testing.T) {
	repo := NewAssistantRepo(newTestDB(t))
	ctx := context.Background()

	a := sampleAssistant("asst_zero", "Cold")
	a.Temperature = 0
	a.TopP = 0
	a.Enabled = false
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, "asst_zero")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Temperature)
	assert.Equal(t, 0.0, got.TopP)
	assert.False(t, got.Enabled)
}

func TestAssistantRepo_ListOrder(t *testing.T) {
	repo := NewAssistantRepo(newTestDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"b", "a", "c"} {
		a := sampleAssistant(id, id)
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, a))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestAssistantRepo_UpdateAndSave(t *testing.T) {
	repo := NewAssistantRepo(newTestDB(t))
	ctx := context.Background()

	a := sampleAssistant("asst_1", "Helper")
	result, err := repo.Save(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, types.SaveCreated, result)

	a.Label = "Renamed"
	a.Enabled = false
	result, err = repo.Save(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, types.SaveUpdated, result)

	got, err := repo.GetByID(ctx, "asst_1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Label)
	assert.False(t, got.Enabled)

	err = repo.Update(ctx, sampleAssistant("missing", "Ghost"))
	assert.ErrorIs(t, err, biz.ErrAssistantNotFound)
}

func TestAssistantRepo_Rekey(t *testing.T) {
	repo := NewAssistantRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAssistant("x", "A")))
	require.NoError(t, repo.Create(ctx, sampleAssistant("y", "B")))

	a, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	createdAt, updatedAt := a.CreatedAt, a.UpdatedAt
	time.Sleep(10 * time.Millisecond)
	a.ID = "asst_new"
	require.NoError(t, repo.Rekey(ctx, "x", a))

	_, err = repo.GetByID(ctx, "x")
	assert.ErrorIs(t, err, biz.ErrAssistantNotFound)
	got, err := repo.GetByID(ctx, "asst_new")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Label)
	assert.True(t, got.CreatedAt.Equal(createdAt), "rekey keeps created_at")
	assert.True(t, got.UpdatedAt.After(updatedAt), "rekey bumps updated_at")

	// target id taken: nothing changes
	b, err := repo.GetByID(ctx, "asst_new")
	require.NoError(t, err)
	b.ID = "y"
	err = repo.Rekey(ctx, "asst_new", b)
	assert.ErrorIs(t, err, biz.ErrAssistantExists)
	_, err = repo.GetByID(ctx, "asst_new")
	assert.NoError(t, err)

	err = repo.Rekey(ctx, "ghost", sampleAssistant("other", "Ghost"))
	assert.ErrorIs(t, err, biz.ErrAssistantNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSettingsRepo(t *testing.T) {
	repo := NewSettingsRepo(newTestDB(t))
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.SecretKey)

	require.NoError(t, repo.Save(ctx, &types.Settings{SecretKey: "sk-first"}))
	require.NoError(t, repo.Save(ctx, &types.Settings{SecretKey: "sk-second"}))

	s, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-second", s.SecretKey)
}

func TestSyncRunRepo(t *testing.T) {
	repo := NewSyncRunRepo(newTestDB(t))
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, &types.SyncRun{
		ID:         "run-1",
		Trigger:    "cli",
		Checked:    1,
		StartedAt:  older,
		FinishedAt: older,
	}))
	require.NoError(t, repo.Create(ctx, &types.SyncRun{
		ID:         "run-2",
		Trigger:    "http",
		Operator:   "admin",
		Checked:    2,
		Reconciled: []types.Reconciled{{Label: "A", Previous: "x", ID: "asst_a"}},
		Failures:   []types.RecordFailure{{Label: "C", ID: "z", Error: "openai create assistant: 500"}},
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}))

	runs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	latest := runs[0]
	assert.Equal(t, "run-2", latest.ID)
	assert.Equal(t, "admin", latest.Operator)
	require.Len(t, latest.Reconciled, 1)
	assert.Equal(t, types.Reconciled{Label: "A", Previous: "x", ID: "asst_a"}, latest.Reconciled[0])
	require.Len(t, latest.Failures, 1)
	assert.Equal(t, "z", latest.Failures[0].ID)

	runs, err = repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

// Requires a running redis; set REDIS_ADDR to enable.
func TestModelCache_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	cfg := redis.DefaultConfig()
	cfg.Enabled = true
	cfg.Addr = addr
	cfg.KeyPrefix = "assistant-admin-test:"
	client, err := redis.New(cfg, logger.NewNop())
	require.NoError(t, err)
	defer client.Close()

	cache := NewModelCache(client)
	ctx := context.Background()
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []types.RemoteModel{{ID: "gpt-4o-mini"}, {ID: "gpt-4o"}}
	require.NoError(t, cache.Set(ctx, want))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Invalidate(ctx))
}
