package injector

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *conf.Config {
	t.Helper()
	cfg, err := conf.LoadConfig("")
	require.NoError(t, err)
	cfg.Database = *database.SQLiteConfig(filepath.Join(t.TempDir(), "assistants.db"))
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t), logger.NewNop())
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	app.HTTPServer.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.HTTPServer.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInitializeConsole(t *testing.T) {
	console, cleanup, err := InitializeConsole(testConfig(t), logger.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, console.Assistants)
	assert.NotNil(t, console.Sync)
	assert.NotNil(t, console.Importer)
	assert.NotNil(t, console.Catalog)
	assert.NotNil(t, console.Settings)
}
