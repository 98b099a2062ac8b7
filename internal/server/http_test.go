package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lk2023060901/assistant-admin/internal/assistant/service"
	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/data"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
	apperrors "github.com/lk2023060901/assistant-admin/internal/pkg/errors"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T) (*HTTPServer, *database.DB) {
	t.Helper()
	log := logger.NewNop()

	cfg, err := conf.LoadConfig("")
	require.NoError(t, err)

	db, err := database.New(database.SQLiteConfig(":memory:"), log)
	require.NoError(t, err)

	svc := service.NewAssistantService(nil, nil, nil, nil, nil, log)
	return NewHTTPServer(cfg, log, &data.Data{DB: db, Logger: log}, svc), db
}

func get(s *HTTPServer, path string) (*httptest.ResponseRecorder, gjson.Result) {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w, gjson.ParseBytes(w.Body.Bytes())
}

func TestHealth(t *testing.T) {
	s, db := newTestServer(t)

	w, body := get(s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body.Get("status").String())
	assert.Equal(t, int64(apperrors.Success), body.Get("code").Int())

	require.NoError(t, db.Close())

	w, body = get(s, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body.Get("status").String())
	assert.Equal(t, int64(apperrors.ErrServiceUnavail), body.Get("code").Int())
	assert.NotEmpty(t, body.Get("database").String())
}

func TestUnknownRoute(t *testing.T) {
	s, db := newTestServer(t)
	defer db.Close()

	w, body := get(s, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(apperrors.ErrNotFound), body.Get("code").Int())
	assert.Contains(t, body.Get("message").String(), "/api/v1/nope")
}
