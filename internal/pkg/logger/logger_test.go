package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "console output",
			config: &Config{
				Level:  "info",
				Format: "console",
				Output: "console",
			},
			wantErr: false,
		},
		{
			name: "file output",
			config: &Config{
				Level:  "debug",
				Format: "json",
				Output: "file",
				File: FileConfig{
					Filename:   filepath.Join(dir, "test.log"),
					MaxSize:    10,
					MaxAge:     7,
					MaxBackups: 3,
					Compress:   true,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid level",
			config: &Config{
				Level:  "invalid",
				Format: "json",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			config: &Config{
				Level:  "info",
				Format: "invalid",
				Output: "console",
			},
			wantErr: true,
		},
		{
			name: "invalid output",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "invalid",
			},
			wantErr: true,
		},
		{
			name: "file output without filename",
			config: &Config{
				Level:  "info",
				Format: "json",
				Output: "file",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && l == nil {
				t.Error("New() returned nil logger")
			}
			if l != nil {
				_ = l.Sync()
			}
		})
	}
}

func TestContext(t *testing.T) {
	l := NewNop()

	ctx := context.Background()
	if got := l.WithContext(ctx); got != l {
		t.Error("WithContext() without values should return the same logger")
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithOperator(ctx, "alice")
	if GetRequestID(ctx) != "req-1" {
		t.Errorf("GetRequestID() = %q, want %q", GetRequestID(ctx), "req-1")
	}
	if GetOperator(ctx) != "alice" {
		t.Errorf("GetOperator() = %q, want %q", GetOperator(ctx), "alice")
	}

	ctx = ToContext(ctx, l)
	if FromContext(ctx) == nil {
		t.Error("FromContext() returned nil logger")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "****"},
		{"sk-test-1234", "****1234"},
	}
	for _, tt := range tests {
		if got := MaskSecret(tt.in); got != tt.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGinLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewNop()

	var seenOperator string
	r := gin.New()
	r.Use(GinRecovery(l), GinLoggerWithConfig(l, MiddlewareOptions{SkipPaths: []string{"/health"}}))
	r.GET("/ping", func(c *gin.Context) {
		seenOperator = GetOperator(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Operator", "bob")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
	if seenOperator != "bob" {
		t.Errorf("operator = %q, want %q", seenOperator, "bob")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("panic status = %d, want 500", w.Code)
	}
}

func TestNewWithOptions(t *testing.T) {
	l, err := NewWithOptions(WithLevel("debug"), WithFormat("console"), WithService("test"))
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}
	l.With(zap.String("key", "value")).Named("child").Debug("hello")
}
