package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
)

// SettingsView is the settings record as shown to operators
type SettingsView struct {
	SecretKeyMasked string    `json:"secret_key_masked"`
	SecretKeySet    bool      `json:"secret_key_set"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// SettingsUseCase manages the credential override. It is also the first
// CredentialSource consulted by the gateway.
type SettingsUseCase struct {
	repo    SettingsRepo
	catalog *ModelCatalog
	logger  *logger.Logger
}

// NewSettingsUseCase creates a settings use case
func NewSettingsUseCase(repo SettingsRepo, log *logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, logger: log}
}

// AttachCatalog lets key changes invalidate the cached model list, which
// depends on the key's account.
func (uc *SettingsUseCase) AttachCatalog(catalog *ModelCatalog) {
	uc.catalog = catalog
}

// SecretKey returns the stored override, or "" when none was saved
func (uc *SettingsUseCase) SecretKey(ctx context.Context) (string, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	return strings.TrimSpace(s.SecretKey), nil
}

// Get returns the masked settings
func (uc *SettingsUseCase) Get(ctx context.Context) (*SettingsView, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &SettingsView{
		SecretKeyMasked: logger.MaskSecret(s.SecretKey),
		SecretKeySet:    s.SecretKey != "",
		UpdatedAt:       s.UpdatedAt,
	}, nil
}

// SetSecretKey stores the override; an empty key clears it
func (uc *SettingsUseCase) SetSecretKey(ctx context.Context, key string) (*SettingsView, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s.SecretKey = strings.TrimSpace(key)
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	if uc.catalog != nil {
		uc.catalog.Invalidate(ctx)
	}

	uc.logger.WithContext(ctx).Info("openai secret key updated")

	return &SettingsView{
		SecretKeyMasked: logger.MaskSecret(s.SecretKey),
		SecretKeySet:    s.SecretKey != "",
		UpdatedAt:       s.UpdatedAt,
	}, nil
}
