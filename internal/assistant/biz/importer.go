package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"

	"go.uber.org/zap"
)

// ImportUseCase materializes one remote assistant as a local record
type ImportUseCase struct {
	repo    AssistantRepo
	gateway Gateway
	logger  *logger.Logger
}

// NewImportUseCase creates a new import use case
func NewImportUseCase(repo AssistantRepo, gateway Gateway, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{repo: repo, gateway: gateway, logger: log}
}

// ListCandidates returns every remote assistant, already imported ones included
func (uc *ImportUseCase) ListCandidates(ctx context.Context) ([]types.ImportCandidate, error) {
	remoteList, err := uc.gateway.ListAssistants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote assistants: %w", err)
	}

	candidates := make([]types.ImportCandidate, 0, len(remoteList))
	for i := range remoteList {
		candidates = append(candidates, types.ImportCandidate{
			ID:          remoteList[i].ID,
			DisplayName: remoteList[i].DisplayName(),
		})
	}
	return candidates, nil
}

// Import copies the remote assistant selectedID into the local store. The remote
// list is fetched again so a vanished selection fails with ErrRemoteAssistantNotFound.
func (uc *ImportUseCase) Import(ctx context.Context, selectedID string) (*types.Assistant, error) {
	if selectedID == "" {
		return nil, invalid("id", "is required")
	}

	remoteList, err := uc.gateway.ListAssistants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote assistants: %w", err)
	}

	var remote *types.RemoteAssistant
	for i := range remoteList {
		if remoteList[i].ID == selectedID {
			remote = &remoteList[i]
			break
		}
	}
	if remote == nil {
		return nil, fmt.Errorf("%w: %s", ErrRemoteAssistantNotFound, selectedID)
	}

	if _, err := uc.repo.GetByID(ctx, selectedID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, selectedID)
	} else if !errors.Is(err, ErrAssistantNotFound) {
		return nil, err
	}

	assistant := &types.Assistant{
		ID:                 remote.ID,
		Label:              importLabel(remote),
		Description:        remote.Description,
		Model:              remote.Model,
		Temperature:        remote.Temperature,
		TopP:               remote.TopP,
		SystemInstructions: remote.Instructions,
		Enabled:            true,
	}
	if err := uc.repo.Create(ctx, assistant); err != nil {
		if errors.Is(err, ErrAssistantExists) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, selectedID)
		}
		return nil, fmt.Errorf("failed to import assistant: %w", err)
	}

	uc.logger.WithContext(ctx).Info("assistant imported",
		zap.String("assistant_id", assistant.ID),
		zap.String("label", assistant.Label),
	)
	return assistant, nil
}

// importLabel is the label an imported record gets: the name shown in the
// selector, trimmed to the local label limit.
func importLabel(remote *types.RemoteAssistant) string {
	label := strings.TrimSpace(remote.DisplayName())
	if label == "" {
		label = remote.ID
	}
	if runes := []rune(label); len(runes) > MaxLabelLength {
		label = strings.TrimSpace(string(runes[:MaxLabelLength]))
	}
	return label
}
