package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	opListModels      = "list models"
	opListAssistants  = "list assistants"
	opCreateAssistant = "create assistant"
	opUpdateAssistant = "update assistant"
)

// Gateway talks to the OpenAI models and assistants endpoints.
// The secret key is resolved on every call so settings changes apply immediately.
type Gateway struct {
	config      *Config
	credentials CredentialSource
	httpClient  *http.Client
	logger      *logger.Logger
}

// New creates an OpenAI gateway
func New(cfg *Config, credentials CredentialSource, log *logger.Logger) (*Gateway, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openai configuration: %w", err)
	}
	if credentials == nil {
		return nil, errors.New("openai credential source is required")
	}
	if log == nil {
		log = logger.L()
	}

	return &Gateway{
		config:      cfg,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      log.Named("openai"),
	}, nil
}

// client builds an authenticated go-openai client, failing before any network
// activity when no secret key is available.
func (g *Gateway) client(ctx context.Context) (*openai.Client, error) {
	key, err := g.credentials.SecretKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve openai secret key: %w", err)
	}
	if key == "" {
		return nil, ErrMissingCredential
	}

	clientCfg := openai.DefaultConfig(key)
	clientCfg.BaseURL = g.config.BaseURL
	clientCfg.OrgID = g.config.Organization
	clientCfg.AssistantVersion = g.config.AssistantVersion
	clientCfg.HTTPClient = g.httpClient

	return openai.NewClientWithConfig(clientCfg), nil
}

// ListModels returns the models available to the configured key
func (g *Gateway) ListModels(ctx context.Context) ([]types.RemoteModel, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, g.fail(ctx, opListModels, start, err)
	}

	models := make([]types.RemoteModel, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: %s: model without id", ErrMalformedResponse, opListModels)
		}
		models = append(models, types.RemoteModel{ID: m.ID})
	}

	g.done(ctx, opListModels, start, zap.Int("count", len(models)))
	return models, nil
}

// ListAssistants returns every assistant of the account, following the
// pagination cursor until the listing is exhausted.
func (g *Gateway) ListAssistants(ctx context.Context) ([]types.RemoteAssistant, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	limit := g.config.PageSize
	order := "asc"
	var (
		after      *string
		assistants []types.RemoteAssistant
		pages      int
	)

	for {
		page, err := client.ListAssistants(ctx, &limit, &order, after, nil)
		if err != nil {
			return nil, g.fail(ctx, opListAssistants, start, err)
		}
		pages++

		for _, a := range page.Assistants {
			if a.ID == "" {
				return nil, fmt.Errorf("%w: %s: assistant without id", ErrMalformedResponse, opListAssistants)
			}
			assistants = append(assistants, fromOpenAI(a))
		}

		if !page.HasMore || len(page.Assistants) == 0 {
			break
		}

		next := page.Assistants[len(page.Assistants)-1].ID
		if page.LastID != nil && *page.LastID != "" {
			next = *page.LastID
		}
		if after != nil && *after == next {
			return nil, fmt.Errorf("%w: %s: pagination cursor did not advance", ErrMalformedResponse, opListAssistants)
		}
		after = &next
	}

	g.done(ctx, opListAssistants, start, zap.Int("count", len(assistants)), zap.Int("pages", pages))
	return assistants, nil
}

// CreateAssistant creates a remote assistant and returns it with its new id
func (g *Gateway) CreateAssistant(ctx context.Context, fields types.AssistantFields) (*types.RemoteAssistant, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.CreateAssistant(ctx, toRequest(fields))
	if err != nil {
		return nil, g.fail(ctx, opCreateAssistant, start, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: %s: response without id", ErrMalformedResponse, opCreateAssistant)
	}

	remote := fromOpenAI(resp)
	g.done(ctx, opCreateAssistant, start, zap.String("assistant_id", remote.ID))
	return &remote, nil
}

// UpdateAssistant overwrites the remote assistant id with fields
func (g *Gateway) UpdateAssistant(ctx context.Context, id string, fields types.AssistantFields) (*types.RemoteAssistant, error) {
	if id == "" {
		return nil, errors.New("assistant id is required for update")
	}

	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.ModifyAssistant(ctx, id, toRequest(fields))
	if err != nil {
		return nil, g.fail(ctx, opUpdateAssistant, start, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: %s: response without id", ErrMalformedResponse, opUpdateAssistant)
	}

	remote := fromOpenAI(resp)
	g.done(ctx, opUpdateAssistant, start, zap.String("assistant_id", remote.ID))
	return &remote, nil
}

func (g *Gateway) done(ctx context.Context, op string, start time.Time, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Duration("duration", time.Since(start)))
	g.logger.WithContext(ctx).Debug("openai call succeeded", fields...)
}

func (g *Gateway) fail(ctx context.Context, op string, start time.Time, err error) error {
	classified := classify(op, err)
	g.logger.WithContext(ctx).Warn("openai call failed",
		zap.String("op", op),
		zap.Duration("duration", time.Since(start)),
		zap.Error(classified),
	)
	return classified
}

// classify maps go-openai errors onto RemoteError and ErrMalformedResponse
func classify(op string, err error) error {
	var (
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		urlErr    *url.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &apiErr):
		return &RemoteError{Op: op, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	case errors.As(err, &reqErr):
		return &RemoteError{Op: op, StatusCode: reqErr.HTTPStatusCode, Err: err}
	case errors.As(err, &urlErr):
		return &RemoteError{Op: op, Err: err}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
	default:
		return &RemoteError{Op: op, Err: err}
	}
}

func toRequest(fields types.AssistantFields) openai.AssistantRequest {
	name := fields.Name
	description := fields.Description
	instructions := fields.Instructions

	return openai.AssistantRequest{
		Model:        fields.Model,
		Name:         &name,
		Description:  &description,
		Instructions: &instructions,
		Temperature:  narrow(fields.Temperature),
		TopP:         narrow(fields.TopP),
		ResponseFormat: openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

func fromOpenAI(a openai.Assistant) types.RemoteAssistant {
	return types.RemoteAssistant{
		ID:           a.ID,
		Name:         deref(a.Name),
		Description:  deref(a.Description),
		Model:        a.Model,
		Temperature:  widen(a.Temperature, 1),
		TopP:         widen(a.TopP, 1),
		Instructions: deref(a.Instructions),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func narrow(v float64) *float32 {
	f := float32(v)
	return &f
}

// widen converts through the shortest decimal form so 0.7 stays 0.7 and does
// not become 0.699999988.
func widen(v *float32, def float64) float64 {
	if v == nil {
		return def
	}
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(*v), 'g', -1, 32), 64)
	if err != nil {
		return float64(*v)
	}
	return f
}
