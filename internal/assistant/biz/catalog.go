package biz

import (
	"context"
	"fmt"

	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"

	"go.uber.org/zap"
)

// ModelCatalog serves the remote model list, optionally through a cache
type ModelCatalog struct {
	gateway Gateway
	cache   ModelCache
	logger  *logger.Logger
}

// NewModelCatalog creates a model catalog
func NewModelCatalog(gateway Gateway, cache ModelCache, log *logger.Logger) *ModelCatalog {
	if cache == nil {
		cache = NoopModelCache{}
	}
	return &ModelCatalog{gateway: gateway, cache: cache, logger: log}
}

// Models returns the model option set
func (c *ModelCatalog) Models(ctx context.Context) ([]types.RemoteModel, error) {
	cached, ok, err := c.cache.Get(ctx)
	if err != nil {
		c.logger.WithContext(ctx).Warn("model cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	list, err := c.gateway.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, list); err != nil {
		c.logger.WithContext(ctx).Warn("model cache write failed", zap.Error(err))
	}
	return list, nil
}

// Refresh drops the cache and fetches the list again
func (c *ModelCatalog) Refresh(ctx context.Context) ([]types.RemoteModel, error) {
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.WithContext(ctx).Warn("model cache invalidate failed", zap.Error(err))
	}
	return c.Models(ctx)
}

// Invalidate drops the cached list
func (c *ModelCatalog) Invalidate(ctx context.Context) {
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.WithContext(ctx).Warn("model cache invalidate failed", zap.Error(err))
	}
}

// Require fails with a ValidationError unless model is currently listed
func (c *ModelCatalog) Require(ctx context.Context, model string) error {
	list, err := c.Models(ctx)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}
	if !containsModel(list, model) {
		return invalid("model", "%q is not offered by the OpenAI platform", model)
	}
	return nil
}

func containsModel(list []types.RemoteModel, id string) bool {
	for _, m := range list {
		if m.ID == id {
			return true
		}
	}
	return false
}
