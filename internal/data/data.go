package data

import (
	"fmt"

	"github.com/lk2023060901/assistant-admin/internal/assistant/models"
	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/pkg/database"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/lk2023060901/assistant-admin/internal/pkg/redis"

	"go.uber.org/zap"
)

// Data holds the shared storage clients. RedisClient is nil when redis is disabled.
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	Logger      *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	// Initialize database
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if config.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// Initialize Redis (optional, only caches the model list)
	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.New(&config.Redis, log)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis", zap.Error(err))
			}
		}
	}

	return d, cleanup, nil
}
