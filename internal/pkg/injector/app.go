package injector

import (
	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/lk2023060901/assistant-admin/internal/server"
)

// App encapsulates all application dependencies
type App struct {
	Config     *conf.Config
	Logger     *logger.Logger
	HTTPServer *server.HTTPServer
}

// Console exposes the use cases to the operator CLI
type Console struct {
	Config     *conf.Config
	Logger     *logger.Logger
	Assistants *biz.AssistantUseCase
	Sync       *biz.SyncUseCase
	Importer   *biz.ImportUseCase
	Catalog    *biz.ModelCatalog
	Settings   *biz.SettingsUseCase
}
