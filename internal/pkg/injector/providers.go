package injector

import (
	"github.com/google/wire"
	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	assistantdata "github.com/lk2023060901/assistant-admin/internal/assistant/data"
	"github.com/lk2023060901/assistant-admin/internal/assistant/gateway"
	"github.com/lk2023060901/assistant-admin/internal/assistant/service"
	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/data"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/lk2023060901/assistant-admin/internal/server"
)

// Data layer providers
var dataProviderSet = wire.NewSet(
	provideData,
)

// Repository providers
var repositoryProviderSet = wire.NewSet(
	provideAssistantRepo,
	provideSettingsRepo,
	provideSyncRunRepo,
	provideModelCache,
)

// Use case providers
var useCaseProviderSet = wire.NewSet(
	biz.NewSettingsUseCase,
	provideCredentials,
	provideGateway,
	provideModelCatalog,
	provideAssistantUseCase,
	biz.NewSyncUseCase,
	biz.NewImportUseCase,
)

// ConsoleProviderSet builds everything the operator CLI needs
var ConsoleProviderSet = wire.NewSet(
	dataProviderSet,
	repositoryProviderSet,
	useCaseProviderSet,
)

// ProviderSet is the Wire provider set for the HTTP application
var ProviderSet = wire.NewSet(
	ConsoleProviderSet,
	service.NewAssistantService,
	server.NewHTTPServer,
)

// Data layer helpers

func provideData(config *conf.Config, log *logger.Logger) (*data.Data, func(), error) {
	return data.NewData(config, log)
}

// Repository providers

func provideAssistantRepo(d *data.Data) biz.AssistantRepo {
	return assistantdata.NewAssistantRepo(d.DB)
}

func provideSettingsRepo(d *data.Data) biz.SettingsRepo {
	return assistantdata.NewSettingsRepo(d.DB)
}

func provideSyncRunRepo(d *data.Data) biz.SyncRunRepo {
	return assistantdata.NewSyncRunRepo(d.DB)
}

func provideModelCache(d *data.Data) biz.ModelCache {
	if d.RedisClient == nil {
		return biz.NoopModelCache{}
	}
	return assistantdata.NewModelCache(d.RedisClient)
}

// Gateway and use case providers

// provideCredentials orders the key sources: settings record, config file, environment
func provideCredentials(settings *biz.SettingsUseCase, config *conf.Config) gateway.CredentialSource {
	return gateway.ChainCredentials(
		settings,
		gateway.StaticCredential(config.OpenAI.SecretKey),
		gateway.EnvCredential(config.OpenAI.SecretEnv),
	)
}

func provideGateway(config *conf.Config, credentials gateway.CredentialSource, log *logger.Logger) (biz.Gateway, error) {
	return gateway.New(&config.OpenAI, credentials, log)
}

func provideModelCatalog(
	gw biz.Gateway,
	cache biz.ModelCache,
	settings *biz.SettingsUseCase,
	log *logger.Logger,
) *biz.ModelCatalog {
	catalog := biz.NewModelCatalog(gw, cache, log)
	settings.AttachCatalog(catalog)
	return catalog
}

func provideAssistantUseCase(
	repo biz.AssistantRepo,
	gw biz.Gateway,
	catalog *biz.ModelCatalog,
	config *conf.Config,
	log *logger.Logger,
) *biz.AssistantUseCase {
	return biz.NewAssistantUseCase(repo, gw, catalog, config.OpenAI.PreferredModel, log)
}

func newApp(
	config *conf.Config,
	log *logger.Logger,
	httpServer *server.HTTPServer,
) *App {
	return &App{
		Config:     config,
		Logger:     log,
		HTTPServer: httpServer,
	}
}

func newConsole(
	config *conf.Config,
	log *logger.Logger,
	assistants *biz.AssistantUseCase,
	sync *biz.SyncUseCase,
	importer *biz.ImportUseCase,
	catalog *biz.ModelCatalog,
	settings *biz.SettingsUseCase,
) *Console {
	return &Console{
		Config:     config,
		Logger:     log,
		Assistants: assistants,
		Sync:       sync,
		Importer:   importer,
		Catalog:    catalog,
		Settings:   settings,
	}
}
