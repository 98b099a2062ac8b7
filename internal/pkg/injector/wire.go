//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/lk2023060901/assistant-admin/internal/conf"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}

// InitializeConsole initializes the operator CLI dependencies
func InitializeConsole(config *conf.Config, log *logger.Logger) (*Console, func(), error) {
	wire.Build(ConsoleProviderSet, newConsole)
	return nil, nil, nil
}
