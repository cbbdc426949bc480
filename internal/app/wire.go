//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/ssv-deploy/internal/config"
	"github.com/trebuchet-org/ssv-deploy/internal/logging"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, output progress.Output) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideDeployer,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployImplementation,
		usecase.NewDeployToken,
		usecase.NewProvisionToken,
		usecase.NewDeployModule,
		usecase.NewDeployProxy,
		usecase.NewDeployAll,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil, nil
}
