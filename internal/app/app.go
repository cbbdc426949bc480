package app

import (
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Output   progress.Output
	Selector *interactive.SelectorAdapter
	Builder  usecase.BuildSystem

	// Use cases
	DeployAll            *usecase.DeployAll
	DeployImplementation *usecase.DeployImplementation
	DeployToken          *usecase.DeployToken
	ProvisionToken       *usecase.ProvisionToken
	DeployModule         *usecase.DeployModule
	DeployProxy          *usecase.DeployProxy
	ListNetworks         *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	output progress.Output,
	selector *interactive.SelectorAdapter,
	builder usecase.BuildSystem,
	deployAll *usecase.DeployAll,
	deployImplementation *usecase.DeployImplementation,
	deployToken *usecase.DeployToken,
	provisionToken *usecase.ProvisionToken,
	deployModule *usecase.DeployModule,
	deployProxy *usecase.DeployProxy,
	listNetworks *usecase.ListNetworks,
) *App {
	return &App{
		Config:               cfg,
		Output:               output,
		Selector:             selector,
		Builder:              builder,
		DeployAll:            deployAll,
		DeployImplementation: deployImplementation,
		DeployToken:          deployToken,
		ProvisionToken:       provisionToken,
		DeployModule:         deployModule,
		DeployProxy:          deployProxy,
		ListNetworks:         listNetworks,
	}
}
