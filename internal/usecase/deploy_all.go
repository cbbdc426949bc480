package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// ErrDeploymentCancelled is returned when the operator declines the confirmation prompt
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// DeployAllParams contains parameters for a full deployment run
type DeployAllParams struct {
	// Build compiles the contracts before the first transaction
	Build bool
	// Confirm asks the operator before any transaction is submitted
	Confirm bool
}

// DeployAll deploys the complete SSV network in dependency order:
// token, the four modules, the SSVNetwork proxy and the SSVNetworkViews proxy.
// The run stops at the first failed step and returns that step's error.
type DeployAll struct {
	cfg       *config.RuntimeConfig
	deployer  domain.Deployer
	builder   BuildSystem
	token     *ProvisionToken
	modules   *DeployModule
	proxies   *DeployProxy
	confirmer Confirmer
	reporter  Reporter
	log       *slog.Logger
}

// NewDeployAll creates a new DeployAll use case
func NewDeployAll(
	cfg *config.RuntimeConfig,
	deployer domain.Deployer,
	builder BuildSystem,
	token *ProvisionToken,
	modules *DeployModule,
	proxies *DeployProxy,
	confirmer Confirmer,
	reporter Reporter,
	log *slog.Logger,
) *DeployAll {
	return &DeployAll{
		cfg:       cfg,
		deployer:  deployer,
		builder:   builder,
		token:     token,
		modules:   modules,
		proxies:   proxies,
		confirmer: confirmer,
		reporter:  reporter,
		log:       log.With("component", "DeployAll"),
	}
}

// Run executes the full deployment and emits the summary exactly once on success
func (uc *DeployAll) Run(ctx context.Context, params DeployAllParams) (*domain.DeploymentSummary, error) {
	if err := uc.preflight(); err != nil {
		return nil, err
	}

	if params.Build {
		if err := uc.builder.Build(ctx); err != nil {
			return nil, err
		}
	}

	if params.Confirm {
		ok, err := uc.confirmer.Confirm(ctx, uc.confirmPrompt())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeploymentCancelled
		}
	}

	start := time.Now()
	uc.reporter.Progress(fmt.Sprintf("Deploying contracts with the account: %s", strings.ToLower(uc.deployer.Address.Hex())))

	summary := &domain.DeploymentSummary{}

	token, err := uc.token.Run(ctx)
	if err != nil {
		return nil, err
	}
	summary.Token = token

	modules := make(NetworkModules, len(domain.ModuleKinds()))
	for _, kind := range domain.ModuleKinds() {
		addr, err := uc.modules.Run(ctx, kind.String())
		if err != nil {
			return nil, err
		}
		modules[kind] = addr
		summary.SetModule(kind, addr)
	}

	network, err := uc.proxies.DeployNetwork(ctx, summary.Token, modules, uc.cfg.NetworkParams)
	if err != nil {
		return nil, err
	}
	summary.Network = network.Address
	summary.NetworkImpl = network.Implementation

	views, err := uc.proxies.DeployNetworkViews(ctx, network.Address)
	if err != nil {
		return nil, err
	}
	summary.NetworkViews = views.Address
	summary.NetworkViewsImpl = views.Implementation

	if err := summary.Validate(); err != nil {
		return nil, err
	}

	uc.log.Debug("deployment complete", "duration", time.Since(start))
	if err := uc.reporter.Complete(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// preflight rejects runs that would fail after transactions were already sent
func (uc *DeployAll) preflight() error {
	if uc.deployer.Address == (common.Address{}) {
		return &domain.ConfigurationError{
			Key: "deployer.private_key",
			Err: errors.New("no deployer account configured"),
		}
	}
	if missing := uc.cfg.NetworkParams.Missing(); len(missing) > 0 {
		return &domain.ConfigurationError{
			Key: strings.Join(missing, ", "),
			Err: errors.New("environment variable not set"),
		}
	}
	return nil
}

func (uc *DeployAll) confirmPrompt() string {
	name := "the configured network"
	if uc.cfg.Network != nil {
		name = uc.cfg.Network.Name
	}
	return fmt.Sprintf("Deploy the SSV network contracts to %s", name)
}
