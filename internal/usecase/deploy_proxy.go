package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// NetworkModules holds the module addresses wired into the SSVNetwork initializer
type NetworkModules map[domain.ModuleKind]common.Address

// DeployProxy deploys upgradeable proxies and reports both resulting addresses
type DeployProxy struct {
	backend  ProxyBackend
	reporter Reporter
	log      *slog.Logger
}

// NewDeployProxy creates a new DeployProxy use case
func NewDeployProxy(backend ProxyBackend, reporter Reporter, log *slog.Logger) *DeployProxy {
	return &DeployProxy{
		backend:  backend,
		reporter: reporter,
		log:      log.With("component", "DeployProxy"),
	}
}

// Run deploys a proxy for the request and returns the proxy/implementation pair
func (uc *DeployProxy) Run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	uc.log.Debug("deploying proxy", "contract", req.Contract, "args", req.Args())

	result, err := uc.backend.DeployProxy(ctx, req)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Address == (common.Address{}) || !result.IsProxy() {
		return nil, &domain.TransactionError{
			Contract: req.Contract,
			Err:      errors.New("proxy deployment did not return both proxy and implementation addresses"),
		}
	}

	uc.reporter.Progress(fmt.Sprintf("%s proxy deployed to: %s", req.Contract, result.Address.Hex()))
	uc.reporter.Progress(fmt.Sprintf("%s implementation deployed to: %s", req.Contract, result.Implementation.Hex()))
	return result, nil
}

// DeployNetwork deploys the SSVNetwork proxy. The initializer receives the token,
// the module addresses in module order and then the numeric parameters.
func (uc *DeployProxy) DeployNetwork(ctx context.Context, token common.Address, modules NetworkModules, params domain.NetworkParams) (*domain.DeploymentResult, error) {
	args := []string{token.Hex()}
	for _, kind := range domain.ModuleKinds() {
		addr, ok := modules[kind]
		if !ok || addr == (common.Address{}) {
			return nil, fmt.Errorf("%w: missing %s module address", domain.ErrValidation, kind)
		}
		args = append(args, addr.Hex())
	}
	if missing := params.Missing(); len(missing) > 0 {
		return nil, &domain.ConfigurationError{
			Key: strings.Join(missing, ", "),
			Err: errors.New("environment variable not set"),
		}
	}
	args = append(args, params.Values()...)

	uc.reporter.Progress(fmt.Sprintf("Deploying SSVNetwork with ssvToken %s", token.Hex()))
	return uc.Run(ctx, domain.NewDeploymentRequest(domain.NetworkContract, args...))
}

// DeployNetworkViews deploys the SSVNetworkViews proxy bound to a network proxy
func (uc *DeployProxy) DeployNetworkViews(ctx context.Context, network common.Address) (*domain.DeploymentResult, error) {
	if network == (common.Address{}) {
		return nil, fmt.Errorf("%w: SSVNetwork address is required", domain.ErrValidation)
	}
	return uc.Run(ctx, domain.NewDeploymentRequest(domain.NetworkViewsContract, network.Hex()))
}
