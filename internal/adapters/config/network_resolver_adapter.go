package config

import (
	"context"

	"github.com/trebuchet-org/ssv-deploy/internal/config"
	domainconfig "github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// ChainIDChecker queries the chain ID served by an RPC endpoint
type ChainIDChecker interface {
	ChainID(ctx context.Context, rpcURL string, expected uint64) (uint64, error)
}

// NetworkResolverAdapter adapts config.NetworkResolver to usecase.NetworkResolver,
// filling in the live chain ID of each network
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
	checker  ChainIDChecker
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig, checker ChainIDChecker) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: config.NewNetworkResolver(cfg.FoundryConfig, cfg.DeployConfig),
		checker:  checker,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name and verifies its chain ID against the RPC
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	network, err := a.resolver.Resolve(networkName)
	if err != nil {
		return nil, err
	}

	chainID, err := a.checker.ChainID(ctx, network.RPCURL, network.ChainID)
	if err != nil {
		return nil, err
	}
	network.ChainID = chainID
	return network, nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
