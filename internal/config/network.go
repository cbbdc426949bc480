package config

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// NetworkResolver resolves network names from foundry.toml [rpc_endpoints]
// and the [networks] table of ssv-deploy.toml
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	deployFile    *config.DeployFileConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig, deployFile *config.DeployFileConfig) *NetworkResolver {
	if foundryConfig == nil {
		foundryConfig = &config.FoundryConfig{}
	}
	if deployFile == nil {
		deployFile = &config.DeployFileConfig{}
	}
	return &NetworkResolver{
		foundryConfig: foundryConfig,
		deployFile:    deployFile,
	}
}

// Names returns every configured network name, sorted
func (r *NetworkResolver) Names() []string {
	names := append(lo.Keys(r.foundryConfig.RpcEndpoints), lo.Keys(r.deployFile.Networks)...)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its static configuration.
// ssv-deploy.toml rpc_url overrides the foundry.toml endpoint.
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	section, inFile := r.deployFile.Networks[name]
	rpcURL, inFoundry := r.foundryConfig.RpcEndpoints[name]
	if section.RPCURL != "" {
		rpcURL = section.RPCURL
	}

	if !inFile && !inFoundry {
		return nil, &domain.ConfigurationError{
			Key: "network",
			Err: fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints] or %s [networks]", name, DeployFileName),
		}
	}
	if rpcURL == "" {
		return nil, &domain.ConfigurationError{
			Key: "networks." + name + ".rpc_url",
			Err: fmt.Errorf("no RPC URL configured for network '%s'", name),
		}
	}

	network := &config.Network{
		Name:    name,
		RPCURL:  rpcURL,
		ChainID: section.ChainID,
	}

	if section.SSVToken != "" {
		if !common.IsHexAddress(section.SSVToken) {
			return nil, &domain.ConfigurationError{
				Key: "networks." + name + ".ssv_token",
				Err: fmt.Errorf("invalid address %q", section.SSVToken),
			}
		}
		network.SSVToken = common.HexToAddress(section.SSVToken)
	}

	return network, nil
}
