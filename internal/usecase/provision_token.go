package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// DeployToken always deploys a fresh SSV token
type DeployToken struct {
	impl     *DeployImplementation
	reporter Reporter
}

// NewDeployToken creates a new DeployToken use case
func NewDeployToken(impl *DeployImplementation, reporter Reporter) *DeployToken {
	return &DeployToken{impl: impl, reporter: reporter}
}

// Run deploys the token contract and returns its address
func (uc *DeployToken) Run(ctx context.Context) (common.Address, error) {
	uc.reporter.Progress("Deploying SSV Network Token")
	return uc.impl.Run(ctx, domain.TokenContract)
}

// ProvisionToken resolves the token used by the network contract.
// Networks with a pre-configured token reuse it without submitting a transaction;
// other networks get a freshly deployed token.
type ProvisionToken struct {
	network  *config.Network
	deploy   *DeployToken
	reporter Reporter
}

// NewProvisionToken creates a new ProvisionToken use case
func NewProvisionToken(cfg *config.RuntimeConfig, deploy *DeployToken, reporter Reporter) *ProvisionToken {
	return &ProvisionToken{
		network:  cfg.Network,
		deploy:   deploy,
		reporter: reporter,
	}
}

// Run returns the pre-configured token address or deploys a new token
func (uc *ProvisionToken) Run(ctx context.Context) (common.Address, error) {
	if uc.network.HasToken() {
		uc.reporter.Progress(fmt.Sprintf("Using SSV Network Token configured for %s: %s", uc.network.Name, uc.network.SSVToken.Hex()))
		return uc.network.SSVToken, nil
	}
	return uc.deploy.Run(ctx)
}
