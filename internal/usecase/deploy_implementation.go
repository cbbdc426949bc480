package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// DeployImplementation deploys a single non-proxied contract implementation
type DeployImplementation struct {
	deployer ContractDeployer
	reporter Reporter
	log      *slog.Logger
}

// NewDeployImplementation creates a new DeployImplementation use case
func NewDeployImplementation(deployer ContractDeployer, reporter Reporter, log *slog.Logger) *DeployImplementation {
	return &DeployImplementation{
		deployer: deployer,
		reporter: reporter,
		log:      log.With("component", "DeployImplementation"),
	}
}

// Run deploys the named contract and returns its address.
// Deployment failures are returned unchanged; there is no retry.
func (uc *DeployImplementation) Run(ctx context.Context, contract string) (common.Address, error) {
	if contract == "" {
		return common.Address{}, fmt.Errorf("%w: contract name is required", domain.ErrValidation)
	}

	uc.log.Debug("deploying implementation", "contract", contract)
	addr, err := uc.deployer.DeployContract(ctx, domain.NewDeploymentRequest(contract))
	if err != nil {
		return common.Address{}, err
	}

	uc.log.Debug("implementation deployed", "contract", contract, "address", addr.Hex())
	uc.reporter.Progress(fmt.Sprintf("%s implementation deployed to: %s", contract, addr.Hex()))
	return addr, nil
}
