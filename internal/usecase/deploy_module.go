package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// DeployModule validates a module name and deploys its implementation
type DeployModule struct {
	impl *DeployImplementation
}

// NewDeployModule creates a new DeployModule use case
func NewDeployModule(impl *DeployImplementation) *DeployModule {
	return &DeployModule{impl: impl}
}

// Run validates the module against the closed set of module kinds before any
// transaction is submitted, then deploys it.
func (uc *DeployModule) Run(ctx context.Context, module string) (common.Address, error) {
	kind, err := domain.ParseModuleKind(module)
	if err != nil {
		return common.Address{}, err
	}
	return uc.impl.Run(ctx, kind.String())
}
