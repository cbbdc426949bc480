package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// BuildSystem compiles the contract sources into deployable artifacts
type BuildSystem interface {
	Build(ctx context.Context) error
}

// Artifact is a compiled contract ready for deployment
type Artifact struct {
	Name     string
	Path     string
	ABI      *abi.ABI
	Bytecode []byte
}

// ArtifactRepository resolves compiled artifacts by contract name
type ArtifactRepository interface {
	// GetArtifact returns a BuildArtifactNotFound error for unknown contracts
	GetArtifact(ctx context.Context, contract string) (*Artifact, error)
}

// ContractDeployer deploys a non-proxied contract and blocks until it is confirmed
type ContractDeployer interface {
	DeployContract(ctx context.Context, req domain.DeploymentRequest) (common.Address, error)
}

// ProxyBackend deploys an upgradeable proxy around a contract and initializes it
// with the request arguments. Both addresses are always returned together.
type ProxyBackend interface {
	DeployProxy(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error)
}

// Reporter receives the side-channel output of a run.
// Progress lines are human readable; Complete is called once with the final summary.
type Reporter interface {
	Progress(line string)
	Complete(summary *domain.DeploymentSummary) error
}

// NopReporter discards all output
type NopReporter struct{}

func (NopReporter) Progress(string)                          {}
func (NopReporter) Complete(*domain.DeploymentSummary) error { return nil }

// Confirmer asks the operator before transactions are broadcast
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}
