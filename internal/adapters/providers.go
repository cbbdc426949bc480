package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/blockchain"
	adapterconfig "github.com/trebuchet-org/ssv-deploy/internal/adapters/config"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/forge"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// ProvideReporter exposes the command output as the use case reporter
func ProvideReporter(out progress.Output) usecase.Reporter {
	return out
}

// ProvideTxObserver attaches the spinner of an interactive output to the broadcaster
func ProvideTxObserver(out progress.Output) blockchain.TxObserver {
	if r, ok := out.(*progress.InteractiveReporter); ok {
		return r.Spinner()
	}
	return progress.NopObserver{}
}

// ProvideBroadcaster creates the broadcaster and its cleanup
func ProvideBroadcaster(b *blockchain.Broadcaster) (blockchain.Transactor, func()) {
	return b, b.Close
}

// ProgressSet provides reporting implementations
var ProgressSet = wire.NewSet(
	ProvideReporter,
	ProvideTxObserver,
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewArtifactStore,
	wire.Bind(new(usecase.ArtifactRepository), new(*forge.ArtifactStore)),

	forge.NewForgeAdapter,
	wire.Bind(new(usecase.BuildSystem), new(*forge.ForgeAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewBroadcaster,
	ProvideBroadcaster,

	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),
	wire.Bind(new(usecase.ProxyBackend), new(*blockchain.DeployerAdapter)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(adapterconfig.ChainIDChecker), new(*blockchain.CheckerAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	adapterconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*adapterconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProgressSet,
	ForgeSet,
	BlockchainSet,
	InteractiveSet,
	ConfigSet,
)
