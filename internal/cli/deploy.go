package cli

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/ssv-deploy/internal/app"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// addressResult is the machine output of commands deploying a single implementation
type addressResult struct {
	Address string `json:"address"`
}

func newAddressResult(addr common.Address) addressResult {
	return addressResult{Address: addr.Hex()}
}

// newDeploymentCommands creates the user-facing deployment commands
func newDeploymentCommands() []*cobra.Command {
	return []*cobra.Command{
		newDeployAllCmd(),
		newDeployMainImplCmd(),
		newDeployWhitelistingCmd(),
		newDeployTokenCmd(),
	}
}

// newStepCommands creates the commands running a single step of deploy:all
func newStepCommands() []*cobra.Command {
	return []*cobra.Command{
		newDeployMockTokenCmd(),
		newDeployModuleCmd(),
		newDeployImplCmd(),
		newDeploySSVNetworkCmd(),
		newDeploySSVNetworkViewsCmd(),
	}
}

func newDeployAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy:all",
		Short: "Deploy the complete SSV network",
		Long: `Deploy the SSV token (or reuse the one configured for the network), the
SSVOperators, SSVClusters, SSVDAO and SSVViews modules, the SSVNetwork proxy and
the SSVNetworkViews proxy, in that order.

Interactive runs build the contracts first and ask for confirmation before
deploying to a non-local network. Machine runs skip both and print one JSON
record with every deployed address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			machine, err := isMachine(cmd)
			if err != nil {
				return err
			}

			_, err = app.DeployAll.Run(cmd.Context(), deployAllParams(app, machine))
			return err
		},
	}
	addMachineFlag(cmd)
	return cmd
}

// deployAllParams decides which interactive steps a run performs
func deployAllParams(app *app.App, machine bool) usecase.DeployAllParams {
	local := app.Config.Network == nil || app.Config.Network.IsLocal()
	return usecase.DeployAllParams{
		Build:   !machine,
		Confirm: !machine && !app.Config.NonInteractive && !local,
	}
}

func newDeployMainImplCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "deploy:main-impl",
		Short: "Deploy a network implementation contract without a proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImplementation(cmd, contract)
		},
	}
	cmd.Flags().StringVar(&contract, "contract", domain.NetworkContract, "Contract to deploy")
	addMachineFlag(cmd)
	return cmd
}

func newDeployWhitelistingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy:whitelisting-contract",
		Short: "Deploy the " + domain.WhitelistingContract + " contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImplementation(cmd, domain.WhitelistingContract)
		},
	}
	addMachineFlag(cmd)
	return cmd
}

func newDeployImplCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "deploy:impl",
		Short: "Deploy a single contract implementation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImplementation(cmd, contract)
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "Contract to deploy")
	_ = cmd.MarkFlagRequired("contract")
	addMachineFlag(cmd)
	return cmd
}

// buildInteractive compiles the contracts before a standalone interactive deployment
func buildInteractive(cmd *cobra.Command, app *app.App) error {
	machine, err := isMachine(cmd)
	if err != nil {
		return err
	}
	if machine {
		return nil
	}
	return app.Builder.Build(cmd.Context())
}

func runImplementation(cmd *cobra.Command, contract string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	if err := buildInteractive(cmd, app); err != nil {
		return err
	}

	addr, err := app.DeployImplementation.Run(cmd.Context(), contract)
	if err != nil {
		return err
	}
	return app.Output.Result(newAddressResult(addr))
}

func newDeployTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy:token",
		Short: "Deploy a new SSV token",
		Long: `Deploy a new SSV token. A token configured for the network is ignored;
use deploy:mock-token to reuse it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := buildInteractive(cmd, app); err != nil {
				return err
			}

			addr, err := app.DeployToken.Run(cmd.Context())
			if err != nil {
				return err
			}
			return app.Output.Result(newAddressResult(addr))
		},
	}
	addMachineFlag(cmd)
	return cmd
}

func newDeployMockTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy:mock-token",
		Short: "Return the configured SSV token or deploy a mock one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := buildInteractive(cmd, app); err != nil {
				return err
			}

			addr, err := app.ProvisionToken.Run(cmd.Context())
			if err != nil {
				return err
			}
			return app.Output.Result(newAddressResult(addr))
		},
	}
	addMachineFlag(cmd)
	return cmd
}

func newDeployModuleCmd() *cobra.Command {
	var module string

	cmd := &cobra.Command{
		Use:   "deploy:module",
		Short: "Deploy one SSV network module implementation",
		Long: `Deploy the implementation of one module: SSVOperators, SSVClusters, SSVDAO
or SSVViews. Interactive runs without --module offer a searchable list.

Interactive runs of this and the other step commands build the contracts first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			machine, err := isMachine(cmd)
			if err != nil {
				return err
			}

			if module == "" {
				if machine || app.Config.NonInteractive {
					return fmt.Errorf("%w: --module is required", domain.ErrValidation)
				}
				kind, err := app.Selector.SelectModule(cmd.Context())
				if err != nil {
					return err
				}
				module = kind.String()
			}
			if !machine {
				if err := app.Builder.Build(cmd.Context()); err != nil {
					return err
				}
			}

			addr, err := app.DeployModule.Run(cmd.Context(), module)
			if err != nil {
				return err
			}
			return app.Output.Result(newAddressResult(addr))
		},
	}
	cmd.Flags().StringVar(&module, "module", "", "Module to deploy (SSVOperators, SSVClusters, SSVDAO, SSVViews)")
	addMachineFlag(cmd)
	return cmd
}

func newDeploySSVNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy:ssv-network <operatorsModAddress> <clustersModAddress> <daoModAddress> <viewsModAddress> <ssvTokenAddress>",
		Short: "Deploy the SSVNetwork proxy",
		Long: `Deploy the SSVNetwork implementation behind an ERC-1967 proxy and initialize
it with the token, the four module addresses and the parameters read from
MINIMUM_BLOCKS_BEFORE_LIQUIDATION, MINIMUM_LIQUIDATION_COLLATERAL,
VALIDATORS_PER_OPERATOR_LIMIT, DECLARE_OPERATOR_FEE_PERIOD,
EXECUTE_OPERATOR_FEE_PERIOD and OPERATOR_MAX_FEE_INCREASE.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			names := append(domain.ModuleNames(), "ssvToken")
			addrs := make([]common.Address, len(args))
			for i, arg := range args {
				addr, err := parseAddress(names[i], arg)
				if err != nil {
					return err
				}
				addrs[i] = addr
			}

			modules := make(usecase.NetworkModules, len(domain.ModuleKinds()))
			for i, kind := range domain.ModuleKinds() {
				modules[kind] = addrs[i]
			}

			if err := buildInteractive(cmd, app); err != nil {
				return err
			}

			result, err := app.DeployProxy.DeployNetwork(cmd.Context(), addrs[4], modules, app.Config.NetworkParams)
			if err != nil {
				return err
			}
			return app.Output.Result(result)
		},
	}
	addMachineFlag(cmd)
	return cmd
}

func newDeploySSVNetworkViewsCmd() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "deploy:ssv-network-views",
		Short: "Deploy the SSVNetworkViews proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			addr, err := parseAddress("ssvNetwork", network)
			if err != nil {
				return err
			}

			if err := buildInteractive(cmd, app); err != nil {
				return err
			}

			result, err := app.DeployProxy.DeployNetworkViews(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return app.Output.Result(result)
		},
	}
	cmd.Flags().StringVar(&network, "ssvNetworkAddress", "", "Address of the SSVNetwork proxy")
	_ = cmd.MarkFlagRequired("ssvNetworkAddress")
	addMachineFlag(cmd)
	return cmd
}

func parseAddress(name, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: invalid %s address %q", domain.ErrValidation, name, value)
	}
	return common.HexToAddress(value), nil
}

// ErrorHint returns a follow-up line for errors the operator can likely fix,
// or an empty string
func ErrorHint(err error) string {
	var invalid *domain.InvalidModuleError
	if errors.As(err, &invalid) {
		if suggestion, ok := interactive.SuggestModule(invalid.Module); ok {
			return fmt.Sprintf("Did you mean %s?", suggestion)
		}
	}
	return ""
}
