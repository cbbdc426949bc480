package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/ssv-deploy/internal/app"
	"github.com/trebuchet-org/ssv-deploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// initApp builds the application; replaced in tests
var initApp func(v *viper.Viper, output progress.Output) (*app.App, func(), error) = app.InitApp

var (
	cleanupMu sync.Mutex
	cleanup   func()
)

func init() {
	// Finalizers run after every command, including failed ones
	cobra.OnFinalize(releaseApp)
}

// releaseApp runs the cleanup of the initialized app at most once
func releaseApp() {
	cleanupMu.Lock()
	done := cleanup
	cleanup = nil
	cleanupMu.Unlock()

	if done != nil {
		done()
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ssv-deploy",
		Short: "Deployment orchestrator for the SSV network contracts",
		Long: `ssv-deploy deploys the SSV network contracts built by Foundry: the SSV token,
the four network modules, the SSVNetwork proxy and the SSVNetworkViews proxy.

Every deploy command accepts --machine true to print a single JSON record
instead of human-readable progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, _ := cmd.Flags().GetString("project-root")
			if projectRoot == "" {
				root, err := config.FindProjectRoot()
				if err != nil {
					return err
				}
				projectRoot = root
			}

			v := config.SetupViper(projectRoot, cmd)

			machine, err := isMachine(cmd)
			if err != nil {
				return err
			}
			output := progress.NewOutput(machine, cmd.OutOrStdout(), cmd.ErrOrStderr())

			appInstance, done, err := initApp(v, output)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			cleanupMu.Lock()
			cleanup = done
			cleanupMu.Unlock()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (e.g., mainnet, holesky)")
	rootCmd.PersistentFlags().String("project-root", "", "Foundry project root (defaults to the nearest directory with foundry.toml)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "internal",
		Title: "Step Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range newDeploymentCommands() {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range newStepCommands() {
		cmd.GroupID = "internal"
		rootCmd.AddCommand(cmd)
	}

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
