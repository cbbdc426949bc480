package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// Defaults applied when neither flags, environment nor ssv-deploy.toml set a value
const (
	DefaultConfirmTimeout = 5 * time.Minute
	DefaultProxyContract  = "ERC1967Proxy"
	DefaultGasLimit       = 8_000_000
	DefaultFeeCap         = "2000000000" // 2 gwei
	DefaultTipCap         = "1000000000" // 1 gwei
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	setDefaults(v)
	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	deployFile, err := loadDeployFile(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", DeployFileName, err)
	}
	applyDeployFileDefaults(v, deployFile)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
		ProxyContract:  v.GetString("proxy_contract"),
		NetworkParams:  loadNetworkParams(v),
		FoundryConfig:  foundryConfig,
		DeployConfig:   deployFile,
	}

	signer, err := resolveSigner(v.GetString("private_key"))
	if err != nil {
		return nil, err
	}
	cfg.Signer = signer

	gas, err := resolveGas(v)
	if err != nil {
		return nil, err
	}
	cfg.Gas = gas

	if networkName := v.GetString("network"); networkName != "" {
		network, err := NewNetworkResolver(foundryConfig, deployFile).Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// ProvideDeployer exposes the explicit deployer account
func ProvideDeployer(cfg *config.RuntimeConfig) domain.Deployer {
	return cfg.Signer.Deployer()
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SSV_DEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("confirm_timeout", DefaultConfirmTimeout)
	v.SetDefault("proxy_contract", DefaultProxyContract)
	v.SetDefault("gas.limit", DefaultGasLimit)
	v.SetDefault("gas.fee_cap", DefaultFeeCap)
	v.SetDefault("gas.tip_cap", DefaultTipCap)

	// PRIVATE_KEY is honoured alongside SSV_DEPLOY_PRIVATE_KEY
	_ = v.BindEnv("private_key", "SSV_DEPLOY_PRIVATE_KEY", "PRIVATE_KEY")
}
