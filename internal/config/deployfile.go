package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// DeployFileName is the optional project-level deployer configuration file
const DeployFileName = "ssv-deploy.toml"

// loadDeployFile parses ssv-deploy.toml. A missing file yields an empty config.
// String values support ${VAR} expansion.
func loadDeployFile(projectRoot string) (*config.DeployFileConfig, error) {
	path := filepath.Join(projectRoot, DeployFileName)

	cfg := &config.DeployFileConfig{Networks: map[string]config.NetworkSection{}}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployFileName, err)
	}

	cfg.Deployer.PrivateKey = os.ExpandEnv(cfg.Deployer.PrivateKey)
	cfg.Gas.FeeCap = os.ExpandEnv(cfg.Gas.FeeCap)
	cfg.Gas.TipCap = os.ExpandEnv(cfg.Gas.TipCap)
	cfg.ConfirmTimeout = os.ExpandEnv(cfg.ConfirmTimeout)
	if cfg.Networks == nil {
		cfg.Networks = map[string]config.NetworkSection{}
	}
	for name, section := range cfg.Networks {
		section.RPCURL = os.ExpandEnv(section.RPCURL)
		section.SSVToken = os.ExpandEnv(section.SSVToken)
		cfg.Networks[name] = section
	}

	return cfg, nil
}

// applyDeployFileDefaults layers file values beneath flags and environment
func applyDeployFileDefaults(v *viper.Viper, file *config.DeployFileConfig) {
	if file.Deployer.PrivateKey != "" {
		v.SetDefault("private_key", file.Deployer.PrivateKey)
	}
	if file.Gas.Limit != 0 {
		v.SetDefault("gas.limit", file.Gas.Limit)
	}
	if file.Gas.FeeCap != "" {
		v.SetDefault("gas.fee_cap", file.Gas.FeeCap)
	}
	if file.Gas.TipCap != "" {
		v.SetDefault("gas.tip_cap", file.Gas.TipCap)
	}
	if file.ConfirmTimeout != "" {
		v.SetDefault("confirm_timeout", file.ConfirmTimeout)
	}
	if file.ProxyContract != "" {
		v.SetDefault("proxy_contract", file.ProxyContract)
	}
}
