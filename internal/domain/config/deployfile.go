package config

// DeployFileConfig represents ssv-deploy.toml
type DeployFileConfig struct {
	Deployer       DeployerSection           `toml:"deployer"`
	Gas            GasSection                `toml:"gas"`
	ConfirmTimeout string                    `toml:"confirm_timeout"`
	ProxyContract  string                    `toml:"proxy_contract"`
	Networks       map[string]NetworkSection `toml:"networks"`
}

// DeployerSection configures the signing account
type DeployerSection struct {
	PrivateKey string `toml:"private_key"` //nolint:gosec // holds env var reference, not a literal secret
}

// GasSection configures transaction gas. Fee values are in wei.
type GasSection struct {
	Limit  uint64 `toml:"limit"`
	FeeCap string `toml:"fee_cap"`
	TipCap string `toml:"tip_cap"`
}

// NetworkSection holds per-network settings
type NetworkSection struct {
	RPCURL   string `toml:"rpc_url,omitempty"`
	ChainID  uint64 `toml:"chain_id,omitempty"`
	SSVToken string `toml:"ssv_token,omitempty"`
}
