package config

import (
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool

	// Chain settings
	Signer         SignerConfig
	Gas            GasConfig
	ConfirmTimeout time.Duration
	ProxyContract  string

	// SSVNetwork initializer parameters read from the environment
	NetworkParams domain.NetworkParams

	// Resolved configurations
	FoundryConfig *FoundryConfig
	DeployConfig  *DeployFileConfig
}

// Network represents a resolved network
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"` // 0 when not pinned in ssv-deploy.toml

	// SSVToken is the pre-existing token on this network, zero when a token must be deployed
	SSVToken common.Address `json:"ssvToken,omitempty"`
}

// HasToken reports whether the network carries a pre-configured token address
func (n *Network) HasToken() bool {
	return n != nil && n.SSVToken != (common.Address{})
}

// IsLocal reports whether the network is an ephemeral development chain
func (n *Network) IsLocal() bool {
	if n == nil {
		return false
	}
	switch n.ChainID {
	case 31337, 1337:
		return true
	}
	return n.Name == "local" || n.Name == "localhost" || n.Name == "anvil" || n.Name == "hardhat"
}

// SignerConfig holds the deployer key. Key is nil when no private key is configured.
type SignerConfig struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// Deployer returns the explicit deployer account
func (s SignerConfig) Deployer() domain.Deployer {
	return domain.Deployer{Address: s.Address}
}

// GasConfig holds EIP-1559 transaction settings
type GasConfig struct {
	Limit  uint64 // cap on the estimated gas of each transaction
	FeeCap *big.Int
	TipCap *big.Int
}
