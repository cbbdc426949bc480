package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// CheckerAdapter looks up chain IDs using ethclient
type CheckerAdapter struct {
	timeout time.Duration
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{timeout: 5 * time.Second}
}

// ChainID dials rpcURL and returns its chain ID. A non-zero expected value
// must match.
func (c *CheckerAdapter) ChainID(ctx context.Context, rpcURL string, expected uint64) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if expected != 0 && networkChainID.Uint64() != expected {
		return 0, &domain.ConfigurationError{
			Key: "chain_id",
			Err: fmt.Errorf("chain ID mismatch: expected %d, got %d", expected, networkChainID.Uint64()),
		}
	}
	return networkChainID.Uint64(), nil
}
