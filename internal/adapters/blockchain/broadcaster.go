package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/lmittmann/w3/w3types"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

const defaultPollInterval = 2 * time.Second

// gasHeadroomPercent is added on top of the node's gas estimate
const gasHeadroomPercent = 20

// TxObserver is notified while a transaction waits for its receipt
type TxObserver interface {
	OnPending(contract string, hash common.Hash)
	OnConfirmed(contract string, hash common.Hash)
}

// Broadcaster signs and submits EIP-1559 transactions from the deployer
// account and waits for their receipts. The RPC connection is opened on
// first use so commands that never transact do not need a network.
type Broadcaster struct {
	network  *config.Network
	key      *ecdsa.PrivateKey
	address  common.Address
	gas      config.GasConfig
	timeout  time.Duration
	observer TxObserver
	log      *slog.Logger

	pollInterval time.Duration

	mu     sync.Mutex
	client *w3.Client
	signer types.Signer
}

// NewBroadcaster creates a broadcaster for the configured network and signer
func NewBroadcaster(cfg *config.RuntimeConfig, observer TxObserver, log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		network:      cfg.Network,
		key:          cfg.Signer.Key,
		address:      cfg.Signer.Address,
		gas:          cfg.Gas,
		timeout:      cfg.ConfirmTimeout,
		observer:     observer,
		log:          log.With("component", "Broadcaster"),
		pollInterval: defaultPollInterval,
	}
}

// Close releases the RPC connection
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		_ = b.client.Close()
		b.client = nil
	}
}

// connect dials the network and verifies its chain ID
func (b *Broadcaster) connect(ctx context.Context) (*w3.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil {
		return b.client, nil
	}
	if b.network == nil {
		return nil, &domain.ConfigurationError{Key: "network", Err: errors.New("no network selected (use --network)")}
	}
	if b.key == nil {
		return nil, &domain.ConfigurationError{Key: "private_key", Err: errors.New("no deployer private key configured")}
	}

	client, err := w3.Dial(b.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	var chainID uint64
	if err := client.CallCtx(ctx, eth.ChainID().Returns(&chainID)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if b.network.ChainID != 0 && b.network.ChainID != chainID {
		_ = client.Close()
		return nil, &domain.ConfigurationError{
			Key: "networks." + b.network.Name + ".chain_id",
			Err: fmt.Errorf("chain ID mismatch: expected %d, got %d", b.network.ChainID, chainID),
		}
	}

	b.log.Debug("connected", "network", b.network.Name, "chainId", chainID)
	b.client = client
	b.signer = types.NewLondonSigner(new(big.Int).SetUint64(chainID))
	return client, nil
}

// Deploy submits a contract creation and returns the created address once mined
func (b *Broadcaster) Deploy(ctx context.Context, contract string, code []byte) (common.Address, error) {
	client, err := b.connect(ctx)
	if err != nil {
		return common.Address{}, err
	}

	nonce, err := b.nonce(ctx, client)
	if err != nil {
		return common.Address{}, &domain.TransactionError{Contract: contract, Err: err}
	}

	gas, err := b.estimateGas(ctx, client, code)
	if err != nil {
		return common.Address{}, &domain.TransactionError{Contract: contract, Err: err}
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		Nonce:     nonce,
		GasFeeCap: b.gas.FeeCap,
		GasTipCap: b.gas.TipCap,
		Gas:       gas,
		Data:      code,
	})

	receipt, err := b.submit(ctx, client, contract, tx)
	if err != nil {
		return common.Address{}, err
	}

	addr := crypto.CreateAddress(b.address, nonce)
	if receipt.ContractAddress != (common.Address{}) && receipt.ContractAddress != addr {
		b.log.Warn("receipt contract address differs from CREATE address", "contract", contract, "receipt", receipt.ContractAddress, "expected", addr)
		addr = receipt.ContractAddress
	}
	return addr, nil
}

// StorageAt reads a storage slot at the latest block
func (b *Broadcaster) StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error) {
	client, err := b.connect(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	var value common.Hash
	if err := client.CallCtx(ctx, eth.StorageAt(addr, slot, nil).Returns(&value)); err != nil {
		return common.Hash{}, fmt.Errorf("get storage: %w", err)
	}
	return value, nil
}

func (b *Broadcaster) nonce(ctx context.Context, client *w3.Client) (uint64, error) {
	var nonce uint64
	if err := client.CallCtx(ctx, eth.Nonce(b.address, nil).Returns(&nonce)); err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return nonce, nil
}

// estimateGas returns the node's estimate plus headroom, capped at the configured limit
func (b *Broadcaster) estimateGas(ctx context.Context, client *w3.Client, code []byte) (uint64, error) {
	var estimate uint64
	msg := &w3types.Message{From: b.address, Input: code}
	if err := client.CallCtx(ctx, eth.EstimateGas(msg, nil).Returns(&estimate)); err != nil {
		return 0, fmt.Errorf("estimate gas: %w", err)
	}
	if b.gas.Limit > 0 && estimate > b.gas.Limit {
		return 0, fmt.Errorf("estimated gas %d exceeds the limit of %d", estimate, b.gas.Limit)
	}

	gas := estimate + estimate*gasHeadroomPercent/100
	if b.gas.Limit > 0 && gas > b.gas.Limit {
		gas = b.gas.Limit
	}
	b.log.Debug("estimated gas", "estimate", estimate, "gas", gas)
	return gas, nil
}

func (b *Broadcaster) submit(ctx context.Context, client *w3.Client, contract string, tx *types.Transaction) (*types.Receipt, error) {
	signedTx, err := types.SignTx(tx, b.signer, b.key)
	if err != nil {
		return nil, &domain.TransactionError{Contract: contract, Err: fmt.Errorf("sign tx: %w", err)}
	}
	hash := signedTx.Hash()

	var sent common.Hash
	if err := client.CallCtx(ctx, eth.SendTx(signedTx).Returns(&sent)); err != nil {
		return nil, &domain.TransactionError{Contract: contract, TxHash: hash, Err: fmt.Errorf("send tx: %w", err)}
	}
	if sent != hash {
		return nil, &domain.TransactionError{Contract: contract, TxHash: hash, Err: fmt.Errorf("node returned tx hash %s", sent.Hex())}
	}
	b.log.Debug("transaction sent", "contract", contract, "tx", hash.Hex(), "nonce", signedTx.Nonce())

	b.observer.OnPending(contract, hash)
	receipt, err := b.waitForReceipt(ctx, client, hash)
	b.observer.OnConfirmed(contract, hash)
	if err != nil {
		return nil, &domain.TransactionError{Contract: contract, TxHash: hash, Err: err}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.TransactionError{Contract: contract, TxHash: hash, Err: domain.ErrReverted}
	}
	return receipt, nil
}

// waitForReceipt polls until the receipt is available or the confirmation timeout elapses
func (b *Broadcaster) waitForReceipt(ctx context.Context, client *w3.Client, hash common.Hash) (*types.Receipt, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		// a pending transaction has no receipt yet and fails the lookup
		var receipt *types.Receipt
		err := client.CallCtx(ctx, eth.TxReceipt(hash).Returns(&receipt))
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil {
			b.log.Debug("receipt not available", "tx", hash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("not confirmed within %s", b.timeout)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
