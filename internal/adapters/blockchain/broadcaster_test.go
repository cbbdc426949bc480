package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers the JSON-RPC methods the broadcaster uses
type fakeNode struct {
	mu          sync.Mutex
	chainID     uint64
	nonce       uint64
	status      uint64
	gasEstimate uint64
	sent        []*types.Transaction
	storage     common.Hash
	receipts    int
	// wrongHash makes eth_sendRawTransaction answer with another hash
	wrongHash bool
}

func (n *fakeNode) handle(req rpcRequest) (any, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch req.Method {
	case "eth_chainId":
		return hexutil.Uint64(n.chainID), nil
	case "eth_getTransactionCount":
		return hexutil.Uint64(n.nonce), nil
	case "eth_estimateGas":
		if n.gasEstimate == 0 {
			return hexutil.Uint64(53_000), nil
		}
		return hexutil.Uint64(n.gasEstimate), nil
	case "eth_sendRawTransaction":
		var raw hexutil.Bytes
		if err := json.Unmarshal(req.Params[0], &raw); err != nil {
			return nil, err
		}
		tx := new(types.Transaction)
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, err
		}
		n.sent = append(n.sent, tx)
		n.nonce++
		if n.wrongHash {
			return common.HexToHash("0xbad"), nil
		}
		return tx.Hash(), nil
	case "eth_getTransactionReceipt":
		n.receipts++
		// first lookup is pending
		if n.receipts == 1 {
			return nil, nil
		}
		var hash common.Hash
		if err := json.Unmarshal(req.Params[0], &hash); err != nil {
			return nil, err
		}
		return map[string]any{
			"type":              "0x2",
			"status":            hexutil.Uint64(n.status),
			"cumulativeGasUsed": "0x5208",
			"logsBloom":         hexutil.Bytes(make([]byte, types.BloomByteLength)),
			"logs":              []any{},
			"transactionHash":   hash,
			"gasUsed":           "0x5208",
			"effectiveGasPrice": "0x1",
			"blockHash":         common.HexToHash("0x01"),
			"blockNumber":       "0x1",
			"transactionIndex":  "0x0",
		}, nil
	case "eth_getStorageAt":
		return n.storage, nil
	}
	return nil, fmt.Errorf("method %s not supported", req.Method)
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respond := func(req rpcRequest) map[string]any {
		result, err := n.handle(req)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if err != nil {
			resp["error"] = map[string]any{"code": -32000, "message": err.Error()}
		} else {
			resp["result"] = result
		}
		return resp
	}

	w.Header().Set("Content-Type", "application/json")
	if strings.HasPrefix(strings.TrimSpace(string(body)), "[") {
		var reqs []rpcRequest
		_ = json.Unmarshal(body, &reqs)
		resps := make([]map[string]any, 0, len(reqs))
		for _, req := range reqs {
			resps = append(resps, respond(req))
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req rpcRequest
	_ = json.Unmarshal(body, &req)
	_ = json.NewEncoder(w).Encode(respond(req))
}

type recordingObserver struct {
	pending   []string
	confirmed []string
}

func (o *recordingObserver) OnPending(contract string, hash common.Hash) {
	o.pending = append(o.pending, contract)
}

func (o *recordingObserver) OnConfirmed(contract string, hash common.Hash) {
	o.confirmed = append(o.confirmed, contract)
}

func newTestBroadcaster(t *testing.T, node *fakeNode, chainID uint64) (*Broadcaster, *recordingObserver, common.Address) {
	t.Helper()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "local", RPCURL: server.URL, ChainID: chainID},
		Signer:  config.SignerConfig{Key: key, Address: address},
		Gas: config.GasConfig{
			Limit:  1_000_000,
			FeeCap: hexutil.MustDecodeBig("0x77359400"),
			TipCap: hexutil.MustDecodeBig("0x3b9aca00"),
		},
		ConfirmTimeout: 5 * time.Second,
	}
	observer := &recordingObserver{}
	b := NewBroadcaster(cfg, observer, testLogger())
	b.pollInterval = 10 * time.Millisecond
	t.Cleanup(b.Close)
	return b, observer, address
}

func TestBroadcasterDeploy(t *testing.T) {
	ctx := context.Background()

	t.Run("signs, submits and waits for the receipt", func(t *testing.T) {
		node := &fakeNode{chainID: 31337, nonce: 7, status: types.ReceiptStatusSuccessful, gasEstimate: 500_000}
		b, observer, from := newTestBroadcaster(t, node, 31337)

		addr, err := b.Deploy(ctx, "SSVToken", []byte{0x60, 0x80})
		require.NoError(t, err)

		assert.Equal(t, crypto.CreateAddress(from, 7), addr)
		require.Len(t, node.sent, 1)
		tx := node.sent[0]
		assert.Nil(t, tx.To())
		assert.Equal(t, uint64(7), tx.Nonce())
		assert.Equal(t, uint64(600_000), tx.Gas(), "estimate plus headroom")
		assert.Equal(t, []byte{0x60, 0x80}, tx.Data())
		assert.Equal(t, []string{"SSVToken"}, observer.pending)
		assert.Equal(t, []string{"SSVToken"}, observer.confirmed)
	})

	t.Run("failed receipt is a revert", func(t *testing.T) {
		node := &fakeNode{chainID: 31337, status: types.ReceiptStatusFailed}
		b, _, _ := newTestBroadcaster(t, node, 31337)

		_, err := b.Deploy(ctx, "SSVDAO", []byte{0x60})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.ErrorIs(t, err, domain.ErrReverted)

		var txErr *domain.TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, "SSVDAO", txErr.Contract)
		assert.Equal(t, node.sent[0].Hash(), txErr.TxHash)
	})

	t.Run("headroom is capped at the configured limit", func(t *testing.T) {
		node := &fakeNode{chainID: 31337, status: types.ReceiptStatusSuccessful, gasEstimate: 900_000}
		b, _, _ := newTestBroadcaster(t, node, 31337)

		_, err := b.Deploy(ctx, "SSVNetwork", []byte{0x60})
		require.NoError(t, err)
		require.Len(t, node.sent, 1)
		assert.Equal(t, uint64(1_000_000), node.sent[0].Gas())
	})

	t.Run("estimate above the limit submits nothing", func(t *testing.T) {
		node := &fakeNode{chainID: 31337, gasEstimate: 1_500_000}
		b, _, _ := newTestBroadcaster(t, node, 31337)

		_, err := b.Deploy(ctx, "SSVNetwork", []byte{0x60})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.Contains(t, err.Error(), "exceeds the limit of 1000000")
		assert.Empty(t, node.sent)
	})

	t.Run("mismatched tx hash from the node is rejected", func(t *testing.T) {
		node := &fakeNode{chainID: 31337, status: types.ReceiptStatusSuccessful, wrongHash: true}
		b, observer, _ := newTestBroadcaster(t, node, 31337)

		_, err := b.Deploy(ctx, "SSVToken", []byte{0x60})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.Contains(t, err.Error(), "node returned tx hash")
		assert.Empty(t, observer.pending)
		assert.Zero(t, node.receipts)
	})

	t.Run("chain id mismatch submits nothing", func(t *testing.T) {
		node := &fakeNode{chainID: 1}
		b, _, _ := newTestBroadcaster(t, node, 17000)

		_, err := b.Deploy(ctx, "SSVToken", []byte{0x60})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "chain ID mismatch")
		assert.Empty(t, node.sent)
	})

	t.Run("reads the implementation slot", func(t *testing.T) {
		impl := common.HexToAddress("0x00000000000000000000000000000000000000c1")
		node := &fakeNode{chainID: 31337, storage: common.BytesToHash(impl.Bytes())}
		b, _, _ := newTestBroadcaster(t, node, 0)

		value, err := b.StorageAt(ctx, common.HexToAddress("0x01"), ImplementationSlot)
		require.NoError(t, err)
		assert.Equal(t, impl, common.BytesToAddress(value.Bytes()))
	})
}

func TestBroadcasterRequiresConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("no network", func(t *testing.T) {
		b := NewBroadcaster(&config.RuntimeConfig{}, &recordingObserver{}, testLogger())
		_, err := b.Deploy(ctx, "SSVToken", nil)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("no key", func(t *testing.T) {
		b := NewBroadcaster(&config.RuntimeConfig{Network: &config.Network{Name: "local", RPCURL: "http://127.0.0.1:1"}}, &recordingObserver{}, testLogger())
		_, err := b.Deploy(ctx, "SSVToken", nil)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
