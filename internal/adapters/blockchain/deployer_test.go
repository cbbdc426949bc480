package blockchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

const (
	proxyABI = `[{"type":"constructor","stateMutability":"payable","inputs":[{"name":"implementation","type":"address"},{"name":"_data","type":"bytes"}]}]`
	viewsABI = `[{"type":"function","name":"initialize","stateMutability":"nonpayable","outputs":[],"inputs":[{"name":"ssvNetwork_","type":"address"}]}]`
	tokenABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[]}]`
)

type stubArtifacts map[string]*usecase.Artifact

func (s stubArtifacts) GetArtifact(ctx context.Context, contract string) (*usecase.Artifact, error) {
	if art, ok := s[contract]; ok {
		return art, nil
	}
	return nil, domain.NewArtifactNotFoundError(contract)
}

func newArtifact(t *testing.T, name, def string, code ...byte) *usecase.Artifact {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(def))
	require.NoError(t, err)
	return &usecase.Artifact{Name: name, ABI: &parsed, Bytecode: code}
}

type deployment struct {
	contract string
	code     []byte
}

// fakeTransactor records creations and emulates the ERC-1967 slot of proxies
type fakeTransactor struct {
	deployments []deployment
	slots       map[common.Address]common.Hash
	failOn      string
	corruptSlot bool
	lastImpl    common.Address
	next        int64
}

func newFakeTransactor() *fakeTransactor {
	return &fakeTransactor{slots: map[common.Address]common.Hash{}}
}

func (f *fakeTransactor) Deploy(ctx context.Context, contract string, code []byte) (common.Address, error) {
	f.deployments = append(f.deployments, deployment{contract: contract, code: code})
	if contract == f.failOn {
		return common.Address{}, &domain.TransactionError{Contract: contract, Err: domain.ErrReverted}
	}
	f.next++
	addr := common.BigToAddress(big.NewInt(0x100 + f.next))

	if strings.HasSuffix(contract, " proxy") {
		impl := f.lastImpl
		if f.corruptSlot {
			impl = common.HexToAddress("0xdead")
		}
		f.slots[addr] = common.BytesToHash(impl.Bytes())
	} else {
		f.lastImpl = addr
	}
	return addr, nil
}

func (f *fakeTransactor) StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error) {
	if slot != ImplementationSlot {
		return common.Hash{}, errors.New("unexpected slot")
	}
	return f.slots[addr], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDeployer(t *testing.T, tx *fakeTransactor) (*DeployerAdapter, stubArtifacts) {
	t.Helper()
	artifacts := stubArtifacts{
		"ERC1967Proxy":    newArtifact(t, "ERC1967Proxy", proxyABI, 0xaa, 0xbb),
		"SSVNetworkViews": newArtifact(t, "SSVNetworkViews", viewsABI, 0x01, 0x02, 0x03),
		"SSVToken":        newArtifact(t, "SSVToken", tokenABI, 0x60, 0x80),
	}
	cfg := &config.RuntimeConfig{ProxyContract: "ERC1967Proxy"}
	return NewDeployerAdapter(cfg, artifacts, tx, testLogger()), artifacts
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys creation bytecode", func(t *testing.T) {
		tx := newFakeTransactor()
		d, _ := newTestDeployer(t, tx)

		addr, err := d.DeployContract(ctx, domain.NewDeploymentRequest("SSVToken"))
		require.NoError(t, err)

		assert.NotEqual(t, common.Address{}, addr)
		require.Len(t, tx.deployments, 1)
		assert.Equal(t, []byte{0x60, 0x80}, tx.deployments[0].code)
	})

	t.Run("missing artifact submits nothing", func(t *testing.T) {
		tx := newFakeTransactor()
		d, _ := newTestDeployer(t, tx)

		_, err := d.DeployContract(ctx, domain.NewDeploymentRequest("SSVDAO"))
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.Empty(t, tx.deployments)
	})

	t.Run("revert is a transaction error", func(t *testing.T) {
		tx := newFakeTransactor()
		tx.failOn = "SSVToken"
		d, _ := newTestDeployer(t, tx)

		_, err := d.DeployContract(ctx, domain.NewDeploymentRequest("SSVToken"))
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.ErrorIs(t, err, domain.ErrReverted)
	})
}

func TestDeployProxy(t *testing.T) {
	ctx := context.Background()
	network := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	t.Run("implementation then proxy with initializer", func(t *testing.T) {
		tx := newFakeTransactor()
		d, artifacts := newTestDeployer(t, tx)

		result, err := d.DeployProxy(ctx, domain.NewDeploymentRequest("SSVNetworkViews", network.Hex()))
		require.NoError(t, err)

		require.Len(t, tx.deployments, 2)
		assert.Equal(t, "SSVNetworkViews", tx.deployments[0].contract)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, tx.deployments[0].code)
		assert.Equal(t, "SSVNetworkViews proxy", tx.deployments[1].contract)
		assert.True(t, result.IsProxy())
		assert.NotEqual(t, result.Address, result.Implementation)

		proxy := artifacts["ERC1967Proxy"]
		code := tx.deployments[1].code
		assert.Equal(t, proxy.Bytecode, code[:len(proxy.Bytecode)])

		ctor, err := proxy.ABI.Constructor.Inputs.Unpack(code[len(proxy.Bytecode):])
		require.NoError(t, err)
		assert.Equal(t, result.Implementation, ctor[0])

		views := artifacts["SSVNetworkViews"]
		initData := ctor[1].([]byte)
		method := views.ABI.Methods["initialize"]
		assert.Equal(t, method.ID, initData[:4])
		args, err := method.Inputs.Unpack(initData[4:])
		require.NoError(t, err)
		assert.Equal(t, network, args[0])
	})

	t.Run("malformed initializer argument submits nothing", func(t *testing.T) {
		tx := newFakeTransactor()
		d, _ := newTestDeployer(t, tx)

		_, err := d.DeployProxy(ctx, domain.NewDeploymentRequest("SSVNetworkViews", "not-an-address"))
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Empty(t, tx.deployments)
	})

	t.Run("implementation slot mismatch", func(t *testing.T) {
		tx := newFakeTransactor()
		tx.corruptSlot = true
		d, _ := newTestDeployer(t, tx)

		_, err := d.DeployProxy(ctx, domain.NewDeploymentRequest("SSVNetworkViews", network.Hex()))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.Contains(t, err.Error(), "implementation slot")
	})

	t.Run("proxy failure after implementation", func(t *testing.T) {
		tx := newFakeTransactor()
		tx.failOn = "SSVNetworkViews proxy"
		d, _ := newTestDeployer(t, tx)

		_, err := d.DeployProxy(ctx, domain.NewDeploymentRequest("SSVNetworkViews", network.Hex()))
		assert.ErrorIs(t, err, domain.ErrTransaction)
		assert.Len(t, tx.deployments, 2)
	})
}
