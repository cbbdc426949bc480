package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	abiadapter "github.com/trebuchet-org/ssv-deploy/internal/adapters/abi"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// ImplementationSlot is the ERC-1967 storage slot holding the implementation address
var ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

const initializer = "initialize"

// Transactor submits contract creations and reads contract storage
type Transactor interface {
	Deploy(ctx context.Context, contract string, code []byte) (common.Address, error)
	StorageAt(ctx context.Context, addr common.Address, slot common.Hash) (common.Hash, error)
}

// DeployerAdapter deploys plain contracts and UUPS proxies from build artifacts
type DeployerAdapter struct {
	artifacts     usecase.ArtifactRepository
	tx            Transactor
	proxyContract string
	log           *slog.Logger
}

// NewDeployerAdapter creates a new deployer adapter
func NewDeployerAdapter(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, tx Transactor, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		artifacts:     artifacts,
		tx:            tx,
		proxyContract: cfg.ProxyContract,
		log:           log.With("component", "DeployerAdapter"),
	}
}

// DeployContract deploys the contract's creation bytecode. Request arguments,
// if any, are encoded as constructor arguments.
func (d *DeployerAdapter) DeployContract(ctx context.Context, req domain.DeploymentRequest) (common.Address, error) {
	art, err := d.artifacts.GetArtifact(ctx, req.Contract)
	if err != nil {
		return common.Address{}, err
	}

	code, err := creationCode(art, req.Args())
	if err != nil {
		return common.Address{}, err
	}

	return d.tx.Deploy(ctx, req.Contract, code)
}

// DeployProxy deploys the implementation, then an ERC-1967 proxy whose
// constructor calls initialize with the request arguments. The implementation
// address is read back from the proxy's storage.
func (d *DeployerAdapter) DeployProxy(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	impl, err := d.artifacts.GetArtifact(ctx, req.Contract)
	if err != nil {
		return nil, err
	}
	proxy, err := d.artifacts.GetArtifact(ctx, d.proxyContract)
	if err != nil {
		return nil, err
	}

	var initData []byte
	if _, ok := impl.ABI.Methods[initializer]; ok || len(req.Args()) > 0 {
		initData, err = abiadapter.EncodeCall(impl.ABI, initializer, req.Args())
		if err != nil {
			return nil, err
		}
	}

	d.log.Debug("deploying implementation", "contract", req.Contract)
	implAddr, err := d.tx.Deploy(ctx, req.Contract, impl.Bytecode)
	if err != nil {
		return nil, err
	}

	ctorArgs, err := proxy.ABI.Pack("", implAddr, initData)
	if err != nil {
		return nil, &domain.BuildError{Contract: d.proxyContract, Err: fmt.Errorf("encode constructor: %w", err)}
	}

	d.log.Debug("deploying proxy", "contract", req.Contract, "implementation", implAddr.Hex())
	label := req.Contract + " proxy"
	proxyAddr, err := d.tx.Deploy(ctx, label, join(proxy.Bytecode, ctorArgs))
	if err != nil {
		return nil, err
	}

	slot, err := d.tx.StorageAt(ctx, proxyAddr, ImplementationSlot)
	if err != nil {
		return nil, &domain.TransactionError{Contract: label, Err: err}
	}
	resolved := common.BytesToAddress(slot.Bytes())
	if resolved != implAddr {
		return nil, &domain.TransactionError{
			Contract: label,
			Err:      fmt.Errorf("implementation slot holds %s, expected %s", resolved.Hex(), implAddr.Hex()),
		}
	}

	return &domain.DeploymentResult{Address: proxyAddr, Implementation: resolved}, nil
}

func creationCode(art *usecase.Artifact, args []string) ([]byte, error) {
	if len(args) == 0 {
		return join(art.Bytecode, nil), nil
	}

	values, err := abiadapter.ConvertArgs(art.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, err
	}
	packed, err := art.ABI.Pack("", values...)
	if err != nil {
		return nil, &domain.BuildError{Contract: art.Name, Err: fmt.Errorf("encode constructor: %w", err)}
	}
	return join(art.Bytecode, packed), nil
}

func join(code, args []byte) []byte {
	out := make([]byte, 0, len(code)+len(args))
	out = append(out, code...)
	return append(out, args...)
}

var (
	_ usecase.ContractDeployer = (*DeployerAdapter)(nil)
	_ usecase.ProxyBackend     = (*DeployerAdapter)(nil)
	_ Transactor               = (*Broadcaster)(nil)
)
