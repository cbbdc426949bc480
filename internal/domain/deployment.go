package domain

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Contract identifiers deployed by the orchestrator
const (
	TokenContract        = "SSVToken"
	NetworkContract      = "SSVNetwork"
	NetworkViewsContract = "SSVNetworkViews"
	WhitelistingContract = "BasicWhitelisting"
)

// Deployer is the account that signs and pays for every deployment of a run
type Deployer struct {
	Address common.Address
}

// DeploymentRequest describes a single deployment step.
// Args are the ordered initializer arguments of a proxy deployment, encoded
// against the contract ABI by the chain collaborator.
type DeploymentRequest struct {
	Contract string
	args     []string
}

// NewDeploymentRequest builds an immutable request; args are copied
func NewDeploymentRequest(contract string, args ...string) DeploymentRequest {
	return DeploymentRequest{
		Contract: contract,
		args:     append([]string(nil), args...),
	}
}

// Args returns a copy of the initializer arguments
func (r DeploymentRequest) Args() []string {
	return append([]string(nil), r.args...)
}

// DeploymentResult is the output of a single deployment.
// Implementation is zero for non-proxied contracts.
type DeploymentResult struct {
	Address        common.Address `json:"proxyAddress"`
	Implementation common.Address `json:"implAddress"`
}

// IsProxy reports whether the result carries a resolved implementation address
func (r *DeploymentResult) IsProxy() bool {
	return r.Implementation != (common.Address{})
}

// MarshalJSON encodes both addresses in EIP-55 checksum form
func (r DeploymentResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address        string `json:"proxyAddress"`
		Implementation string `json:"implAddress"`
	}{
		Address:        r.Address.Hex(),
		Implementation: r.Implementation.Hex(),
	})
}

// DeploymentSummary maps every role of a full run to its deployed address
type DeploymentSummary struct {
	Token            common.Address `json:"ssvTokenAddress"`
	OperatorsModule  common.Address `json:"operatorsModAddress"`
	ClustersModule   common.Address `json:"clustersModAddress"`
	DAOModule        common.Address `json:"daoModAddress"`
	ViewsModule      common.Address `json:"viewsModAddress"`
	Network          common.Address `json:"ssvNetworkAddress"`
	NetworkImpl      common.Address `json:"ssvNetworkImplAddress"`
	NetworkViews     common.Address `json:"ssvNetworkViewsAddress"`
	NetworkViewsImpl common.Address `json:"ssvNetworkViewsImplAddress"`
}

// MarshalJSON encodes every address in EIP-55 checksum form
func (s DeploymentSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Token            string `json:"ssvTokenAddress"`
		OperatorsModule  string `json:"operatorsModAddress"`
		ClustersModule   string `json:"clustersModAddress"`
		DAOModule        string `json:"daoModAddress"`
		ViewsModule      string `json:"viewsModAddress"`
		Network          string `json:"ssvNetworkAddress"`
		NetworkImpl      string `json:"ssvNetworkImplAddress"`
		NetworkViews     string `json:"ssvNetworkViewsAddress"`
		NetworkViewsImpl string `json:"ssvNetworkViewsImplAddress"`
	}{
		Token:            s.Token.Hex(),
		OperatorsModule:  s.OperatorsModule.Hex(),
		ClustersModule:   s.ClustersModule.Hex(),
		DAOModule:        s.DAOModule.Hex(),
		ViewsModule:      s.ViewsModule.Hex(),
		Network:          s.Network.Hex(),
		NetworkImpl:      s.NetworkImpl.Hex(),
		NetworkViews:     s.NetworkViews.Hex(),
		NetworkViewsImpl: s.NetworkViewsImpl.Hex(),
	})
}

// SetModule records the address of a deployed module
func (s *DeploymentSummary) SetModule(kind ModuleKind, addr common.Address) {
	switch kind {
	case ModuleOperators:
		s.OperatorsModule = addr
	case ModuleClusters:
		s.ClustersModule = addr
	case ModuleDAO:
		s.DAOModule = addr
	case ModuleViews:
		s.ViewsModule = addr
	}
}

// Module returns the recorded address of a module
func (s *DeploymentSummary) Module(kind ModuleKind) common.Address {
	switch kind {
	case ModuleOperators:
		return s.OperatorsModule
	case ModuleClusters:
		return s.ClustersModule
	case ModuleDAO:
		return s.DAOModule
	case ModuleViews:
		return s.ViewsModule
	}
	return common.Address{}
}

// Validate checks that every role has been filled
func (s *DeploymentSummary) Validate() error {
	roles := []struct {
		name string
		addr common.Address
	}{
		{"ssvTokenAddress", s.Token},
		{"operatorsModAddress", s.OperatorsModule},
		{"clustersModAddress", s.ClustersModule},
		{"daoModAddress", s.DAOModule},
		{"viewsModAddress", s.ViewsModule},
		{"ssvNetworkAddress", s.Network},
		{"ssvNetworkImplAddress", s.NetworkImpl},
		{"ssvNetworkViewsAddress", s.NetworkViews},
		{"ssvNetworkViewsImplAddress", s.NetworkViewsImpl},
	}
	for _, role := range roles {
		if role.addr == (common.Address{}) {
			return fmt.Errorf("deployment summary is missing %s", role.name)
		}
	}
	return nil
}
