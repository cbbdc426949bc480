package domain

// Environment variables holding the SSVNetwork initializer parameters
const (
	EnvMinimumBlocksBeforeLiquidation = "MINIMUM_BLOCKS_BEFORE_LIQUIDATION"
	EnvMinimumLiquidationCollateral   = "MINIMUM_LIQUIDATION_COLLATERAL"
	EnvValidatorsPerOperatorLimit     = "VALIDATORS_PER_OPERATOR_LIMIT"
	EnvDeclareOperatorFeePeriod       = "DECLARE_OPERATOR_FEE_PERIOD"
	EnvExecuteOperatorFeePeriod       = "EXECUTE_OPERATOR_FEE_PERIOD"
	EnvOperatorMaxFeeIncrease         = "OPERATOR_MAX_FEE_INCREASE"
)

// NetworkParams are the numeric SSVNetwork initializer parameters.
// Values are kept as decimal strings; range checks belong to the contract.
type NetworkParams struct {
	MinimumBlocksBeforeLiquidation string
	MinimumLiquidationCollateral   string
	ValidatorsPerOperatorLimit     string
	DeclareOperatorFeePeriod       string
	ExecuteOperatorFeePeriod       string
	OperatorMaxFeeIncrease         string
}

// Values returns the parameters in initializer order
func (p NetworkParams) Values() []string {
	return []string{
		p.MinimumBlocksBeforeLiquidation,
		p.MinimumLiquidationCollateral,
		p.ValidatorsPerOperatorLimit,
		p.DeclareOperatorFeePeriod,
		p.ExecuteOperatorFeePeriod,
		p.OperatorMaxFeeIncrease,
	}
}

// EnvNames returns the environment variable names in initializer order
func (p NetworkParams) EnvNames() []string {
	return []string{
		EnvMinimumBlocksBeforeLiquidation,
		EnvMinimumLiquidationCollateral,
		EnvValidatorsPerOperatorLimit,
		EnvDeclareOperatorFeePeriod,
		EnvExecuteOperatorFeePeriod,
		EnvOperatorMaxFeeIncrease,
	}
}

// Missing returns the environment variable names of unset parameters
func (p NetworkParams) Missing() []string {
	var missing []string
	names := p.EnvNames()
	for i, v := range p.Values() {
		if v == "" {
			missing = append(missing, names[i])
		}
	}
	return missing
}
