package config

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// loadNetworkParams reads the SSVNetwork initializer parameters. The variables
// are read under their plain names, without the SSV_DEPLOY_ prefix.
func loadNetworkParams(v *viper.Viper) domain.NetworkParams {
	get := func(env string) string {
		key := "params." + strings.ToLower(env)
		_ = v.BindEnv(key, env)
		return strings.TrimSpace(v.GetString(key))
	}

	return domain.NetworkParams{
		MinimumBlocksBeforeLiquidation: get(domain.EnvMinimumBlocksBeforeLiquidation),
		MinimumLiquidationCollateral:   get(domain.EnvMinimumLiquidationCollateral),
		ValidatorsPerOperatorLimit:     get(domain.EnvValidatorsPerOperatorLimit),
		DeclareOperatorFeePeriod:       get(domain.EnvDeclareOperatorFeePeriod),
		ExecuteOperatorFeePeriod:       get(domain.EnvExecuteOperatorFeePeriod),
		OperatorMaxFeeIncrease:         get(domain.EnvOperatorMaxFeeIncrease),
	}
}
