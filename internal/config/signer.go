package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

// resolveSigner parses the deployer key. An empty key leaves the signer unset;
// commands that submit transactions reject that later.
func resolveSigner(raw string) (config.SignerConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.SignerConfig{}, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return config.SignerConfig{}, &domain.ConfigurationError{
			Key: "private_key",
			Err: errors.New("invalid private key"),
		}
	}

	return config.SignerConfig{
		Key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func resolveGas(v *viper.Viper) (config.GasConfig, error) {
	feeCap, err := parseWei("gas.fee_cap", v.GetString("gas.fee_cap"))
	if err != nil {
		return config.GasConfig{}, err
	}
	tipCap, err := parseWei("gas.tip_cap", v.GetString("gas.tip_cap"))
	if err != nil {
		return config.GasConfig{}, err
	}
	if tipCap.Cmp(feeCap) > 0 {
		return config.GasConfig{}, &domain.ConfigurationError{
			Key: "gas.tip_cap",
			Err: fmt.Errorf("tip cap %s exceeds fee cap %s", tipCap, feeCap),
		}
	}

	limit := v.GetUint64("gas.limit")
	if limit == 0 {
		return config.GasConfig{}, &domain.ConfigurationError{Key: "gas.limit", Err: errors.New("must be positive")}
	}

	return config.GasConfig{Limit: limit, FeeCap: feeCap, TipCap: tipCap}, nil
}

func parseWei(key, value string) (*big.Int, error) {
	wei, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok || wei.Sign() < 0 {
		return nil, &domain.ConfigurationError{Key: key, Err: fmt.Errorf("invalid wei amount %q", value)}
	}
	return wei, nil
}
