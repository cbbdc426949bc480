package abi

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

const networkABI = `[{
  "type": "function",
  "name": "initialize",
  "stateMutability": "nonpayable",
  "outputs": [],
  "inputs": [
    {"name": "token_", "type": "address"},
    {"name": "ssvOperators_", "type": "address"},
    {"name": "ssvClusters_", "type": "address"},
    {"name": "ssvDAO_", "type": "address"},
    {"name": "ssvViews_", "type": "address"},
    {"name": "minimumBlocksBeforeLiquidation_", "type": "uint64"},
    {"name": "minimumLiquidationCollateral_", "type": "uint256"},
    {"name": "validatorsPerOperatorLimit_", "type": "uint32"},
    {"name": "declareOperatorFeePeriod_", "type": "uint64"},
    {"name": "executeOperatorFeePeriod_", "type": "uint64"},
    {"name": "operatorMaxFeeIncrease_", "type": "uint64"}
  ]
}]`

func parseABI(t *testing.T, def string) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(def))
	require.NoError(t, err)
	return parsed
}

func TestEncodeCall(t *testing.T) {
	contractABI := parseABI(t, networkABI)
	addrs := []string{
		"0x00000000000000000000000000000000000000aa",
		"0x00000000000000000000000000000000000000a1",
		"0x00000000000000000000000000000000000000a2",
		"0x00000000000000000000000000000000000000a3",
		"0x00000000000000000000000000000000000000a4",
	}
	params := []string{"100800", "200000000000000000000", "500", "604800", "604800", "3"}

	t.Run("round trips the initializer", func(t *testing.T) {
		data, err := EncodeCall(&contractABI, "initialize", append(append([]string{}, addrs...), params...))
		require.NoError(t, err)

		method := contractABI.Methods["initialize"]
		assert.Equal(t, method.ID, data[:4])

		values, err := method.Inputs.Unpack(data[4:])
		require.NoError(t, err)
		require.Len(t, values, 11)
		assert.Equal(t, common.HexToAddress(addrs[0]), values[0])
		assert.Equal(t, uint64(100800), values[5])
		collateral, _ := new(big.Int).SetString("200000000000000000000", 10)
		assert.Equal(t, 0, collateral.Cmp(values[6].(*big.Int)))
		assert.Equal(t, uint32(500), values[7])
		assert.Equal(t, uint64(3), values[10])
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := EncodeCall(&contractABI, "initialize", addrs)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("malformed parameter", func(t *testing.T) {
		bad := append([]string{}, params...)
		bad[2] = "five hundred"
		_, err := EncodeCall(&contractABI, "initialize", append(append([]string{}, addrs...), bad...))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "validatorsPerOperatorLimit_")
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := EncodeCall(&contractABI, "init", nil)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestConvertArg(t *testing.T) {
	mustType := func(name string) abi.Type {
		typ, err := abi.NewType(name, "", nil)
		require.NoError(t, err)
		return typ
	}

	tests := []struct {
		name    string
		typ     string
		raw     string
		want    any
		wantErr bool
	}{
		{name: "uint8", typ: "uint8", raw: "255", want: uint8(255)},
		{name: "uint8 overflow", typ: "uint8", raw: "256", wantErr: true},
		{name: "uint negative", typ: "uint64", raw: "-1", wantErr: true},
		{name: "uint32 hex", typ: "uint32", raw: "0x10", want: uint32(16)},
		{name: "int16 negative", typ: "int16", raw: "-32768", want: int16(-32768)},
		{name: "int16 overflow", typ: "int16", raw: "32768", wantErr: true},
		{name: "uint24 as big", typ: "uint24", raw: "70000", want: big.NewInt(70000)},
		{name: "bool", typ: "bool", raw: "true", want: true},
		{name: "bool invalid", typ: "bool", raw: "yes", wantErr: true},
		{name: "string", typ: "string", raw: "ssv", want: "ssv"},
		{name: "bytes", typ: "bytes", raw: "0x0102", want: []byte{1, 2}},
		{name: "bytes4", typ: "bytes4", raw: "0x01020304", want: [4]byte{1, 2, 3, 4}},
		{name: "bytes4 short", typ: "bytes4", raw: "0x0102", wantErr: true},
		{name: "address invalid", typ: "address", raw: "0x1234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertArg(mustType(tt.typ), tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
