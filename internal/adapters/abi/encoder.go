package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// EncodeCall packs calldata for method with arguments given as strings.
// Each argument is converted according to the ABI input type.
func EncodeCall(contractABI *abi.ABI, method string, args []string) ([]byte, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return nil, &domain.ConfigurationError{
			Key: method,
			Err: fmt.Errorf("method %s not found in ABI", method),
		}
	}

	values, err := ConvertArgs(m.Inputs, args)
	if err != nil {
		return nil, err
	}

	data, err := contractABI.Pack(method, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}
	return data, nil
}

// ConvertArgs converts ordered string arguments to the Go values expected by abi.Pack
func ConvertArgs(inputs abi.Arguments, args []string) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, &domain.ConfigurationError{
			Key: "arguments",
			Err: fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args)),
		}
	}

	values := make([]any, len(args))
	for i, input := range inputs {
		v, err := ConvertArg(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, &domain.ConfigurationError{
				Key: fmt.Sprintf("argument %s (%s)", name, input.Type.String()),
				Err: err,
			}
		}
		values[i] = v
	}
	return values, nil
}

// ConvertArg converts a single string to the Go value for t
func ConvertArg(t abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", t.Size, raw, err)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v.Interface(), nil

	case abi.UintTy, abi.IntTy:
		return convertInteger(t, raw)

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func convertInteger(t abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for %s", raw, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		minimum := new(big.Int).Neg(limit)
		if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%s out of range for %s", raw, t.String())
		}
	}

	goType := t.GetType()
	if goType == bigIntType {
		return n, nil
	}
	if t.T == abi.UintTy {
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface(), nil
	}
	return reflect.ValueOf(n.Int64()).Convert(goType).Interface(), nil
}
