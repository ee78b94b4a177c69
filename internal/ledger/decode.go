package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrFieldMissing = errors.New("ledger field missing")
	ErrNotAnInteger = errors.New("ledger value is not an integer")
	ErrNegative     = errors.New("ledger value is negative")
)

// DecodeCount converts an integer-like ledger value into a non-negative count of any size.
// The result always has a zero exponent.
func DecodeCount(v any) (decimal.Decimal, error) {
	d, err := toDecimal(v)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.IsInteger() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNotAnInteger, d)
	}
	if d.Sign() < 0 {
		return decimal.Decimal{}, ErrNegative
	}
	return decimal.NewFromBigInt(d.BigInt(), 0), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, ErrFieldMissing
	case json.Number:
		return parseNumber(x.String())
	case string:
		return parseNumber(x)
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0), nil
	case uint32:
		return decimal.NewFromInt(int64(x)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrNotAnInteger, x)
		}
		return decimal.NewFromFloat(x), nil
	case *big.Int:
		if x == nil {
			return decimal.Decimal{}, ErrFieldMissing
		}
		return decimal.NewFromBigInt(x, 0), nil
	case decimal.Decimal:
		return x, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unsupported type %T", ErrNotAnInteger, v)
	}
}

// parseNumber accepts decimal integers and integral numbers in exponent notation.
func parseNumber(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrNotAnInteger, s)
	}
	return d, nil
}
