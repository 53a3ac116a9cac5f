// Package coerce converts loosely typed inputs (CLI strings, JSON numbers)
// into the raw integer values the fixture calling convention uses. Conversion
// failures come back as errors, never panics.
package coerce

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
	"github.com/tetratelabs/wazero/api"
)

// ToInt32 converts input to a 32-bit signed integer, rejecting values that
// do not fit. JSON numbers arrive as float64; integral floats are accepted.
func ToInt32(input interface{}) (int32, error) {
	v, err := cast.ToInt64E(input)
	if err != nil {
		return 0, fmt.Errorf("failed to coerce value '%v' (type %T) to i32", input, input)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of i32 range", v)
	}
	return int32(v), nil
}

// ToInt64 converts input to a 64-bit signed integer.
func ToInt64(input interface{}) (int64, error) {
	v, err := cast.ToInt64E(input)
	if err != nil {
		return 0, fmt.Errorf("failed to coerce value '%v' (type %T) to i64", input, input)
	}
	return v, nil
}

// RawParams converts a slice of loose values into raw stack values following
// the given wasm parameter types.
func RawParams(types []api.ValueType, args []interface{}) ([]uint64, error) {
	if len(args) != len(types) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", len(types), len(args))
	}
	raw := make([]uint64, len(args))
	for i, arg := range args {
		switch types[i] {
		case api.ValueTypeI32:
			v, err := ToInt32(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			raw[i] = api.EncodeI32(v)
		case api.ValueTypeI64:
			v, err := ToInt64(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			raw[i] = api.EncodeI64(v)
		default:
			return nil, fmt.Errorf("argument %d: unsupported parameter type %s", i, api.ValueTypeName(types[i]))
		}
	}
	return raw, nil
}

// DecodeResults converts raw result values back into int64s wide enough to
// carry either width, following the wasm result types.
func DecodeResults(types []api.ValueType, raw []uint64) ([]int64, error) {
	if len(raw) != len(types) {
		return nil, fmt.Errorf("expected %d result(s), got %d", len(types), len(raw))
	}
	out := make([]int64, len(raw))
	for i, r := range raw {
		switch types[i] {
		case api.ValueTypeI32:
			out[i] = int64(api.DecodeI32(r))
		case api.ValueTypeI64:
			out[i] = int64(r)
		default:
			return nil, fmt.Errorf("result %d: unsupported result type %s", i, api.ValueTypeName(types[i]))
		}
	}
	return out, nil
}
