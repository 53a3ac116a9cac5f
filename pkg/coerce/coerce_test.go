package coerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"
)

func TestToInt32(t *testing.T) {
	v, err := ToInt32("123")
	require.NoError(t, err)
	assert.Equal(t, int32(123), v)

	v, err = ToInt32(float64(-7)) // JSON numbers decode as float64
	require.NoError(t, err)
	assert.Equal(t, int32(-7), v)

	_, err = ToInt32("not a number")
	assert.Error(t, err)

	_, err = ToInt32(int64(1) << 40)
	assert.Error(t, err, "out of range must be rejected")
}

func TestToInt64(t *testing.T) {
	v, err := ToInt64("-9000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(-9000000000), v)

	_, err = ToInt64(map[string]string{})
	assert.Error(t, err)
}

func TestRawParams(t *testing.T) {
	raw, err := RawParams(
		[]api.ValueType{api.ValueTypeI32, api.ValueTypeI64},
		[]interface{}{"5", float64(-2)},
	)
	require.NoError(t, err)
	assert.Equal(t, []uint64{api.EncodeI32(5), api.EncodeI64(-2)}, raw)

	_, err = RawParams([]api.ValueType{api.ValueTypeI32}, nil)
	assert.Error(t, err, "arity mismatch")

	_, err = RawParams([]api.ValueType{api.ValueTypeI32}, []interface{}{"x"})
	assert.Error(t, err)

	raw, err = RawParams(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestDecodeResults(t *testing.T) {
	out, err := DecodeResults(
		[]api.ValueType{api.ValueTypeI32, api.ValueTypeI64},
		[]uint64{api.EncodeI32(-1), api.EncodeI64(1 << 40)},
	)
	require.NoError(t, err)
	assert.Equal(t, []int64{-1, 1 << 40}, out)

	_, err = DecodeResults([]api.ValueType{api.ValueTypeI32}, nil)
	assert.Error(t, err)
}
