package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bullet/pkg/core"
)

func testUnsigned() UnsignedTransaction {
	return UnsignedTransaction{
		RuntimeCall: ExchangeCall(CallMessage("order")),
		Uniqueness:  Uniqueness{Generation: 1700000000000},
		Details: Details{
			ChainID:         42,
			MaxFee:          NewAmount(1000),
			GasLimit:        nil,
			PriorityFeeBips: 0,
		},
	}
}

func TestEncodeUnsigned_Deterministic(t *testing.T) {
	utx := testUnsigned()

	a, err := EncodeUnsigned(utx)
	require.NoError(t, err)
	b, err := EncodeUnsigned(utx)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestEncodeUnsigned_EmptyCall(t *testing.T) {
	utx := testUnsigned()
	utx.RuntimeCall.Call = nil

	_, err := EncodeUnsigned(utx)
	require.Error(t, err)
	assert.True(t, core.IsSigningError(err))
}

func TestEncodeUnsigned_FieldSensitivity(t *testing.T) {
	base, err := EncodeUnsigned(testUnsigned())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*UnsignedTransaction)
	}{
		{"call payload", func(u *UnsignedTransaction) { u.RuntimeCall.Call = CallMessage("other") }},
		{"generation", func(u *UnsignedTransaction) { u.Uniqueness.Generation++ }},
		{"chain id", func(u *UnsignedTransaction) { u.Details.ChainID++ }},
		{"max fee", func(u *UnsignedTransaction) { u.Details.MaxFee = NewAmount(2000) }},
		{"gas limit", func(u *UnsignedTransaction) { limit := uint64(21000); u.Details.GasLimit = &limit }},
		{"priority fee", func(u *UnsignedTransaction) { u.Details.PriorityFeeBips = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utx := testUnsigned()
			tt.mutate(&utx)
			encoded, err := EncodeUnsigned(utx)
			require.NoError(t, err)
			assert.NotEqual(t, base, encoded)
		})
	}
}

func TestEncodeSigned_Deterministic(t *testing.T) {
	stx := SignedTransaction{
		Version:     VersionV0,
		RuntimeCall: ExchangeCall(CallMessage("order")),
		Uniqueness:  Uniqueness{Generation: 1700000000000},
		Details:     Details{ChainID: 42, MaxFee: NewAmount(1000)},
	}
	stx.PubKey[0] = 0xAA
	stx.Signature[0] = 0xBB

	a, err := EncodeSigned(stx)
	require.NoError(t, err)
	b, err := EncodeSigned(stx)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Greater(t, len(a), 32+64)
}

func TestEncodeSigned_UnsupportedVersion(t *testing.T) {
	stx := SignedTransaction{
		Version:     1,
		RuntimeCall: ExchangeCall(CallMessage("order")),
	}

	_, err := EncodeSigned(stx)
	require.Error(t, err)
	assert.True(t, core.IsSigningError(err))
	assert.Contains(t, err.Error(), "version")
}

func TestAmount(t *testing.T) {
	a := NewAmount(1000)
	raw := a.Bytes()

	assert.Len(t, raw, 16)
	assert.Equal(t, "1000", a.String())

	big := Amount{Hi: 1, Lo: 0}
	assert.Equal(t, "18446744073709551616", big.String())
}
