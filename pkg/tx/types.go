// Package tx builds, canonically encodes, and signs transactions for
// submission to the venue's sequencer.
//
// The encoding produced here is a wire-format contract: the sequencer
// re-encodes the unsigned fields with the same rules when it checks the
// signature, so any change must stay byte-compatible with the server.
package tx

import (
	"encoding/binary"
	"math/big"
)

// Runtime module discriminants for RuntimeCall routing.
const (
	// ModuleExchange routes the call to the exchange runtime module.
	ModuleExchange uint8 = 0
)

// CallMessage is a canonically-encoded domain instruction. Its content is
// defined by the venue's exchange interface; this package treats it as
// opaque payload bytes.
type CallMessage []byte

// RuntimeCall wraps a domain instruction in a routing envelope.
type RuntimeCall struct {
	// Module is the runtime module discriminant.
	Module uint8
	// Call is the encoded instruction payload.
	Call CallMessage
}

// ExchangeCall wraps a call message for the exchange module.
func ExchangeCall(call CallMessage) RuntimeCall {
	return RuntimeCall{Module: ModuleExchange, Call: call}
}

// Uniqueness scheme discriminants.
const uniquenessGeneration uint8 = 0

// Uniqueness distinguishes otherwise-identical transactions. The only
// supported scheme is a generation token derived from the wall clock in
// whole milliseconds.
type Uniqueness struct {
	// Generation is milliseconds since the Unix epoch at build time.
	Generation uint64
}

// Amount is a 128-bit unsigned fee value in the venue's native fee unit.
type Amount struct {
	// Hi holds the most significant 64 bits.
	Hi uint64
	// Lo holds the least significant 64 bits.
	Lo uint64
}

// NewAmount creates an Amount from a uint64 value.
func NewAmount(v uint64) Amount {
	return Amount{Lo: v}
}

// Bytes returns the 16-byte big-endian representation.
func (a Amount) Bytes() []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[:8], a.Hi)
	binary.BigEndian.PutUint64(out[8:], a.Lo)
	return out
}

// String returns the decimal representation.
func (a Amount) String() string {
	return new(big.Int).SetBytes(a.Bytes()).String()
}

// Details carries the fee and routing parameters of a transaction.
type Details struct {
	// ChainID identifies the chain instance the transaction targets.
	ChainID uint64
	// MaxFee is the fee ceiling the signer is willing to pay.
	MaxFee Amount
	// GasLimit optionally caps execution gas; nil means no explicit cap.
	GasLimit *uint64
	// PriorityFeeBips is the priority fee in basis points.
	PriorityFeeBips uint64
}

// UnsignedTransaction is a fully-built transaction awaiting a signature.
// Created once per intended action and immediately consumed by Sign.
type UnsignedTransaction struct {
	RuntimeCall RuntimeCall
	Uniqueness  Uniqueness
	Details     Details
}

// Transaction version discriminants.
const (
	// VersionV0 is the only transaction version currently defined.
	VersionV0 uint8 = 0
)

// SignedTransaction is a versioned signed transaction. The signature covers
// EncodeUnsigned(unsigned) followed by the 32-byte chain identity hash.
type SignedTransaction struct {
	Version     uint8
	RuntimeCall RuntimeCall
	Uniqueness  Uniqueness
	Details     Details
	PubKey      [32]byte
	Signature   [64]byte
}
