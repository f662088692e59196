package tx

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"bullet/pkg/core"
)

// The codec drives the msgpack encoder field by field instead of relying on
// struct reflection, so the byte output is fully determined by the values:
// encoding the same transaction twice yields identical bytes.

// EncodeUnsigned returns the canonical byte encoding of an unsigned
// transaction. These exact bytes (with the chain identity hash appended)
// are what the signature is computed over.
func EncodeUnsigned(utx UnsignedTransaction) ([]byte, error) {
	if len(utx.RuntimeCall.Call) == 0 {
		return nil, core.NewClientError(core.ErrorTypeSigning, "encode", "runtime call payload is required")
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeUnsignedFields(enc, utx); err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "encode", "encode unsigned transaction", err)
	}
	return buf.Bytes(), nil
}

// EncodeSigned returns the canonical byte encoding of a signed transaction,
// tagged with its version discriminant. Base64 of this output is the wire
// form accepted by both the REST submit endpoint and the WebSocket order
// operations.
func EncodeSigned(stx SignedTransaction) ([]byte, error) {
	if stx.Version != VersionV0 {
		return nil, core.NewClientError(core.ErrorTypeSigning, "encode",
			fmt.Sprintf("unsupported transaction version %d", stx.Version))
	}
	if len(stx.RuntimeCall.Call) == 0 {
		return nil, core.NewClientError(core.ErrorTypeSigning, "encode", "runtime call payload is required")
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(2); err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "encode", "encode signed transaction", err)
	}
	if err := enc.EncodeUint8(stx.Version); err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "encode", "encode signed transaction", err)
	}
	if err := encodeSignedBody(enc, stx); err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "encode", "encode signed transaction", err)
	}
	return buf.Bytes(), nil
}

func encodeUnsignedFields(enc *msgpack.Encoder, utx UnsignedTransaction) error {
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := encodeRuntimeCall(enc, utx.RuntimeCall); err != nil {
		return err
	}
	if err := encodeUniqueness(enc, utx.Uniqueness); err != nil {
		return err
	}
	return encodeDetails(enc, utx.Details)
}

func encodeSignedBody(enc *msgpack.Encoder, stx SignedTransaction) error {
	if err := enc.EncodeArrayLen(5); err != nil {
		return err
	}
	if err := encodeRuntimeCall(enc, stx.RuntimeCall); err != nil {
		return err
	}
	if err := encodeUniqueness(enc, stx.Uniqueness); err != nil {
		return err
	}
	if err := encodeDetails(enc, stx.Details); err != nil {
		return err
	}
	if err := enc.EncodeBytes(stx.PubKey[:]); err != nil {
		return err
	}
	return enc.EncodeBytes(stx.Signature[:])
}

func encodeRuntimeCall(enc *msgpack.Encoder, call RuntimeCall) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(call.Module); err != nil {
		return err
	}
	return enc.EncodeBytes(call.Call)
}

func encodeUniqueness(enc *msgpack.Encoder, u Uniqueness) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint8(uniquenessGeneration); err != nil {
		return err
	}
	return enc.EncodeUint64(u.Generation)
}

func encodeDetails(enc *msgpack.Encoder, d Details) error {
	if err := enc.EncodeArrayLen(4); err != nil {
		return err
	}
	if err := enc.EncodeUint64(d.ChainID); err != nil {
		return err
	}
	if err := enc.EncodeBytes(d.MaxFee.Bytes()); err != nil {
		return err
	}
	if d.GasLimit == nil {
		if err := enc.EncodeNil(); err != nil {
			return err
		}
	} else {
		if err := enc.EncodeUint64(*d.GasLimit); err != nil {
			return err
		}
	}
	return enc.EncodeUint64(d.PriorityFeeBips)
}
