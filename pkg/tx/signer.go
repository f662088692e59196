package tx

import (
	"encoding/base64"
	"fmt"

	"bullet/pkg/core"
	"bullet/pkg/keypair"
)

// Sign produces a signed transaction from an unsigned one.
//
// The signing input is EncodeUnsigned(utx) followed by the 32-byte chain
// identity hash. The hash acts as a domain separator: a signature produced
// for one chain instance cannot be replayed on another even when the
// transaction contents are identical.
func Sign(utx UnsignedTransaction, kp *keypair.KeyPair, chainHash [core.ChainHashSize]byte) (SignedTransaction, error) {
	payload, err := EncodeUnsigned(utx)
	if err != nil {
		return SignedTransaction{}, err
	}
	msg := append(payload, chainHash[:]...)

	sig := kp.Sign(msg)
	if len(sig) != keypair.SignatureSize {
		return SignedTransaction{}, core.NewClientError(core.ErrorTypeSigning, "sign",
			fmt.Sprintf("invalid signature length: expected %d bytes, got %d", keypair.SignatureSize, len(sig)))
	}
	pub := kp.PublicKey()
	if len(pub) != keypair.PublicKeySize {
		return SignedTransaction{}, core.NewClientError(core.ErrorTypeSigning, "sign",
			fmt.Sprintf("invalid public key length: expected %d bytes, got %d", keypair.PublicKeySize, len(pub)))
	}

	stx := SignedTransaction{
		Version:     VersionV0,
		RuntimeCall: utx.RuntimeCall,
		Uniqueness:  utx.Uniqueness,
		Details:     utx.Details,
	}
	copy(stx.PubKey[:], pub)
	copy(stx.Signature[:], sig)
	return stx, nil
}

// ToWire encodes a signed transaction to its base64 wire form. This exact
// string is both the REST submission body and the WebSocket order payload.
func ToWire(stx SignedTransaction) (string, error) {
	raw, err := EncodeSigned(stx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
