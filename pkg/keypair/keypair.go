// Package keypair provides the Ed25519 signing identity used to authorize
// transactions.
//
// The private key is held in process memory. For production use with
// significant funds, prefer a hardware wallet or an external signing service.
package keypair

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"bullet/pkg/core"
)

const (
	// SeedSize is the length in bytes of a private key seed.
	SeedSize = 32
	// PublicKeySize is the length in bytes of a public key.
	PublicKeySize = 32
	// SignatureSize is the length in bytes of a signature.
	SignatureSize = 64
)

// KeyPair is an Ed25519 keypair. Immutable after creation; it is never
// serialized implicitly (use SeedBytes for explicit export).
type KeyPair struct {
	priv ed25519.PrivateKey
}

// FromBytes creates a keypair from a 32-byte seed.
func FromBytes(seed [SeedSize]byte) *KeyPair {
	return &KeyPair{priv: ed25519.NewKeyFromSeed(seed[:])}
}

// FromHex creates a keypair from a hex-encoded 32-byte seed.
// Accepts seeds with or without a "0x" prefix.
func FromHex(s string) (*KeyPair, error) {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "keypair", "invalid private key hex", err)
	}
	if len(raw) != SeedSize {
		return nil, core.NewClientError(core.ErrorTypeSigning, "keypair",
			fmt.Sprintf("invalid private key length: expected %d bytes, got %d", SeedSize, len(raw)))
	}
	var seed [SeedSize]byte
	copy(seed[:], raw)
	return FromBytes(seed), nil
}

// Generate creates a new keypair from the OS random number generator.
func Generate() (*KeyPair, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, core.WrapError(core.ErrorTypeSigning, "keypair", "generate private key", err)
	}
	return &KeyPair{priv: priv}, nil
}

// Sign signs the message and returns the 64-byte signature.
func (k *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// Verify reports whether sig is a valid signature of message under this
// keypair's public key.
func (k *KeyPair) Verify(message, sig []byte) bool {
	return ed25519.Verify(k.priv.Public().(ed25519.PublicKey), message, sig)
}

// PublicKey returns the 32-byte public key.
func (k *KeyPair) PublicKey() []byte {
	pub := k.priv.Public().(ed25519.PublicKey)
	out := make([]byte, len(pub))
	copy(out, pub)
	return out
}

// PublicKeyHex returns the public key as a hex string.
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey())
}

// SeedBytes returns the 32-byte private seed. This is the only way key
// material leaves the keypair.
func (k *KeyPair) SeedBytes() [SeedSize]byte {
	var seed [SeedSize]byte
	copy(seed[:], k.priv.Seed())
	return seed
}

// String renders the keypair without exposing the private key.
func (k *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{PublicKey:%s}", k.PublicKeyHex())
}
