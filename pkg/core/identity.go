package core

import "encoding/hex"

// ChainHashSize is the length in bytes of a chain identity hash.
const ChainHashSize = 32

// ChainIdentity holds the per-deployment parameters fetched once during
// session establishment. The ChainHash is appended to every transaction
// before signing as a domain separator, so a signature produced for one
// deployment can never be replayed on another even if the transaction
// contents are identical. Treat it as read-only shared configuration for
// the life of the session.
type ChainIdentity struct {
	// ChainID identifies the chain instance.
	ChainID uint64
	// ChainHash is the 32-byte chain identity hash.
	ChainHash [ChainHashSize]byte
}

// ChainHashHex returns the chain hash as a lowercase hex string.
func (c ChainIdentity) ChainHashHex() string {
	return hex.EncodeToString(c.ChainHash[:])
}
