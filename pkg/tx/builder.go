package tx

import (
	"time"

	"bullet/pkg/core"
)

// Clock supplies the current time to the builder. Injecting it keeps the
// wall-clock read explicit and lets tests supply deterministic timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Builder turns domain instructions into unsigned transactions for a fixed
// chain id. Safe for concurrent use: each Build reads the clock and produces
// an independent result.
type Builder struct {
	chainID uint64
	clock   Clock
}

// NewBuilder creates a Builder for the given chain id. A nil clock defaults
// to the system clock.
func NewBuilder(chainID uint64, clock Clock) *Builder {
	if clock == nil {
		clock = systemClock{}
	}
	return &Builder{chainID: chainID, clock: clock}
}

// Build creates an unsigned transaction from a call message and a fee
// ceiling. It fails only if the clock reads before the Unix epoch.
//
// The uniqueness token is the build time in whole milliseconds, so two
// builds within the same millisecond may legitimately collide. This is a
// coarse de-duplication boundary, not a strict per-transaction nonce;
// callers needing stronger guarantees must supply their own uniqueness
// scheme upstream.
func (b *Builder) Build(call CallMessage, maxFee Amount) (UnsignedTransaction, error) {
	ms := b.clock.Now().UnixMilli()
	if ms < 0 {
		return UnsignedTransaction{}, core.ErrClockBeforeEpoch
	}
	return UnsignedTransaction{
		RuntimeCall: ExchangeCall(call),
		Uniqueness:  Uniqueness{Generation: uint64(ms)},
		Details: Details{
			ChainID:         b.chainID,
			MaxFee:          maxFee,
			GasLimit:        nil,
			PriorityFeeBips: 0,
		},
	}, nil
}

// ChainID returns the chain id this builder stamps into transactions.
func (b *Builder) ChainID() uint64 {
	return b.chainID
}
