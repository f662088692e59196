package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "closed", StateClosed.String())
}

func TestState_LoadStore(t *testing.T) {
	var s State

	assert.Equal(t, StateDisconnected, s.Load())

	s.Store(StateConnected)
	assert.Equal(t, StateConnected, s.Load())
}

func TestState_CompareAndSwap(t *testing.T) {
	var s State
	s.Store(StateConnecting)

	assert.True(t, s.CompareAndSwap(StateConnecting, StateConnected))
	assert.Equal(t, StateConnected, s.Load())

	assert.False(t, s.CompareAndSwap(StateConnecting, StateClosed))
	assert.Equal(t, StateConnected, s.Load())
}
