package core

// RequestID is an opaque correlation token attached by the caller to
// request-style WebSocket messages and echoed back by the server on the
// corresponding result. Absence is valid: requests sent without an id are
// fire-and-forget.
type RequestID int64

// NewRequestID returns a pointer to the given id, for use in the optional
// id slot of client messages.
func NewRequestID(n int64) *RequestID {
	id := RequestID(n)
	return &id
}

// Int64 returns the id as a plain int64.
func (id RequestID) Int64() int64 {
	return int64(id)
}
