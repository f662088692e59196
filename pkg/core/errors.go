package core

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a client error.
type ErrorType int

// Error type constants categorize errors so callers can pick retry and
// reconnection policy per kind. The library itself never retries.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfig indicates invalid configuration or a malformed
	// session-establishment response. Fatal, never retried.
	ErrorTypeConfig
	// ErrorTypeSigning indicates a signing-domain fault such as a malformed
	// key or an encoding failure. Indicates a programmer or environment
	// error, not a transient condition.
	ErrorTypeSigning
	// ErrorTypeTransport indicates an HTTP transport failure wrapped from
	// the REST layer.
	ErrorTypeTransport
	// ErrorTypeProtocol indicates a WebSocket protocol failure such as a
	// handshake rejection or an abnormal close.
	ErrorTypeProtocol
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIG",
		"SIGNING",
		"TRANSPORT",
		"PROTOCOL",
	}[t]
}

// Sentinel errors for fixed conditions.
var (
	// ErrInvalidEndpoint is returned when the endpoint URL is neither an
	// http nor an https URL.
	ErrInvalidEndpoint = errors.New("endpoint URL must use http or https scheme")
	// ErrClockBeforeEpoch is returned when the system clock reads before the
	// Unix epoch. This is an environment fault, not a normal error path.
	ErrClockBeforeEpoch = errors.New("system clock is before the Unix epoch")
	// ErrNotConnected is returned when writing to a WebSocket session that
	// has no active connection.
	ErrNotConnected = errors.New("websocket not connected")
	// ErrConnectionTimeout is returned when the server does not complete the
	// WebSocket handshake within the configured timeout.
	ErrConnectionTimeout = errors.New("websocket connection timed out waiting for server")
	// ErrStreamEnded is returned when the WebSocket stream terminates without
	// a close frame. Distinct from CloseError so callers can treat graceful
	// and abnormal termination differently.
	ErrStreamEnded = errors.New("websocket stream ended unexpectedly")
	// ErrSessionClosed is returned when using a session after Close.
	ErrSessionClosed = errors.New("session is closed")
)

// ClientError is a structured error carrying its category and the operation
// that produced it.
type ClientError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType
	// Op names the operation that failed (e.g. "sign", "submit_tx").
	Op string
	// Message is the human-readable error description.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for ClientError.
func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a ClientError with the given category, operation,
// and message.
func NewClientError(errorType ErrorType, op, message string) *ClientError {
	return &ClientError{Type: errorType, Op: op, Message: message}
}

// WrapError creates a ClientError wrapping an underlying cause.
func WrapError(errorType ErrorType, op, message string, err error) *ClientError {
	return &ClientError{Type: errorType, Op: op, Message: message, Err: err}
}

// CloseError is returned by Recv when the server closes the connection with
// a close frame. It preserves the protocol close code and reason.
type CloseError struct {
	// Code is the WebSocket close code sent by the server.
	Code uint16
	// Reason is the close reason sent by the server.
	Reason string
}

// Error implements the error interface for CloseError.
func (e *CloseError) Error() string {
	return fmt.Sprintf("websocket closed (%d): %s", e.Code, e.Reason)
}

// HandshakeError is returned when the server sends something other than a
// connected status message during the connection handshake.
type HandshakeError struct {
	// Received is a debug rendering of the message the server sent instead.
	Received string
}

// Error implements the error interface for HandshakeError.
func (e *HandshakeError) Error() string {
	return fmt.Sprintf("expected 'connected' status, got: %s", e.Received)
}

// ChainIDError is returned when the constants endpoint yields a chain id
// that does not fit an unsigned 64-bit integer.
type ChainIDError struct {
	// Value is the raw chain id value from the server.
	Value string
}

// Error implements the error interface for ChainIDError.
func (e *ChainIDError) Error() string {
	return fmt.Sprintf("chain id %q does not fit uint64", e.Value)
}

// ChainHashError is returned when the schema endpoint yields a missing or
// malformed chain identity hash.
type ChainHashError struct {
	// Reason describes the specific defect (missing field, bad hex, length).
	Reason string
}

// Error implements the error interface for ChainHashError.
func (e *ChainHashError) Error() string {
	return fmt.Sprintf("invalid chain hash: %s", e.Reason)
}

// IsConfigError returns true if the error is a configuration or
// session-establishment fault.
func IsConfigError(err error) bool {
	var e *ClientError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeConfig
	}
	return false
}

// IsSigningError returns true if the error originates in the signing domain.
func IsSigningError(err error) bool {
	var e *ClientError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeSigning
	}
	return false
}

// IsTransportError returns true if the error is an HTTP transport failure.
func IsTransportError(err error) bool {
	var e *ClientError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeTransport
	}
	return false
}

// IsProtocolError returns true if the error is a WebSocket protocol failure.
func IsProtocolError(err error) bool {
	var e *ClientError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeProtocol
	}
	return false
}
