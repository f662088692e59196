package ws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"bullet/internal/transport"
	"bullet/pkg/core"
)

// DefaultHandshakeTimeout bounds the wait for the server's connected
// status message.
const DefaultHandshakeTimeout = 10 * time.Second

// Config holds configuration options for a websocket session.
type Config struct {
	// URL is the websocket endpoint to connect to.
	URL string `validate:"required,url"`
	// HandshakeTimeout bounds the wait for the connected status message.
	// Zero means DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration `validate:"min=0"`
	// FrameBuffer is the inbound frame queue capacity. Zero means the
	// transport default.
	FrameBuffer int `validate:"min=0"`
}

// Session is an established websocket session. Connect returns only after
// the server has announced the session as connected, so a Session is always
// immediately usable.
//
// Recv must not be called concurrently with itself; all other methods are
// safe to call from any goroutine.
type Session struct {
	conn   *transport.WSConn
	logger zerolog.Logger
}

// Option customises a session before it connects.
type Option func(*Session)

// WithLogger sets the logger used by the session and its transport.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Connect dials the endpoint and performs the session handshake: the first
// frame from the server must be a status message with status "connected".
// Any other first frame fails the handshake, and silence beyond the
// handshake timeout fails with core.ErrConnectionTimeout. On any handshake
// failure the underlying connection is closed before returning, so a
// half-open session is never handed back.
func Connect(ctx context.Context, config Config, opts ...Option) (*Session, error) {
	if err := validator.New().Struct(&config); err != nil {
		return nil, core.WrapError(core.ErrorTypeConfig, "connect", "invalid config", err)
	}
	if config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = DefaultHandshakeTimeout
	}

	s := &Session{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	conn, err := transport.DialWS(ctx, transport.WSConfig{
		URL:         config.URL,
		FrameBuffer: config.FrameBuffer,
	}, s.logger)
	if err != nil {
		return nil, err
	}
	s.conn = conn

	if err := s.awaitConnected(ctx, config.HandshakeTimeout); err != nil {
		_ = conn.Close()
		return nil, err
	}

	s.logger.Debug().Str("url", config.URL).Msg("session established")
	return s, nil
}

func (s *Session) awaitConnected(ctx context.Context, timeout time.Duration) error {
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := s.Recv(hctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return core.ErrConnectionTimeout
		}
		return err
	}

	status, ok := msg.(StatusMessage)
	if !ok || status.Status != StatusConnected {
		return &core.HandshakeError{Received: fmt.Sprintf("%T%+v", msg, msg)}
	}
	return nil
}

// Send marshals a client message and writes it as one text frame.
func (s *Session) Send(msg ClientMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return core.WrapError(core.ErrorTypeProtocol, "send", "marshal client message", err)
	}
	if err := s.conn.WriteText(data); err != nil {
		return core.WrapError(core.ErrorTypeTransport, "send", "write frame", err)
	}
	s.logger.Debug().Str("method", msg.Method).Msg("message sent")
	return nil
}

// Recv blocks for the next server message and classifies it. Unparseable
// frames come back as Unknown, never as an error; Recv fails only when the
// connection itself fails:
//
//   - *core.CloseError when the server sent a close frame
//   - core.ErrStreamEnded when the stream ended without one
//   - core.ErrSessionClosed after Close
//   - ctx.Err() on cancellation
func (s *Session) Recv(ctx context.Context) (ServerMessage, error) {
	frame, err := s.conn.ReadFrame(ctx)
	if err != nil {
		return nil, err
	}
	return Classify(frame.Data), nil
}

// Subscribe requests the given topic streams. The server acknowledges with
// a SubscribeResult carrying the same id.
func (s *Session) Subscribe(topics []Topic, id *core.RequestID) error {
	return s.Send(NewSubscribeMessage(topicStrings(topics), id))
}

// Unsubscribe stops the given topic streams. Unsubscribing from a topic
// that is not subscribed still succeeds.
func (s *Session) Unsubscribe(topics []Topic, id *core.RequestID) error {
	return s.Send(NewUnsubscribeMessage(topicStrings(topics), id))
}

// ListSubscriptions requests the set of active subscriptions. The server
// answers with a ListSubscriptionsResult carrying the same id.
func (s *Session) ListSubscriptions(id *core.RequestID) error {
	return s.Send(NewListSubscriptionsMessage(id))
}

// Ping sends an application-level ping. Keepalive is handled by protocol
// frames automatically; this exists for explicit liveness checks.
func (s *Session) Ping(id *core.RequestID) error {
	return s.Send(NewPingMessage(id))
}

// OrderPlace submits a signed transaction in wire form as an order
// placement. The result arrives as a later message with the same id.
func (s *Session) OrderPlace(tx string, id *core.RequestID) error {
	return s.Send(NewOrderPlaceMessage(tx, id))
}

// OrderCancel submits a signed transaction in wire form as an order
// cancellation. The result arrives as a later message with the same id.
func (s *Session) OrderCancel(tx string, id *core.RequestID) error {
	return s.Send(NewOrderCancelMessage(tx, id))
}

// Close tears down the session. Pending and subsequent Recv calls fail
// with core.ErrSessionClosed once buffered frames are drained. Safe to
// call more than once.
func (s *Session) Close() error {
	return s.conn.Close()
}
