package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lxzan/gws"
	"github.com/rs/zerolog"

	"bullet/internal/ws"
	"bullet/pkg/core"
)

// Frame is one complete websocket data frame.
type Frame struct {
	// Binary is true for binary-opcode frames.
	Binary bool
	// Data is the frame payload.
	Data []byte
}

// WSConfig holds configuration options for a websocket connection.
type WSConfig struct {
	// URL is the websocket server endpoint to connect to.
	URL string
	// FrameBuffer is the capacity of the inbound frame queue.
	FrameBuffer int
}

// WSConn is a single websocket connection exposing a pull-style frame
// queue. Protocol-level ping/pong keepalive is answered automatically; the
// connection imposes no other timers. There is no reconnection here:
// once the connection reaches a terminal error the owner must dial again.
type WSConn struct {
	config WSConfig
	state  *ws.State
	logger zerolog.Logger

	conn    *gws.Conn
	frames  chan Frame
	openCh  chan struct{}
	done    chan struct{}
	closing chan struct{}

	mu        sync.Mutex
	closeErr  error
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type wsEventHandler struct {
	conn *WSConn
}

func (h *wsEventHandler) OnOpen(socket *gws.Conn) {
	h.conn.state.Store(ws.StateConnected)
	close(h.conn.openCh)
	h.conn.logger.Debug().
		Str("url", h.conn.config.URL).
		Msg("websocket connected")
}

func (h *wsEventHandler) OnClose(socket *gws.Conn, err error) {
	h.conn.state.Store(ws.StateClosed)

	h.conn.mu.Lock()
	if h.conn.closeErr == nil {
		h.conn.closeErr = closeCause(err)
	}
	h.conn.mu.Unlock()
	close(h.conn.done)

	h.conn.logger.Debug().
		Err(err).
		Str("url", h.conn.config.URL).
		Msg("websocket disconnected")
}

func (h *wsEventHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (h *wsEventHandler) OnPong(socket *gws.Conn, payload []byte) {}

func (h *wsEventHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	raw := message.Bytes()
	data := make([]byte, len(raw))
	copy(data, raw)

	frame := Frame{
		Binary: message.Opcode == gws.OpcodeBinary,
		Data:   data,
	}

	// closing unblocks a full queue during Close so ReadLoop can exit.
	select {
	case h.conn.frames <- frame:
	case <-h.conn.done:
	case <-h.conn.closing:
	}
}

// closeCause maps the transport's close notification onto the session
// error taxonomy: a close frame carries its code and reason, anything else
// is an abnormal stream end.
func closeCause(err error) error {
	var ce *gws.CloseError
	if errors.As(err, &ce) {
		return &core.CloseError{Code: ce.Code, Reason: string(ce.Reason)}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStreamEnded, err)
	}
	return core.ErrStreamEnded
}

// DialWS opens a websocket connection and waits for the transport-level
// upgrade to complete. Cancelling ctx during the wait closes the socket so
// a half-opened connection is never returned.
func DialWS(ctx context.Context, config WSConfig, logger zerolog.Logger) (*WSConn, error) {
	if config.FrameBuffer == 0 {
		config.FrameBuffer = 64
	}

	c := &WSConn{
		config: config,
		state:  &ws.State{},
		logger: logger,
		frames:  make(chan Frame, config.FrameBuffer),
		openCh:  make(chan struct{}),
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}
	c.state.Store(ws.StateConnecting)

	socket, _, err := gws.NewClient(&wsEventHandler{conn: c}, &gws.ClientOption{
		Addr: config.URL,
	})
	if err != nil {
		c.state.Store(ws.StateDisconnected)
		return nil, core.WrapError(core.ErrorTypeProtocol, "dial", "connect websocket", err)
	}
	c.conn = socket

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		socket.ReadLoop()
	}()

	select {
	case <-c.openCh:
		return c, nil
	case <-c.done:
		return nil, c.closeError()
	case <-ctx.Done():
		_ = socket.NetConn().Close()
		return nil, ctx.Err()
	}
}

// ReadFrame blocks until one complete frame is available, the connection
// terminates, or ctx is cancelled. Buffered frames are drained before a
// terminal error is reported so no delivered data is lost.
func (c *WSConn) ReadFrame(ctx context.Context) (Frame, error) {
	select {
	case frame := <-c.frames:
		return frame, nil
	default:
	}

	select {
	case frame := <-c.frames:
		return frame, nil
	case <-c.done:
		// Frames queued before the close are still deliverable.
		select {
		case frame := <-c.frames:
			return frame, nil
		default:
			return Frame{}, c.closeError()
		}
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

// WriteText sends a text frame. No write timeout is imposed beyond the
// transport's own backpressure.
func (c *WSConn) WriteText(data []byte) error {
	if c.state.Load() != ws.StateConnected {
		return core.ErrNotConnected
	}
	return c.conn.WriteMessage(gws.OpcodeText, data)
}

// Close sends a close frame and tears the connection down. Safe to call
// more than once and from any goroutine.
func (c *WSConn) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		if c.closeErr == nil {
			c.closeErr = core.ErrSessionClosed
		}
		c.mu.Unlock()
		close(c.closing)

		if c.conn != nil {
			_ = c.conn.WriteClose(1000, nil)
			_ = c.conn.NetConn().Close()
		}
		c.state.Store(ws.StateClosed)
		c.wg.Wait()
	})
	return nil
}

// State returns the current transport connection state.
func (c *WSConn) State() ws.ConnState {
	return c.state.Load()
}

func (c *WSConn) closeError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closeErr == nil {
		return core.ErrStreamEnded
	}
	return c.closeErr
}
