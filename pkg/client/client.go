// Package client is the top-level entry point: it establishes a venue
// session over REST, carries the resulting chain identity, and hands out
// transaction building, signing, submission, and websocket sessions bound
// to that identity.
package client

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"bullet/pkg/core"
	"bullet/pkg/keypair"
	"bullet/pkg/rest"
	"bullet/pkg/tx"
	"bullet/pkg/ws"
)

// MainnetURL is the production venue endpoint.
const MainnetURL = "https://tradingapi.bullet.xyz"

// Client is an established venue session. The chain identity fetched at
// construction is immutable for the client's lifetime; all signing flows
// through it. Safe for concurrent use.
type Client struct {
	restURL string
	wsURL   string

	rest    *rest.Client
	builder *tx.Builder

	identity core.ChainIdentity
	logger   zerolog.Logger

	handshakeTimeout time.Duration
	timeout          time.Duration
	clock            tx.Clock
}

// Option customises a client before it connects.
type Option func(*Client)

// WithLogger sets the logger used by the client and its REST layer.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock injects the clock used for transaction uniqueness tokens.
func WithClock(clock tx.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHandshakeTimeout sets the websocket handshake timeout used by
// ConnectWS.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.handshakeTimeout = timeout
	}
}

// New establishes a session against the venue at the given URL. The
// endpoint must be http or https; the websocket endpoint is derived from
// it (https yields wss on the same host at path /ws, http yields ws).
// New returns only after the chain identity has been fetched and
// validated, so a returned Client is always ready to sign.
func New(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	restURL, wsURL, err := deriveURLs(endpoint)
	if err != nil {
		return nil, err
	}

	c := &Client{
		restURL: restURL,
		wsURL:   wsURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	restClient, err := rest.New(rest.Config{
		BaseURL: restURL,
		Timeout: c.timeout,
	})
	if err != nil {
		return nil, err
	}
	restClient.SetLogger(c.logger)

	identity, err := restClient.Establish(ctx)
	if err != nil {
		_ = restClient.Close()
		return nil, err
	}

	c.rest = restClient
	c.identity = identity
	c.builder = tx.NewBuilder(identity.ChainID, c.clock)

	c.logger.Debug().
		Str("url", restURL).
		Uint64("chain_id", identity.ChainID).
		Msg("client ready")
	return c, nil
}

// Mainnet establishes a session against the production venue.
func Mainnet(ctx context.Context, opts ...Option) (*Client, error) {
	return New(ctx, MainnetURL, opts...)
}

// deriveURLs splits an endpoint into its REST base and the websocket URL
// on the same authority.
func deriveURLs(endpoint string) (restURL, wsURL string, err error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", "", core.ErrInvalidEndpoint
	}
	switch parsed.Scheme {
	case "https":
		return endpoint, "wss://" + parsed.Host + "/ws", nil
	case "http":
		return endpoint, "ws://" + parsed.Host + "/ws", nil
	default:
		return "", "", core.ErrInvalidEndpoint
	}
}

// ChainID returns the session's chain id.
func (c *Client) ChainID() uint64 {
	return c.identity.ChainID
}

// ChainHash returns the session's 32-byte chain identity hash.
func (c *Client) ChainHash() [core.ChainHashSize]byte {
	return c.identity.ChainHash
}

// URL returns the REST endpoint this client is bound to.
func (c *Client) URL() string {
	return c.restURL
}

// WSURL returns the derived websocket endpoint.
func (c *Client) WSURL() string {
	return c.wsURL
}

// REST exposes the underlying REST client for endpoints not covered by
// the facade.
func (c *Client) REST() *rest.Client {
	return c.rest
}

// BuildTransaction creates an unsigned transaction carrying the session's
// chain id and a clock-derived uniqueness token.
func (c *Client) BuildTransaction(call tx.CallMessage, maxFee tx.Amount) (tx.UnsignedTransaction, error) {
	return c.builder.Build(call, maxFee)
}

// SignTransaction signs an unsigned transaction under the session's chain
// identity hash.
func (c *Client) SignTransaction(utx tx.UnsignedTransaction, kp *keypair.KeyPair) (tx.SignedTransaction, error) {
	return tx.Sign(utx, kp, c.identity.ChainHash)
}

// SubmitTransaction encodes a signed transaction to wire form and submits
// it over REST.
func (c *Client) SubmitTransaction(ctx context.Context, stx tx.SignedTransaction) (rest.SubmitTxResponse, error) {
	wire, err := tx.ToWire(stx)
	if err != nil {
		return rest.SubmitTxResponse{}, err
	}
	return c.rest.SubmitTx(ctx, wire)
}

// SignAndSubmit builds, signs, and submits a transaction in one step.
func (c *Client) SignAndSubmit(ctx context.Context, call tx.CallMessage, maxFee tx.Amount, kp *keypair.KeyPair) (rest.SubmitTxResponse, error) {
	utx, err := c.BuildTransaction(call, maxFee)
	if err != nil {
		return rest.SubmitTxResponse{}, err
	}
	stx, err := c.SignTransaction(utx, kp)
	if err != nil {
		return rest.SubmitTxResponse{}, err
	}
	return c.SubmitTransaction(ctx, stx)
}

// ConnectWS opens a websocket session against the derived endpoint.
func (c *Client) ConnectWS(ctx context.Context) (*ws.Session, error) {
	return c.ConnectWSWithConfig(ctx, ws.Config{
		URL:              c.wsURL,
		HandshakeTimeout: c.handshakeTimeout,
	})
}

// ConnectWSWithConfig opens a websocket session with explicit settings. A
// zero URL means the client's derived endpoint.
func (c *Client) ConnectWSWithConfig(ctx context.Context, config ws.Config) (*ws.Session, error) {
	if config.URL == "" {
		config.URL = c.wsURL
	}
	return ws.Connect(ctx, config, ws.WithLogger(c.logger))
}

// Close releases the client's REST resources. Websocket sessions are
// closed individually by their owners.
func (c *Client) Close() error {
	return c.rest.Close()
}
