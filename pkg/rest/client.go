// Package rest implements the HTTP side of the venue API: the session
// establishment handshake that yields the chain identity, and signed
// transaction submission.
package rest

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"bullet/internal/ratelimit"
	"bullet/internal/transport"
	"bullet/pkg/core"
)

// API paths relative to the base URL.
const (
	pathConstants = "/v1/constants"
	pathSchema    = "/v1/schema"
	pathSubmitTx  = "/v1/tx"
)

// DefaultTimeout is the per-request HTTP timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// Default submission pacing: 10 transactions per second with matching burst.
const (
	defaultSubmitRequests = 10
	defaultSubmitPeriod   = time.Second
)

// Config holds configuration options for the REST client.
type Config struct {
	// BaseURL is the venue's HTTP endpoint.
	BaseURL string `validate:"required,url"`
	// Timeout is the per-request timeout. Zero means DefaultTimeout.
	Timeout time.Duration `validate:"min=0"`
	// SubmitRequests and SubmitPeriod pace transaction submission. Zero
	// values mean the defaults.
	SubmitRequests int           `validate:"min=0"`
	SubmitPeriod   time.Duration `validate:"min=0"`
}

// Client talks to the venue's REST API.
type Client struct {
	http    *transport.HTTPClient
	limiter *ratelimit.RateLimiter
	logger  zerolog.Logger
}

// New validates the config and builds a REST client.
func New(config Config) (*Client, error) {
	if err := validator.New().Struct(&config); err != nil {
		return nil, core.WrapError(core.ErrorTypeConfig, "new", "invalid config", err)
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.SubmitRequests == 0 {
		config.SubmitRequests = defaultSubmitRequests
	}
	if config.SubmitPeriod == 0 {
		config.SubmitPeriod = defaultSubmitPeriod
	}

	logger := zerolog.Nop()
	httpClient, err := transport.NewHTTPClient(&transport.HTTPConfig{
		BaseURL: config.BaseURL,
		Timeout: config.Timeout,
	}, logger)
	if err != nil {
		return nil, core.WrapError(core.ErrorTypeConfig, "new", "build http client", err)
	}

	return &Client{
		http:    httpClient,
		limiter: ratelimit.New(config.SubmitRequests, config.SubmitPeriod),
		logger:  logger,
	}, nil
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
	c.http.SetLogger(logger)
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// ConstantsResponse is the body of the constants endpoint. ChainID is kept
// as a raw JSON number so out-of-range values are detected rather than
// silently truncated.
type ConstantsResponse struct {
	ChainID json.Number `json:"chain_id"`
}

// SchemaResponse is the body of the schema endpoint.
type SchemaResponse struct {
	ChainHash string `json:"chain_hash"`
}

// Constants fetches the venue constants.
func (c *Client) Constants(ctx context.Context) (ConstantsResponse, error) {
	var out ConstantsResponse
	resp, err := c.http.Get(ctx, pathConstants, transport.WithResult(&out))
	if err != nil {
		return ConstantsResponse{}, core.WrapError(core.ErrorTypeTransport, "constants", "fetch constants", err)
	}
	if resp.IsError() {
		return ConstantsResponse{}, core.NewClientError(core.ErrorTypeTransport, "constants",
			fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}
	return out, nil
}

// Schema fetches the venue schema.
func (c *Client) Schema(ctx context.Context) (SchemaResponse, error) {
	var out SchemaResponse
	resp, err := c.http.Get(ctx, pathSchema, transport.WithResult(&out))
	if err != nil {
		return SchemaResponse{}, core.WrapError(core.ErrorTypeTransport, "schema", "fetch schema", err)
	}
	if resp.IsError() {
		return SchemaResponse{}, core.NewClientError(core.ErrorTypeTransport, "schema",
			fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}
	return out, nil
}

// Establish performs the session establishment handshake: it fetches the
// venue constants and schema and validates them into a chain identity. Any
// defect in either response is a fatal configuration error since every
// signature the client ever produces depends on these two values.
func (c *Client) Establish(ctx context.Context) (core.ChainIdentity, error) {
	constants, err := c.Constants(ctx)
	if err != nil {
		return core.ChainIdentity{}, err
	}
	chainID, err := parseChainID(constants.ChainID)
	if err != nil {
		return core.ChainIdentity{}, err
	}

	schema, err := c.Schema(ctx)
	if err != nil {
		return core.ChainIdentity{}, err
	}
	chainHash, err := parseChainHash(schema.ChainHash)
	if err != nil {
		return core.ChainIdentity{}, err
	}

	c.logger.Debug().
		Uint64("chain_id", chainID).
		Str("chain_hash", hex.EncodeToString(chainHash[:])).
		Msg("session established")

	return core.ChainIdentity{ChainID: chainID, ChainHash: chainHash}, nil
}

func parseChainID(raw json.Number) (uint64, error) {
	v, err := strconv.ParseUint(raw.String(), 10, 64)
	if err != nil {
		return 0, &core.ChainIDError{Value: raw.String()}
	}
	return v, nil
}

func parseChainHash(raw string) ([core.ChainHashSize]byte, error) {
	var hash [core.ChainHashSize]byte
	if raw == "" {
		return hash, &core.ChainHashError{Reason: "chain_hash field is missing or empty"}
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return hash, &core.ChainHashError{Reason: fmt.Sprintf("not valid hex: %v", err)}
	}
	if len(decoded) != core.ChainHashSize {
		return hash, &core.ChainHashError{
			Reason: fmt.Sprintf("expected %d bytes, got %d", core.ChainHashSize, len(decoded)),
		}
	}
	copy(hash[:], decoded)
	return hash, nil
}

// SubmitTxRequest is the transaction submission body. Body is the base64
// wire form of a signed transaction.
type SubmitTxRequest struct {
	Body string `json:"body"`
}

// SubmitTxResponse is the venue's acknowledgement of a submitted
// transaction.
type SubmitTxResponse struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
}

// SubmitTx submits a signed transaction in wire form. Submission is paced
// by the client's rate limiter; Wait blocks until a slot is available or
// ctx is cancelled.
func (c *Client) SubmitTx(ctx context.Context, body string) (SubmitTxResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return SubmitTxResponse{}, core.WrapError(core.ErrorTypeTransport, "submit_tx", "rate limit wait", err)
	}

	var out SubmitTxResponse
	resp, err := c.http.Post(ctx, pathSubmitTx, SubmitTxRequest{Body: body}, transport.WithResult(&out))
	if err != nil {
		return SubmitTxResponse{}, core.WrapError(core.ErrorTypeTransport, "submit_tx", "submit transaction", err)
	}
	if resp.IsError() {
		return SubmitTxResponse{}, core.NewClientError(core.ErrorTypeTransport, "submit_tx",
			fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}

	c.logger.Debug().Str("tx_hash", out.TxHash).Str("status", out.Status).Msg("transaction submitted")
	return out, nil
}
