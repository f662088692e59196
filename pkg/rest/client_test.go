package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bullet/pkg/core"
)

const testChainHashHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func startVenue(t *testing.T, chainID, chainHash string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/constants", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chain_id":` + chainID + `}`))
	})
	mux.HandleFunc("/v1/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body, _ := sonic.Marshal(SchemaResponse{ChainHash: chainHash})
		_, _ = w.Write(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Config{BaseURL: baseURL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{BaseURL: ""})
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestEstablish(t *testing.T) {
	srv := startVenue(t, "42", testChainHashHex)
	client := newTestClient(t, srv.URL)

	identity, err := client.Establish(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(42), identity.ChainID)
	assert.Equal(t, testChainHashHex, identity.ChainHashHex())
}

func TestEstablish_0xPrefixedHash(t *testing.T) {
	srv := startVenue(t, "42", "0x"+testChainHashHex)
	client := newTestClient(t, srv.URL)

	identity, err := client.Establish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testChainHashHex, identity.ChainHashHex())
}

func TestEstablish_ChainIDOverflow(t *testing.T) {
	// One past the uint64 maximum.
	srv := startVenue(t, "18446744073709551616", testChainHashHex)
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())
	require.Error(t, err)

	var idErr *core.ChainIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "18446744073709551616", idErr.Value)
}

func TestEstablish_ChainIDNegative(t *testing.T) {
	srv := startVenue(t, "-1", testChainHashHex)
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())

	var idErr *core.ChainIDError
	require.ErrorAs(t, err, &idErr)
}

func TestEstablish_MissingChainHash(t *testing.T) {
	srv := startVenue(t, "42", "")
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())

	var hashErr *core.ChainHashError
	require.ErrorAs(t, err, &hashErr)
	assert.Contains(t, hashErr.Reason, "missing")
}

func TestEstablish_BadHexChainHash(t *testing.T) {
	srv := startVenue(t, "42", "zzzz")
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())

	var hashErr *core.ChainHashError
	require.ErrorAs(t, err, &hashErr)
}

func TestEstablish_ShortChainHash(t *testing.T) {
	srv := startVenue(t, "42", "deadbeef")
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())

	var hashErr *core.ChainHashError
	require.ErrorAs(t, err, &hashErr)
	assert.Contains(t, hashErr.Reason, "expected 32 bytes")
}

func TestEstablish_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := newTestClient(t, srv.URL)

	_, err := client.Establish(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func TestSubmitTx(t *testing.T) {
	var received SubmitTxRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/tx", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tx_hash":"0xabc","status":"accepted"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := newTestClient(t, srv.URL)

	resp, err := client.SubmitTx(context.Background(), "dGVzdA==")
	require.NoError(t, err)

	assert.Equal(t, "dGVzdA==", received.Body)
	assert.Equal(t, "0xabc", resp.TxHash)
	assert.Equal(t, "accepted", resp.Status)
}

func TestSubmitTx_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/tx", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := newTestClient(t, srv.URL)

	_, err := client.SubmitTx(context.Background(), "dGVzdA==")
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}
