package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_InvalidConfig(t *testing.T) {
	_, err := NewHTTPClient(&HTTPConfig{BaseURL: "not a url", Timeout: time.Second}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewHTTPClient(&HTTPConfig{BaseURL: "https://example.com"}, zerolog.Nop())
	assert.Error(t, err, "zero timeout fails validation")
}

func TestHTTPClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(&HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	var out struct {
		OK bool `json:"ok"`
	}
	resp, err := client.Get(context.Background(), "/ping", WithResult(&out))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.True(t, out.OK)
}

func TestHTTPClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(&HTTPConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	resp, err := client.Post(context.Background(), "/submit", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestHTTPClient_UseAfterClose(t *testing.T) {
	client, err := NewHTTPClient(&HTTPConfig{BaseURL: "https://example.com", Timeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close(), "close is idempotent")

	_, err = client.Get(context.Background(), "/")
	assert.Error(t, err)
}
