package etherscan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "/api", r.URL.Path)
		require.Equal(t, "tokenbalance", q.Get("action"))
		require.Equal(t, "0xtoken", q.Get("contractaddress"))
		require.Equal(t, "0xwallet", q.Get("address"))
		require.Equal(t, "key", q.Get("apikey"))
		_, _ = w.Write([]byte(`{"status":"1","message":"OK","result":"135499000000"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key", 100, 1)
	bal, err := c.TokenBalance(context.Background(), "0xtoken", "0xwallet")
	require.NoError(t, err)
	require.Equal(t, "135499000000", bal.String())
}

func TestTokenBalanceUpstreamNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"0","message":"NOTOK","result":"Invalid API Key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "bad", 100, 1)
	_, err := c.TokenBalance(context.Background(), "0xtoken", "0xwallet")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Contains(t, apiErr.Message, "Invalid API Key")
}

func TestTokenBalanceRequiresKey(t *testing.T) {
	c := NewClient(nil, "", "", 0, 0)
	_, err := c.TokenBalance(context.Background(), "0xtoken", "0xwallet")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
