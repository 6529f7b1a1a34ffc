package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastHTTPClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "DEFAULT", r.Header.Get("SourceTenantId"))
		assert.Equal(t, "harness-test", r.Header.Get("User-Agent"))
		body, _ := io.ReadAll(r.Body) //nolint:errcheck
		assert.JSONEq(t, `{"a":1}`, string(body))

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(gzipCompress([]byte(`{"status":"ACTC"}`)))
	}))
	defer server.Close()

	client := NewFastHTTPClient(WithTimeout(2*time.Second), WithUserAgent("harness-test"))
	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/evaluate/iso20022/pacs.008.001.10", bytes.NewBufferString(`{"a":1}`))
	require.NoError(t, err)
	req.Header.Set("SourceTenantId", "DEFAULT")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ACTC"}`, string(body))
}

func TestFastHTTPClient_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewFastHTTPClient()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.Error(t, err)
}

func TestFastHTTPClient_ConnectionRefused(t *testing.T) {
	client := NewFastHTTPClient(WithTimeout(500 * time.Millisecond))
	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:1/health", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.Error(t, err)
}
