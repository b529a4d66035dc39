package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPServer(t *testing.T, mutate func(*Config)) *HTTPServer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DatabaseURL = "skip"
	cfg.LogWriter = io.Discard
	cfg.APIKeys = []string{"valid-key"}
	if mutate != nil {
		mutate(&cfg)
	}
	server, err := NewHTTPServer(cfg)
	require.NoError(t, err)
	return server
}

func mcpBody(t *testing.T, method string) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(Request{JSONRPC: JSONRPCVersion, ID: 1, Method: method})
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestAuthMiddlewareMissingKey(t *testing.T) {
	server := newTestHTTPServer(t, nil)

	req := httptest.NewRequest("POST", "/mcp", mcpBody(t, "ping"))
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "API key required", body["error"])
}

func TestAuthMiddlewareInvalidKey(t *testing.T) {
	server := newTestHTTPServer(t, nil)

	req := httptest.NewRequest("POST", "/mcp", mcpBody(t, "ping"))
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid API key", body["error"])
}

func TestAuthMiddlewareAcceptsAllKeySources(t *testing.T) {
	server := newTestHTTPServer(t, nil)

	tests := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{"bearer header", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer valid-key")
		}},
		{"x-api-key header", func(r *http.Request) {
			r.Header.Set("X-API-Key", "valid-key")
		}},
		{"query parameter", func(r *http.Request) {
			q := r.URL.Query()
			q.Set("api_key", "valid-key")
			r.URL.RawQuery = q.Encode()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/mcp", mcpBody(t, "ping"))
			tt.prepare(req)
			rec := httptest.NewRecorder()
			server.server.Handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Nil(t, resp.Error)
		})
	}
}

func TestAuthDisabledSkipsMiddleware(t *testing.T) {
	server := newTestHTTPServer(t, func(cfg *Config) {
		cfg.RequireAPIKey = false
		cfg.APIKeys = nil
	})

	req := httptest.NewRequest("POST", "/mcp", mcpBody(t, "ping"))
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicEndpointsSkipAuth(t *testing.T) {
	server := newTestHTTPServer(t, nil)

	t.Run("health", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		server.server.Handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "not configured", body["database"])
	})

	t.Run("root info", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		server.server.Handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["authentication_required"])
		assert.Contains(t, body["message"], "MCP Server")
	})
}

func TestHealthReportsConnectedDatabase(t *testing.T) {
	server := newTestHTTPServer(t, func(cfg *Config) {
		cfg.DatabaseURL = ":memory:"
	})
	t.Cleanup(func() { server.core.Close() })

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connected", body["database"])
}

func TestMCPEndpointRejectsGet(t *testing.T) {
	server := newTestHTTPServer(t, nil)

	req := httptest.NewRequest("GET", "/mcp", nil)
	req.Header.Set("X-API-Key", "valid-key")
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestHTTPServer(t, func(cfg *Config) {
		cfg.CORSOrigin = "https://app.example.com"
	})

	req := httptest.NewRequest("OPTIONS", "/mcp", nil)
	rec := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
}

func TestExtractAPIKeyPrecedence(t *testing.T) {
	req := httptest.NewRequest("POST", "/mcp?api_key=from-query", nil)
	req.Header.Set("Authorization", "Bearer from-bearer")
	req.Header.Set("X-API-Key", "from-header")

	assert.Equal(t, "from-bearer", extractAPIKey(req))

	req.Header.Del("Authorization")
	assert.Equal(t, "from-header", extractAPIKey(req))

	req.Header.Del("X-API-Key")
	assert.Equal(t, "from-query", extractAPIKey(req))
}
