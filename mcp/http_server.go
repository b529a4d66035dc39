package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the MCP protocol over HTTP. All MCP logic is delegated
// to the core stdio server; this layer adds authentication, CORS, and the
// public health and info endpoints.
type HTTPServer struct {
	config Config
	server *http.Server
	core   *Server
	log    zerolog.Logger
}

// publicPaths skip API key authentication.
var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// NewHTTPServer creates a new HTTP server that provides MCP functionality
func NewHTTPServer(config Config) (*HTTPServer, error) {
	core, err := NewServer(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create core MCP server: %w", err)
	}

	server := &HTTPServer{
		config: config,
		core:   core,
		log:    core.log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", server.handleMCPRequest)
	mux.HandleFunc("/health", server.handleHealth)
	mux.HandleFunc("/", server.handleRoot)

	handler := server.corsMiddleware(config.CORSOrigin, server.authMiddleware(mux))

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	server.log.Debug().Str("addr", server.server.Addr).Msg("HTTP server initialized")
	return server, nil
}

// extractAPIKey pulls the API key from the Authorization header, the
// X-API-Key header, or the api_key query parameter, in that order.
func extractAPIKey(r *http.Request) string {
	const bearerPrefix = "Bearer "
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}

func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] || !s.config.RequireAPIKey {
			next.ServeHTTP(w, r)
			return
		}

		key := extractAPIKey(r)
		if key == "" {
			s.writeAuthError(w, http.StatusUnauthorized, "API key required",
				"Provide API key via Authorization: Bearer <key>, X-API-Key header, or api_key query parameter")
			return
		}

		if !s.config.HasAPIKey(key) {
			s.writeAuthError(w, http.StatusForbidden, "Invalid API key",
				"The provided API key is not valid")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers
func (s *HTTPServer) corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleMCPRequest processes MCP JSON-RPC requests via HTTP
func (s *HTTPServer) handleMCPRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		s.writeAuthError(w, http.StatusMethodNotAllowed, "Method not allowed", "Only POST method allowed")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeAuthError(w, http.StatusBadRequest, "Bad request", "Invalid JSON-RPC request")
		return
	}

	s.log.Debug().Str("method", req.Method).Msg("HTTP request")

	response := s.core.handleRequest(req)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// handleHealth provides the public health check endpoint
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   serverVersion,
		"database":  "connected",
	}

	if s.core.db != nil {
		if err := s.core.db.Exec("SELECT 1").Error; err != nil {
			health["status"] = "unhealthy"
			health["database"] = "disconnected"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	} else {
		health["database"] = "not configured"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleRoot provides the public API information endpoint
func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	info := map[string]any{
		"message":                 "Leave Manager + HR + Company Management MCP Server",
		"status":                  "running",
		"version":                 serverVersion,
		"authentication_required": s.config.RequireAPIKey,
		"authentication_methods": []string{
			"Authorization: Bearer <api_key>",
			"X-API-Key: <api_key>",
			"api_key query parameter",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// writeAuthError writes an HTTP error response
func (s *HTTPServer) writeAuthError(w http.ResponseWriter, status int, errText, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(map[string]any{
		"error":   errText,
		"message": message,
	})
}

// Start starts the HTTP server and blocks until shutdown
func (s *HTTPServer) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		s.log.Info().Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info().Msg("HTTP server stopped gracefully")
	return nil
}

// Close closes the HTTP server and cleans up resources
func (s *HTTPServer) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
	}

	if s.core != nil {
		return s.core.Close()
	}

	return nil
}
