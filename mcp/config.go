package mcp

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hrplus/leavemgr/match"
	"github.com/hrplus/leavemgr/resolve"
)

// Config holds the MCP server configuration
type Config struct {
	// Database
	DatabaseURL string

	// API key authentication (HTTP transport)
	RequireAPIKey bool
	APIKeys       []string

	// HTTP transport
	Host       string
	Port       int
	CORSOrigin string

	// Fuzzy resolution
	FuzzyThreshold float64
	MaxMatches     int

	// Debug
	Debug bool

	// LogWriter receives structured logs; defaults to os.Stderr so the
	// stdio transport stays clean.
	LogWriter io.Writer
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		DatabaseURL:    "leavemgr.db",
		RequireAPIKey:  true,
		Host:           "0.0.0.0",
		Port:           8080,
		CORSOrigin:     "*",
		FuzzyThreshold: match.DefaultThreshold,
		MaxMatches:     resolve.DefaultMaxMatches,
		Debug:          false,
	}
}

// LoadConfig builds a config from environment variables on top of the
// defaults. The CLI loads .env beforehand via godotenv.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if dsn := os.Getenv("LEAVEMGR_DB_DSN"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if v := os.Getenv("LEAVEMGR_REQUIRE_API_KEY"); v != "" {
		cfg.RequireAPIKey = strings.EqualFold(v, "true")
	}
	if keys := os.Getenv("LEAVEMGR_API_KEYS"); keys != "" {
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}
	if host := os.Getenv("LEAVEMGR_HOST"); host != "" {
		cfg.Host = host
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if origin := os.Getenv("LEAVEMGR_CORS_ORIGIN"); origin != "" {
		cfg.CORSOrigin = origin
	}
	if v := os.Getenv("LEAVEMGR_FUZZY_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil && threshold > 0 && threshold <= 1 {
			cfg.FuzzyThreshold = threshold
		}
	}
	if v := os.Getenv("LEAVEMGR_MAX_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxMatches = n
		}
	}
	if v := os.Getenv("LEAVEMGR_DEBUG"); v != "" {
		cfg.Debug = strings.EqualFold(v, "true")
	}

	return cfg
}

// HasAPIKey reports whether key is one of the configured keys.
func (c Config) HasAPIKey(key string) bool {
	for _, k := range c.APIKeys {
		if k == key {
			return true
		}
	}
	return false
}
