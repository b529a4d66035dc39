package mcp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// generateSessionID creates a unique session identifier
func generateSessionID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("ses_%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("ses_%s", hex.EncodeToString(bytes))
}

// GenerateAPIKey creates a 64-character hex API key.
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
