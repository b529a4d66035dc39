package mcp

import "fmt"

// Error codes following JSON-RPC 2.0 standard and custom domain errors
const (
	// JSON-RPC 2.0 standard error codes
	ParseError     = -32700 // Invalid JSON was received
	InvalidRequest = -32600 // The JSON sent is not a valid Request object
	MethodNotFound = -32601 // The method does not exist
	InvalidParams  = -32602 // Invalid method parameters
	InternalError  = -32603 // Internal JSON-RPC error

	// Custom domain error codes (10xxx range)
	StoreUnavailable = 10001 // Database query failed or no database configured
	AuthDisabled     = 10002 // API key operation while auth is disabled
)

// MCPError represents a structured error for the MCP protocol
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface
func (e *MCPError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// NewMCPError creates a new MCP error with optional data
func NewMCPError(code int, message string, data ...any) *MCPError {
	err := &MCPError{
		Code:    code,
		Message: message,
	}
	if len(data) > 0 {
		err.Data = data[0]
	}
	return err
}

// WrapError wraps a regular error into an MCP error
func WrapError(code int, message string, err error) *MCPError {
	if err == nil {
		return NewMCPError(code, message)
	}
	return NewMCPError(code, message, err.Error())
}

// ErrorResponseWithData creates a JSON-RPC error response with additional data
func ErrorResponseWithData(id any, code int, message string, data any) Response {
	resp := ErrorResponse(id, code, message)
	if resp.Error != nil {
		resp.Error.Data = data
	}
	return resp
}
