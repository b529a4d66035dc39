package mcp

import (
	"encoding/json"
)

// JSON-RPC protocol constant used by the MCP transport layer.
const JSONRPCVersion = "2.0"

// Request represents a JSON-RPC 2.0 request. A nil ID marks a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response to a request.
type Response struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      any          `json:"id"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// ErrorObject represents a JSON-RPC 2.0 error payload.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// SuccessResponse builds a success response with the provided result payload.
func SuccessResponse(id, result any) Response {
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}
}

// ErrorResponse builds a response containing the supplied error object.
func ErrorResponse(id any, code int, message string, data ...any) Response {
	var extra any
	if len(data) > 0 {
		extra = data[0]
	}
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
			Data:    extra,
		},
	}
}
