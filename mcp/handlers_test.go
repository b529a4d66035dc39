package mcp

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrplus/leavemgr/models"
)

// newTestServer builds a server without a database connection.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DatabaseURL = "skip"
	cfg.LogWriter = io.Discard
	server, err := NewServer(cfg)
	require.NoError(t, err)
	return server
}

// newTestServerWithDB builds a server backed by an in-memory database.
func newTestServerWithDB(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DatabaseURL = ":memory:"
	cfg.LogWriter = io.Discard
	server, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { server.Close() })
	return server
}

func callToolRequest(t *testing.T, id any, tool string, args any) Request {
	t.Helper()
	rawArgs, err := json.Marshal(args)
	require.NoError(t, err)
	params, err := json.Marshal(map[string]any{
		"name":      tool,
		"arguments": json.RawMessage(rawArgs),
	})
	require.NoError(t, err)
	return Request{JSONRPC: JSONRPCVersion, ID: id, Method: "tools/call", Params: params}
}

// resultText extracts the text from an MCP content-block result.
func resultText(t *testing.T, resp Response) string {
	t.Helper()
	require.Nil(t, resp.Error, "expected success response")
	result, ok := resp.Result.(map[string]any)
	require.True(t, ok, "result should be a map")
	blocks, ok := result["content"].([]map[string]any)
	require.True(t, ok, "content should be a block slice")
	require.NotEmpty(t, blocks)
	text, _ := blocks[0]["text"].(string)
	return text
}

func TestHandleInitialize(t *testing.T) {
	server := newTestServer(t)

	params, _ := json.Marshal(map[string]any{
		"protocolVersion": "2024-11-05",
		"clientInfo":      map[string]any{"name": "test-client", "version": "0.1"},
	})
	resp := server.handleRequest(Request{
		JSONRPC: JSONRPCVersion, ID: 1, Method: "initialize", Params: params,
	})

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]any)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "leavemgr", info["name"])
	assert.Equal(t, serverVersion, info["version"])
}

func TestHandleListTools(t *testing.T) {
	server := newTestServer(t)

	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 2, Method: "tools/list"})

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]any)
	tools := result["tools"].([]ToolDefinition)
	assert.Len(t, tools, len(GetToolDefinitions()))

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"get_employee_details", "search_employees", "get_leave_balance",
		"get_leave_history", "get_work_report", "get_client_list",
		"get_projects_overview", "get_payments_summary", "get_holidays",
		"generate_api_key", "check_auth_status",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestHandlePing(t *testing.T) {
	server := newTestServer(t)
	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 3, Method: "ping"})
	require.Nil(t, resp.Error)
}

func TestHandleMethodNotFound(t *testing.T) {
	server := newTestServer(t)
	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, ID: 4, Method: "no/such/method"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFound, resp.Error.Code)
}

func TestHandleCallUnknownTool(t *testing.T) {
	server := newTestServer(t)
	resp := server.handleRequest(callToolRequest(t, 5, "does_not_exist", map[string]any{}))
	require.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "does_not_exist")
}

func TestCallToolWithoutDatabase(t *testing.T) {
	server := newTestServer(t)
	resp := server.handleRequest(callToolRequest(t, 6, "get_leave_balance", map[string]any{
		"name": "Alice",
	}))
	require.NotNil(t, resp.Error)
	assert.Equal(t, StoreUnavailable, resp.Error.Code)
}

func TestCheckAuthStatusWithoutDatabase(t *testing.T) {
	server := newTestServer(t)
	server.config.APIKeys = []string{"k1", "k2"}

	resp := server.handleRequest(callToolRequest(t, 7, "check_auth_status", map[string]any{}))

	text := resultText(t, resp)
	assert.Contains(t, text, "API Key Required: Yes")
	assert.Contains(t, text, "Configured API Keys: 2")
}

func TestGenerateAPIKeyTool(t *testing.T) {
	server := newTestServer(t)

	resp := server.handleRequest(callToolRequest(t, 8, "generate_api_key", map[string]any{}))

	text := resultText(t, resp)
	assert.Contains(t, text, "New API Key Generated")
	assert.Contains(t, text, "LEAVEMGR_API_KEYS")
}

func TestGenerateAPIKeyToolAuthDisabled(t *testing.T) {
	server := newTestServer(t)
	server.config.RequireAPIKey = false

	resp := server.handleRequest(callToolRequest(t, 9, "generate_api_key", map[string]any{}))

	require.NotNil(t, resp.Error)
	assert.Equal(t, AuthDisabled, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "disabled")
	assert.Contains(t, resp.Error.Data, "LEAVEMGR_REQUIRE_API_KEY")
}

func TestEmployeeToolsEndToEnd(t *testing.T) {
	server := newTestServerWithDB(t)

	joined := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	employees := []models.Employee{
		{Name: "Alice Thomas", Designation: "Engineer", Email: "alice@corp.test",
			EmpNumber: "E001", Active: true, JoinedAt: &joined, OpeningLeaveBalance: 12},
		{Name: "Bob Mathew", Designation: "Designer", Email: "bob@corp.test",
			EmpNumber: "E002", Active: true, OpeningLeaveBalance: 10},
	}
	require.NoError(t, server.db.Create(&employees).Error)

	t.Run("leave balance resolves by name", func(t *testing.T) {
		resp := server.handleRequest(callToolRequest(t, 10, "get_leave_balance", map[string]any{
			"name": "Alice Thomas",
		}))
		text := resultText(t, resp)
		assert.Contains(t, text, "Alice Thomas")
		assert.Contains(t, text, "12")
	})

	t.Run("fuzzy name still resolves", func(t *testing.T) {
		resp := server.handleRequest(callToolRequest(t, 11, "get_leave_balance", map[string]any{
			"name": "Alise Thomas",
		}))
		text := resultText(t, resp)
		assert.Contains(t, text, "Alice Thomas")
	})

	t.Run("unknown employee reported as text", func(t *testing.T) {
		resp := server.handleRequest(callToolRequest(t, 12, "get_employee_details", map[string]any{
			"name": "Zzzz Qqqq",
		}))
		text := resultText(t, resp)
		assert.Contains(t, text, "No employee")
	})

	t.Run("search lists candidates", func(t *testing.T) {
		resp := server.handleRequest(callToolRequest(t, 13, "search_employees", map[string]any{
			"query": "corp.test",
		}))
		text := resultText(t, resp)
		assert.Contains(t, text, "Alice Thomas")
		assert.Contains(t, text, "Bob Mathew")
	})

	t.Run("tool calls audited on session", func(t *testing.T) {
		require.NotNil(t, server.session)
		var session models.Session
		require.NoError(t, server.db.First(&session, "id = ?", server.session.ID).Error)
		assert.Greater(t, session.ToolCalls, 0)
	})
}

func TestHandleInitializedNotification(t *testing.T) {
	server := newTestServer(t)
	resp := server.handleRequest(Request{JSONRPC: JSONRPCVersion, Method: "notifications/initialized"})
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Result)
}
