package mcp

import (
	"encoding/json"
	"fmt"
)

// serverVersion is reported in the initialize handshake and on the HTTP
// root endpoint.
const serverVersion = "1.0.0"

// handleListTools returns available tools to the client
func (s *Server) handleListTools(req Request) Response {
	return SuccessResponse(req.ID, map[string]any{
		"tools": GetToolDefinitions(),
	})
}

// handleCallTool executes a specific tool
func (s *Server) handleCallTool(req Request) Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return ErrorResponse(req.ID, InvalidParams, "Invalid params structure")
	}

	s.log.Debug().Str("tool", params.Name).Msg("calling tool")

	// Look up tool handler
	s.mu.RLock()
	handler, exists := s.tools[params.Name]
	s.mu.RUnlock()

	if !exists {
		return ErrorResponse(req.ID, MethodNotFound,
			fmt.Sprintf("Tool not found: %s", params.Name))
	}

	// Audit tool usage on the session record
	if s.session != nil && s.db != nil {
		s.session.ToolCalls++
		if err := s.db.Model(s.session).Update("tool_calls", s.session.ToolCalls).Error; err != nil {
			s.log.Debug().Err(err).Msg("failed to update session tool count")
		}
	}

	result, err := handler(params.Arguments)
	if err != nil {
		if mcpErr, ok := err.(*MCPError); ok {
			return ErrorResponseWithData(req.ID, mcpErr.Code, mcpErr.Message, mcpErr.Data)
		}
		return ErrorResponse(req.ID, InternalError, err.Error())
	}

	return SuccessResponse(req.ID, result)
}

// handleInitialize handles the MCP initialization handshake
func (s *Server) handleInitialize(req Request) Response {
	var params struct {
		ProtocolVersion string          `json:"protocolVersion"`
		Capabilities    struct{}        `json:"capabilities"`
		ClientInfo      json.RawMessage `json:"clientInfo"`
	}

	if req.Params != nil {
		json.Unmarshal(req.Params, &params)
		s.log.Debug().
			Str("protocol", params.ProtocolVersion).
			RawJSON("client", nonEmptyJSON(params.ClientInfo)).
			Msg("initialize")

		// Record client info on the audit session
		if s.session != nil && s.db != nil && len(params.ClientInfo) > 0 {
			s.session.ClientInfo = []byte(params.ClientInfo)
			if err := s.db.Model(s.session).Update("client_info", s.session.ClientInfo).Error; err != nil {
				s.log.Debug().Err(err).Msg("failed to record client info")
			}
		}
	}

	return SuccessResponse(req.ID, map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]any{
			"tools": map[string]any{
				"listChanged": true,
			},
			"logging": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "leavemgr",
			"version": serverVersion,
		},
	})
}

// handleInitialized confirms initialization complete
func (s *Server) handleInitialized(req Request) Response {
	// Notifications have no ID and expect no response
	if req.ID == nil {
		return Response{}
	}
	return SuccessResponse(req.ID, map[string]any{})
}

// handlePing responds to keepalive pings
func (s *Server) handlePing(req Request) Response {
	return SuccessResponse(req.ID, map[string]any{})
}

func nonEmptyJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}
