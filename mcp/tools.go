package mcp

// ToolDefinition describes a tool for the client
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// nameArgs is the shared schema for tools that resolve an employee by name.
func nameArgs(extra map[string]any) map[string]any {
	props := map[string]any{
		"name": map[string]any{
			"type":        "string",
			"description": "Employee name (fuzzy matching is applied when no exact match exists)",
		},
		"additional_context": map[string]any{
			"type":        "string",
			"description": "Disambiguating text: designation, email, or employee number",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"name"},
	}
}

// noArgs is the schema for tools that take no arguments.
func noArgs() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

// GetToolDefinitions returns all available tool definitions
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_employee_details",
			Description: "Get comprehensive details for an employee including personal info, leave balance, and recent activity",
			InputSchema: nameArgs(nil),
		},
		{
			Name:        "search_employees",
			Description: "Search employees by name, email, mobile, or employee number with fuzzy fallback",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search text",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "get_leave_balance",
			Description: "Get the current leave balance for an employee",
			InputSchema: nameArgs(nil),
		},
		{
			Name:        "get_leave_history",
			Description: "Get recent leave requests for an employee",
			InputSchema: nameArgs(map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of requests to return (default 10)",
				},
			}),
		},
		{
			Name:        "get_work_report",
			Description: "Get recent work reports for an employee",
			InputSchema: nameArgs(map[string]any{
				"days": map[string]any{
					"type":        "integer",
					"description": "How many days back to look (default 30)",
				},
			}),
		},
		{
			Name:        "get_client_list",
			Description: "List all clients",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_projects_overview",
			Description: "List projects with their clients and status",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_payments_summary",
			Description: "Summarize recent payments received",
			InputSchema: noArgs(),
		},
		{
			Name:        "get_holidays",
			Description: "Show the company holiday calendar",
			InputSchema: noArgs(),
		},
		{
			Name:        "generate_api_key",
			Description: "Generate a new secure API key for authentication",
			InputSchema: noArgs(),
		},
		{
			Name:        "check_auth_status",
			Description: "Check current authentication configuration",
			InputSchema: noArgs(),
		},
	}
}

// registerBuiltinTools registers all built-in tool handlers
func (s *Server) registerBuiltinTools() {
	// Employee tools
	s.RegisterTool("get_employee_details", s.handleEmployeeDetails)
	s.RegisterTool("search_employees", s.handleSearchEmployees)
	s.RegisterTool("get_leave_balance", s.handleLeaveBalance)
	s.RegisterTool("get_leave_history", s.handleLeaveHistory)
	s.RegisterTool("get_work_report", s.handleWorkReport)

	// Company tools
	s.RegisterTool("get_client_list", s.handleClientList)
	s.RegisterTool("get_projects_overview", s.handleProjectsOverview)
	s.RegisterTool("get_payments_summary", s.handlePaymentsSummary)
	s.RegisterTool("get_holidays", s.handleHolidays)

	// Auth tools
	s.RegisterTool("generate_api_key", s.handleGenerateAPIKey)
	s.RegisterTool("check_auth_status", s.handleAuthStatus)
}
