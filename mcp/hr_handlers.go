package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/hrplus/leavemgr/models"
	"github.com/hrplus/leavemgr/resolve"
)

// textResult wraps plain text in MCP content blocks.
func textResult(text string) any {
	return map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": text,
			},
		},
	}
}

// requireStore guards tool handlers that need a database.
func (s *Server) requireStore() error {
	if s.store == nil {
		return NewMCPError(StoreUnavailable, "No database configured")
	}
	return nil
}

// resolveEmployee runs name resolution and renders the non-resolved outcomes.
// Exactly one of the return values is non-zero.
func (s *Server) resolveEmployee(name, context string) (*models.Employee, string) {
	result := s.resolver.Resolve(name, context)

	switch result.Status {
	case resolve.StatusResolved:
		return result.Employee, ""
	case resolve.StatusAmbiguous:
		return nil, formatAmbiguous(result)
	default:
		return nil, fmt.Sprintf("No employee found matching '%s'.", name)
	}
}

// handleEmployeeDetails renders a full profile: personal info, leave balance,
// recent work, recent leave requests.
func (s *Server) handleEmployeeDetails(params json.RawMessage) (any, error) {
	var args struct {
		Name              string `json:"name"`
		AdditionalContext string `json:"additional_context"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return nil, WrapError(InvalidParams, "Invalid employee details parameters", err)
	}
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	emp, msg := s.resolveEmployee(args.Name, args.AdditionalContext)
	if emp == nil {
		return textResult(msg), nil
	}

	// Secondary fetches are best-effort; the renderer marks missing sections.
	balance, err := s.store.EmployeeLeaveBalance(emp.ID)
	if err != nil {
		balance = nil
	}
	reports, err := s.store.WorkReports(emp.ID, 7, 100)
	if err != nil {
		reports = nil
	}
	leaves, err := s.store.LeaveRequests(emp.ID, 10)
	if err != nil {
		leaves = nil
	}

	return textResult(formatEmployeeDetails(emp, balance, reports, leaves)), nil
}

// handleSearchEmployees lists candidates for a term without resolving to one.
func (s *Server) handleSearchEmployees(params json.RawMessage) (any, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return nil, WrapError(InvalidParams, "Invalid search parameters", err)
	}
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	employees := s.resolver.Search(args.Query)
	if len(employees) == 0 {
		return textResult(fmt.Sprintf("No employees found matching '%s'.", args.Query)), nil
	}

	text := fmt.Sprintf("Found %d employee(s) matching '%s':\n\n%s",
		len(employees), args.Query, formatEmployeeOptions(employees))
	return textResult(text), nil
}

// handleLeaveBalance renders the leave balance breakdown for one employee.
func (s *Server) handleLeaveBalance(params json.RawMessage) (any, error) {
	var args struct {
		Name              string `json:"name"`
		AdditionalContext string `json:"additional_context"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return nil, WrapError(InvalidParams, "Invalid leave balance parameters", err)
	}
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	emp, msg := s.resolveEmployee(args.Name, args.AdditionalContext)
	if emp == nil {
		return textResult(msg), nil
	}

	balance, err := s.store.EmployeeLeaveBalance(emp.ID)
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to compute leave balance", err)
	}

	return textResult(formatLeaveBalance(emp, balance)), nil
}

// handleLeaveHistory renders recent leave requests for one employee.
func (s *Server) handleLeaveHistory(params json.RawMessage) (any, error) {
	var args struct {
		Name              string `json:"name"`
		AdditionalContext string `json:"additional_context"`
		Limit             int    `json:"limit"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return nil, WrapError(InvalidParams, "Invalid leave history parameters", err)
	}
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	emp, msg := s.resolveEmployee(args.Name, args.AdditionalContext)
	if emp == nil {
		return textResult(msg), nil
	}

	leaves, err := s.store.LeaveRequests(emp.ID, args.Limit)
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch leave requests", err)
	}

	return textResult(formatLeaveHistory(emp, leaves)), nil
}

// handleWorkReport renders recent work reports for one employee.
func (s *Server) handleWorkReport(params json.RawMessage) (any, error) {
	var args struct {
		Name              string `json:"name"`
		AdditionalContext string `json:"additional_context"`
		Days              int    `json:"days"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return nil, WrapError(InvalidParams, "Invalid work report parameters", err)
	}
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if args.Days <= 0 {
		args.Days = 30
	}

	emp, msg := s.resolveEmployee(args.Name, args.AdditionalContext)
	if emp == nil {
		return textResult(msg), nil
	}

	reports, err := s.store.WorkReports(emp.ID, args.Days, 100)
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch work reports", err)
	}

	return textResult(formatWorkReports(emp, args.Days, reports)), nil
}

func (s *Server) handleClientList(params json.RawMessage) (any, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	clients, err := s.store.Clients()
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch clients", err)
	}
	return textResult(formatClients(clients)), nil
}

func (s *Server) handleProjectsOverview(params json.RawMessage) (any, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	projects, err := s.store.Projects()
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch projects", err)
	}
	return textResult(formatProjects(projects)), nil
}

func (s *Server) handlePaymentsSummary(params json.RawMessage) (any, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	payments, err := s.store.Payments(100)
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch payments", err)
	}
	return textResult(formatPayments(payments)), nil
}

func (s *Server) handleHolidays(params json.RawMessage) (any, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	holidays, err := s.store.Holidays()
	if err != nil {
		return nil, WrapError(StoreUnavailable, "Failed to fetch holidays", err)
	}
	return textResult(formatHolidays(holidays)), nil
}

// handleGenerateAPIKey mints a new key for the API_KEYS list.
func (s *Server) handleGenerateAPIKey(params json.RawMessage) (any, error) {
	if !s.config.RequireAPIKey {
		return nil, NewMCPError(AuthDisabled,
			"API key authentication is currently disabled",
			"Set LEAVEMGR_REQUIRE_API_KEY=true to enable it")
	}

	key, err := GenerateAPIKey()
	if err != nil {
		return nil, WrapError(InternalError, "Failed to generate API key", err)
	}

	text := "**New API Key Generated**\n\n`" + key + "`\n\n" +
		"Important:\n" +
		"- Save this key securely - it cannot be recovered\n" +
		"- Add it to your LEAVEMGR_API_KEYS environment variable (comma-separated)\n" +
		"- Share only with authorized users"
	return textResult(text), nil
}

// handleAuthStatus reports the authentication configuration.
func (s *Server) handleAuthStatus(params json.RawMessage) (any, error) {
	return textResult(formatAuthStatus(s.config)), nil
}
