package mcp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hrplus/leavemgr/models"
	"github.com/hrplus/leavemgr/resolve"
	"github.com/hrplus/leavemgr/store"
)

// Rendering helpers for tool responses. Candidate ordering produced by the
// resolver is preserved everywhere.

const dateLayout = "2006-01-02"

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// formatEmployeeOptions renders a numbered candidate list with the fields
// useful for disambiguation.
func formatEmployeeOptions(employees []models.Employee) string {
	var b strings.Builder
	for i, emp := range employees {
		fmt.Fprintf(&b, "%d. %s", i+1, orNA(emp.Name))
		if emp.Designation != "" {
			fmt.Fprintf(&b, " | %s", emp.Designation)
		}
		if emp.Email != "" {
			fmt.Fprintf(&b, " | %s", emp.Email)
		}
		if emp.EmpNumber != "" {
			fmt.Fprintf(&b, " | #%s", emp.EmpNumber)
		}
		if emp.Mobile != "" {
			fmt.Fprintf(&b, " | %s", emp.Mobile)
		}
		fmt.Fprintf(&b, " | %s\n", statusLabel(emp.Active))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatAmbiguous renders an ambiguous resolution with guidance.
func formatAmbiguous(result resolve.Result) string {
	return result.Message + "\n\n" +
		formatEmployeeOptions(result.Employees) + "\n\n" +
		"Tip: you can specify by:\n" +
		"- Designation (e.g. 'Developer')\n" +
		"- Email\n" +
		"- Employee number"
}

// formatEmployeeDetails renders the full profile section by section. Sections
// whose data could not be fetched are marked unavailable rather than omitted.
func formatEmployeeDetails(emp *models.Employee, balance *store.LeaveBalance, reports []store.WorkReportRow, leaves []models.LeaveRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Employee Details**\n\n")
	fmt.Fprintf(&b, "**%s**\n", emp.Name)
	fmt.Fprintf(&b, "Employee ID: %d | Employee #: %s\n", emp.ID, orNA(emp.EmpNumber))
	fmt.Fprintf(&b, "Designation: %s\n", orNA(emp.Designation))
	fmt.Fprintf(&b, "Email: %s\n", orNA(emp.Email))
	fmt.Fprintf(&b, "Mobile: %s\n", orNA(emp.Mobile))
	fmt.Fprintf(&b, "Blood Group: %s\n", orNA(emp.BloodGroup))
	if emp.JoinedAt != nil {
		fmt.Fprintf(&b, "Date of Joining: %s\n", emp.JoinedAt.Format(dateLayout))
	} else {
		fmt.Fprintf(&b, "Date of Joining: N/A\n")
	}
	fmt.Fprintf(&b, "Status: %s\n\n", statusLabel(emp.Active))

	if balance != nil {
		fmt.Fprintf(&b, "**Leave Balance:** %.1f days\n", balance.CurrentBalance)
		fmt.Fprintf(&b, "- Opening Balance: %.1f\n", balance.OpeningBalance)
		fmt.Fprintf(&b, "- Leaves Used: %.1f days\n\n", balance.UsedLeaves)
	} else {
		fmt.Fprintf(&b, "Leave Balance: Data not available\n\n")
	}

	if len(reports) > 0 {
		fmt.Fprintf(&b, "**Recent Work (Last 7 days):**\n")
		for i, report := range reports {
			if i == 3 {
				break
			}
			task := report.Task
			if runes := []rune(task); len(runes) > 60 {
				task = string(runes[:60]) + "..."
			}
			hours := float64(report.TotalTime) / 3600
			fmt.Fprintf(&b, "- %s: %s (%.1fh)\n", report.Date.Format(dateLayout), task, hours)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(leaves) > 0 {
		fmt.Fprintf(&b, "**Recent Leave Requests:**\n")
		for i, leave := range leaves {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s (%s)\n",
				leave.DateOfLeave.Format(dateLayout), leave.LeaveType, leave.Status)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatLeaveBalance(emp *models.Employee, balance *store.LeaveBalance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Leave Balance for %s**\n\n", emp.Name)
	fmt.Fprintf(&b, "Current Balance: %.1f days\n", balance.CurrentBalance)
	fmt.Fprintf(&b, "Opening Balance: %.1f days\n", balance.OpeningBalance)
	fmt.Fprintf(&b, "Leaves Used: %.1f days\n", balance.UsedLeaves)
	if len(balance.ByType) > 0 {
		fmt.Fprintf(&b, "\nApproved leaves by type:\n")
		for _, c := range balance.ByType {
			fmt.Fprintf(&b, "- %s: %d\n", c.LeaveType, c.Count)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatLeaveHistory(emp *models.Employee, leaves []models.LeaveRequest) string {
	if len(leaves) == 0 {
		return fmt.Sprintf("No leave requests found for %s.", emp.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Leave Requests for %s**\n\n", emp.Name)
	for _, leave := range leaves {
		fmt.Fprintf(&b, "- %s: %s | %s", leave.DateOfLeave.Format(dateLayout), leave.LeaveType, leave.Status)
		if leave.EmployeeComments != "" {
			fmt.Fprintf(&b, " (%s)", leave.EmployeeComments)
		}
		fmt.Fprintf(&b, "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatWorkReports(emp *models.Employee, days int, reports []store.WorkReportRow) string {
	if len(reports) == 0 {
		return fmt.Sprintf("No work reports found for %s in the last %d days.", emp.Name, days)
	}
	var b strings.Builder
	totalHours := 0.0
	fmt.Fprintf(&b, "**Work Reports for %s (last %d days)**\n\n", emp.Name, days)
	for _, report := range reports {
		hours := float64(report.TotalTime) / 3600
		totalHours += hours
		fmt.Fprintf(&b, "- %s: %s (%.1fh)", report.Date.Format(dateLayout), report.Task, hours)
		if report.ProjectName != "" {
			fmt.Fprintf(&b, " | Project: %s", report.ProjectName)
		}
		if report.ClientName != "" {
			fmt.Fprintf(&b, " | Client: %s", report.ClientName)
		}
		fmt.Fprintf(&b, "\n")
	}
	fmt.Fprintf(&b, "\nTotal: %.1f hours across %d reports", totalHours, len(reports))
	return b.String()
}

func formatClients(clients []models.Client) string {
	if len(clients) == 0 {
		return "No clients found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Clients (%d)**\n\n", len(clients))
	for i, client := range clients {
		fmt.Fprintf(&b, "%d. %s", i+1, client.Name)
		if client.Country != "" {
			fmt.Fprintf(&b, " | %s", client.Country)
		}
		if client.Email != "" {
			fmt.Fprintf(&b, " | %s", client.Email)
		}
		fmt.Fprintf(&b, "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatProjects(projects []models.Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Projects (%d)**\n\n", len(projects))
	for i, project := range projects {
		fmt.Fprintf(&b, "%d. %s | %s", i+1, project.Title, project.Status)
		if project.Client != nil {
			fmt.Fprintf(&b, " | Client: %s", project.Client.Name)
		}
		fmt.Fprintf(&b, "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPayments(payments []models.Payment) string {
	if len(payments) == 0 {
		return "No payments found."
	}
	var b strings.Builder
	totals := make(map[string]float64)
	fmt.Fprintf(&b, "**Recent Payments (%d)**\n\n", len(payments))
	for _, payment := range payments {
		totals[payment.Currency] += payment.Amount
		fmt.Fprintf(&b, "- %s: %.2f %s", payment.PaidOn.Format(dateLayout), payment.Amount, payment.Currency)
		if payment.Client != nil {
			fmt.Fprintf(&b, " | %s", payment.Client.Name)
		}
		if payment.Project != nil {
			fmt.Fprintf(&b, " | %s", payment.Project.Title)
		}
		if payment.Mode != "" {
			fmt.Fprintf(&b, " | %s", payment.Mode)
		}
		fmt.Fprintf(&b, "\n")
	}
	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	fmt.Fprintf(&b, "\nTotals:")
	for _, currency := range currencies {
		fmt.Fprintf(&b, " %.2f %s", totals[currency], currency)
	}
	return b.String()
}

func formatHolidays(holidays []models.Holiday) string {
	if len(holidays) == 0 {
		return "No holidays found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Holidays (%d)**\n\n", len(holidays))
	for _, holiday := range holidays {
		fmt.Fprintf(&b, "- %s: %s\n", holiday.Date.Format(dateLayout), holiday.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatAuthStatus(config Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Authentication Status**\n\n")
	if config.RequireAPIKey {
		fmt.Fprintf(&b, "API Key Required: Yes\n")
		fmt.Fprintf(&b, "Configured API Keys: %d\n", len(config.APIKeys))
		if len(config.APIKeys) == 0 {
			fmt.Fprintf(&b, "Warning: no API keys configured but authentication is required!\n")
		}
	} else {
		fmt.Fprintf(&b, "API Key Required: No\n")
	}
	fmt.Fprintf(&b, "\n**Usage:**\n")
	fmt.Fprintf(&b, "- Header: `Authorization: Bearer <api_key>`\n")
	fmt.Fprintf(&b, "- Header: `X-API-Key: <api_key>`\n")
	fmt.Fprintf(&b, "- Query: `?api_key=<api_key>`")
	return b.String()
}
