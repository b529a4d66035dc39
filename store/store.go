// Package store implements the relational queries behind the HR tools. All
// operations are read-only. Failures are logged here with the query name so
// store outages are distinguishable from genuinely empty results.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hrplus/leavemgr/models"
)

// Store wraps the database handle for HR queries.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New creates a store over an open database handle.
func New(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, log: logger}
}

// FindBySubstring returns employees whose name, email, mobile, or employee
// number contains term, ordered by name. Matching is case-insensitive under
// the default collations of every supported dialect.
func (s *Store) FindBySubstring(term string) ([]models.Employee, error) {
	like := "%" + term + "%"
	var employees []models.Employee
	err := s.db.
		Where("name LIKE ? OR email LIKE ? OR mobile LIKE ? OR emp_number LIKE ?",
			like, like, like, like).
		Order("name").
		Find(&employees).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "FindBySubstring").Msg("employee search failed")
		return nil, fmt.Errorf("find employees by substring: %w", err)
	}
	return employees, nil
}

// FindAllActive returns every active employee.
func (s *Store) FindAllActive() ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.Where("active = ?", true).Find(&employees).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "FindAllActive").Msg("active employee fetch failed")
		return nil, fmt.Errorf("find active employees: %w", err)
	}
	return employees, nil
}

// GetEmployee fetches a single employee by ID, with the linked user account.
func (s *Store) GetEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Preload("User").First(&employee, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Error().Err(err).Str("query", "GetEmployee").Uint("id", id).Msg("employee fetch failed")
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return &employee, nil
}

// LeaveTypeCount is the per-type tally of approved leave requests.
type LeaveTypeCount struct {
	LeaveType string
	Count     int64
}

// LeaveBalance is the computed leave position of one employee.
type LeaveBalance struct {
	OpeningBalance float64
	UsedLeaves     float64
	CurrentBalance float64
	ByType         []LeaveTypeCount
}

// leaveWeight maps a leave type to the fraction of a day it consumes.
// Unknown types count as a full day.
func leaveWeight(leaveType string) float64 {
	switch strings.ToUpper(leaveType) {
	case models.LeaveFullDay:
		return 1
	case models.LeaveHalfDay, models.LeaveCompHalfDay:
		return 0.5
	case models.LeaveTwoHours, models.LeaveCompTwoHours:
		return 0.25
	default:
		return 1
	}
}

// EmployeeLeaveBalance computes opening balance minus weighted approved leave.
func (s *Store) EmployeeLeaveBalance(employeeID uint) (*LeaveBalance, error) {
	var employee models.Employee
	if err := s.db.First(&employee, employeeID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Error().Err(err).Str("query", "EmployeeLeaveBalance").Uint("id", employeeID).Msg("employee fetch failed")
		}
		return nil, fmt.Errorf("leave balance for employee %d: %w", employeeID, err)
	}

	var counts []LeaveTypeCount
	err := s.db.Model(&models.LeaveRequest{}).
		Select("leave_type, COUNT(*) AS count").
		Where("employee_id = ? AND status = ?", employeeID, models.LeaveStatusApproved).
		Group("leave_type").
		Scan(&counts).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "EmployeeLeaveBalance").Uint("id", employeeID).Msg("leave count failed")
		return nil, fmt.Errorf("leave counts for employee %d: %w", employeeID, err)
	}

	used := 0.0
	for _, c := range counts {
		used += leaveWeight(c.LeaveType) * float64(c.Count)
	}

	return &LeaveBalance{
		OpeningBalance: employee.OpeningLeaveBalance,
		UsedLeaves:     used,
		CurrentBalance: employee.OpeningLeaveBalance - used,
		ByType:         counts,
	}, nil
}

// WorkReportRow is one work report joined with project and client names.
type WorkReportRow struct {
	Task        string
	Description string
	Date        time.Time
	TotalTime   int
	ProjectName string
	ClientName  string
}

// WorkReports returns reports from the last `days` days, newest first.
func (s *Store) WorkReports(employeeID uint, days, limit int) ([]WorkReportRow, error) {
	if limit <= 0 {
		limit = 100
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []WorkReportRow
	err := s.db.Model(&models.WorkReport{}).
		Select("work_reports.task, work_reports.description, work_reports.date, work_reports.total_time, "+
			"projects.title AS project_name, clients.name AS client_name").
		Joins("LEFT JOIN projects ON work_reports.project_id = projects.id").
		Joins("LEFT JOIN clients ON work_reports.client_id = clients.id").
		Where("work_reports.employee_id = ? AND work_reports.date >= ?", employeeID, since).
		Order("work_reports.date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "WorkReports").Uint("id", employeeID).Msg("work report fetch failed")
		return nil, fmt.Errorf("work reports for employee %d: %w", employeeID, err)
	}
	return rows, nil
}

// LeaveRequests returns an employee's leave requests, newest leave date first.
func (s *Store) LeaveRequests(employeeID uint, limit int) ([]models.LeaveRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	var requests []models.LeaveRequest
	err := s.db.
		Where("employee_id = ?", employeeID).
		Order("date_of_leave DESC").
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "LeaveRequests").Uint("id", employeeID).Msg("leave request fetch failed")
		return nil, fmt.Errorf("leave requests for employee %d: %w", employeeID, err)
	}
	return requests, nil
}

// Clients returns all clients ordered by name.
func (s *Store) Clients() ([]models.Client, error) {
	var clients []models.Client
	err := s.db.Order("name").Find(&clients).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "Clients").Msg("client fetch failed")
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Projects returns all projects with their clients, ordered by title.
func (s *Store) Projects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Preload("Client").Order("title").Find(&projects).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "Projects").Msg("project fetch failed")
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Payments returns recent payments with client and project, newest first.
func (s *Store) Payments(limit int) ([]models.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	var payments []models.Payment
	err := s.db.Preload("Client").Preload("Project").
		Order("paid_on DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "Payments").Msg("payment fetch failed")
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Holidays returns the holiday calendar in date order.
func (s *Store) Holidays() ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := s.db.Order("date").Find(&holidays).Error
	if err != nil {
		s.log.Error().Err(err).Str("query", "Holidays").Msg("holiday fetch failed")
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}
