package models

import (
	"time"

	"gorm.io/datatypes"
)

// Leave types as stored on LeaveRequest. Weights for balance math live in the
// store package.
const (
	LeaveFullDay      = "FULL DAY"
	LeaveHalfDay      = "HALF DAY"
	LeaveTwoHours     = "2 HRS"
	LeaveCompHalfDay  = "COMPENSATION HALF DAY"
	LeaveCompTwoHours = "COMPENSATION 2 HRS"
)

// Leave request statuses.
const (
	LeaveStatusRequested = "Requested"
	LeaveStatusApproved  = "Approved"
	LeaveStatusRejected  = "Rejected"
)

// Employee is the HR record that name resolution runs against.
type Employee struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null;index"`

	// Descriptive fields, all optional in practice
	Designation string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(255);index"`
	Mobile      string `gorm:"type:varchar(20)"`
	EmpNumber   string `gorm:"type:varchar(50);index"`
	BloodGroup  string `gorm:"type:varchar(10)"`

	Active   bool `gorm:"default:true;index"`
	JoinedAt *time.Time

	// Leave accounting
	OpeningLeaveBalance float64 `gorm:"default:0"`

	// Provident fund enrollment
	PFEnabled  bool `gorm:"default:false"`
	PFJoinedAt *time.Time

	UserID *uint
	User   *User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// User is the login account linked to an employee.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"type:varchar(100);uniqueIndex;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// LeaveRequest is one requested day (or fraction) of leave.
type LeaveRequest struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null"`

	LeaveType   string    `gorm:"type:varchar(50);not null"`
	DateOfLeave time.Time `gorm:"index;not null"`
	Status      string    `gorm:"type:varchar(20);default:'Requested';index"`

	EmployeeComments string `gorm:"type:text"`
	AdminComments    string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`

	Employee Employee `gorm:"foreignKey:EmployeeID"`
}

// WorkReport is a daily time entry against a project.
type WorkReport struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null"`
	ProjectID  *uint
	ClientID   *uint

	Task        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"index;not null"`
	TotalTime   int       `gorm:"default:0"` // seconds

	Employee Employee `gorm:"foreignKey:EmployeeID"`
	Project  *Project `gorm:"foreignKey:ProjectID"`
	Client   *Client  `gorm:"foreignKey:ClientID"`
}

// Project groups work reports and payments under a client.
type Project struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"type:varchar(255);not null"`
	Status   string `gorm:"type:varchar(50);default:'Active';index"`
	ClientID *uint

	StartedAt *time.Time
	Client    *Client `gorm:"foreignKey:ClientID"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Client is a billing counterparty.
type Client struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(255);not null;index"`
	Email   string `gorm:"type:varchar(255)"`
	Country string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Payment is money received against a project.
type Payment struct {
	ID        uint `gorm:"primaryKey"`
	ClientID  *uint
	ProjectID *uint

	Amount   float64   `gorm:"not null"`
	Currency string    `gorm:"type:varchar(10);default:'USD'"`
	PaidOn   time.Time `gorm:"index"`
	Mode     string    `gorm:"type:varchar(50)"`
	Notes    string    `gorm:"type:text"`

	Client  *Client  `gorm:"foreignKey:ClientID"`
	Project *Project `gorm:"foreignKey:ProjectID"`
}

// Holiday is a company-wide non-working day.
type Holiday struct {
	ID   uint      `gorm:"primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Date time.Time `gorm:"index;not null"`
}

// Session records one server session for auditing tool usage.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(20)"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	// Statistics
	ToolCalls int `gorm:"default:0"`

	// Client info from the MCP initialize handshake. No type override so
	// datatypes.JSON maps to the dialect's JSON column type.
	ClientInfo datatypes.JSON
}

// TableName customizations for cleaner names
func (Employee) TableName() string     { return "employees" }
func (User) TableName() string         { return "users" }
func (LeaveRequest) TableName() string { return "leave_requests" }
func (WorkReport) TableName() string   { return "work_reports" }
func (Project) TableName() string      { return "projects" }
func (Client) TableName() string       { return "clients" }
func (Payment) TableName() string      { return "payments" }
func (Holiday) TableName() string      { return "holidays" }
func (Session) TableName() string      { return "sessions" }
