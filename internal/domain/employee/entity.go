package employee

import (
	"time"
)

type Employee struct {
	ID           string
	EmployeeCode string
	LastName     string
	FirstName    string
	FacilityID   string
	CompanyID    string
	Category     *string
	SalaryType   SalaryType
	CutoffType   CutoffType
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	FacilityName *string
}

// FullName returns "last first", the order used on timesheets.
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	return e.LastName + " " + e.FirstName
}

type SalaryType string

const (
	SalaryTypeHourly  SalaryType = "hourly"
	SalaryTypeMonthly SalaryType = "monthly"
)

// CutoffType is the day of month a pay period closes on.
type CutoffType string

const (
	CutoffType10 CutoffType = "10"
	CutoffType20 CutoffType = "20"
)
