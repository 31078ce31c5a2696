package report

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// WORK HOUR SUMMARY
// ========================================

type WorkHourSummaryRequest struct {
	FacilityID  string `json:"facility_id"`
	TargetMonth string `json:"target_month"` // YYYY-MM
}

func (r *WorkHourSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FacilityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "facility_id",
			Message: "facility_id is required",
		})
	}

	if _, ok := validator.IsValidYearMonth(r.TargetMonth); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "target_month",
			Message: "target_month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkHourSummaryReport struct {
	FacilityID   string               `json:"facility_id"`
	FacilityName string               `json:"facility_name"`
	TargetMonth  string               `json:"target_month"`
	IsSpecial    bool                 `json:"is_special"`
	GeneratedAt  string               `json:"generated_at"`
	Rows         []WorkHourSummaryRow `json:"rows"`
}

// WorkHourSummaryRow is one employee's totals over their own pay period.
// Hour values are rounded to two decimals.
type WorkHourSummaryRow struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeCode    string  `json:"employee_code"`
	EmployeeName    string  `json:"employee_name"`
	FacilityID      string  `json:"facility_id"`
	FacilityName    string  `json:"facility_name"`
	Category        string  `json:"category"`
	SalaryType      string  `json:"salary_type"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	TotalHours      float64 `json:"total_hours"`
	HolidayHours    float64 `json:"holiday_hours"`
	WeekdayHours    float64 `json:"weekday_hours"`
	EarlyHours      float64 `json:"early_hours"`
	LateHours       float64 `json:"late_hours"`
	DayHours        float64 `json:"day_hours"`
	TotalWorkedDays int     `json:"total_worked_days"`
	NightShiftCount int     `json:"night_shift_count"`
	NightShiftHours float64 `json:"night_shift_hours"`
}
