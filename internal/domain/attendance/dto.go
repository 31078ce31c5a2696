package attendance

import (
	"strings"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID        string  `json:"employee_id"`
	ScheduledCheckIn  *string `json:"scheduled_check_in,omitempty"`  // HH:MM
	ScheduledCheckOut *string `json:"scheduled_check_out,omitempty"` // HH:MM
	BreakTime         *string `json:"break_time,omitempty"`          // HH:MM duration
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.ScheduledCheckIn != nil && !validator.IsValidClock(*r.ScheduledCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_check_in",
			Message: "scheduled_check_in must be in HH:MM format",
		})
	}

	if r.ScheduledCheckOut != nil && !validator.IsValidClock(*r.ScheduledCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_check_out",
			Message: "scheduled_check_out must be in HH:MM format",
		})
	}

	if r.BreakTime != nil && !validator.IsValidDuration(*r.BreakTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_time",
			Message: "break_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      string  `json:"employee_name,omitempty"`
	Date              string  `json:"date"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	ScheduledCheckIn  *string `json:"scheduled_check_in,omitempty"`
	ScheduledCheckOut *string `json:"scheduled_check_out,omitempty"`
	BreakTime         *string `json:"break_time,omitempty"`
	IsNightShift      bool    `json:"is_night_shift"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at,omitempty"`
	UpdatedAt         string  `json:"updated_at,omitempty"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	FacilityID *string `json:"facility_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, check_in, check_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, early-leave, absent",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "check_in", "check_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, check_in, check_out, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
