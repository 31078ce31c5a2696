package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		writeError(w, http.StatusConflict, "CONFLICT", "Employee has already checked in", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		writeError(w, http.StatusConflict, "CONFLICT", "Employee has already checked out", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		writeError(w, http.StatusConflict, "CONFLICT", "Employee has not checked in yet", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Attendance record not found", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Employee not found", nil)
	case errors.Is(err, employee.ErrEmployeeInactive):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Employee is not active", nil)
	case errors.Is(err, employee.ErrFacilityIDMissing):
		BadRequest(w, "facility_id is required", nil)

	// Company domain errors
	case errors.Is(err, company.ErrFacilityNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Facility not found", nil)
	case errors.Is(err, company.ErrCompanyNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Company not found", nil)

	// Time computation errors
	case errors.Is(err, worktime.ErrInvalidTargetMonth):
		BadRequest(w, "target_month must be in YYYY-MM format", nil)
	case errors.Is(err, clock.ErrInvalidClock):
		BadRequest(w, err.Error(), nil)

	// Report errors
	case errors.Is(err, report.ErrExportFailed):
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to export report", nil)

	// Default
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
	}
}
