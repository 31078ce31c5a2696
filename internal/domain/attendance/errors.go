package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("employee has already checked in")
	ErrNotCheckedIn      = errors.New("employee has not checked in yet")
	ErrAlreadyCheckedOut = errors.New("employee has already checked out")
	ErrCheckInRequired   = errors.New("check-in time is required")
	ErrCheckOutRequired  = errors.New("check-out time is required")
	ErrInvalidStatus     = errors.New("invalid attendance status")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
