package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a record for the employee
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the employee's open record found in the session window
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
