package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Soft-deleted rows are never returned.
type AttendanceRepository interface {
	// Create inserts a new OPEN record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Close persists the check-out time and final status of a record
	Close(ctx context.Context, attendance Attendance) error

	// LockEmployee serialises check-in/check-out of one employee for the
	// rest of the current transaction
	LockEmployee(ctx context.Context, employeeID string) error

	// GetOpenSession returns the newest open record filed under one of dates
	GetOpenSession(ctx context.Context, employeeID string, dates []time.Time) (Attendance, error)

	// ListByEmployeesAndDateRange loads every record of the employees within [start, end]
	ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]Attendance, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
