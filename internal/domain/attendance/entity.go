package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early-leave"
	StatusAbsent     Status = "absent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusEarlyLeave, StatusAbsent:
		return true
	}
	return false
}

// Attendance is one check-in/check-out pair filed under a business date.
// Clock fields hold wall-clock strings ("HH:MM:SS") in the facility timezone.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	CheckIn           *string
	CheckOut          *string
	ScheduledCheckIn  *string
	ScheduledCheckOut *string
	BreakTime         *string
	IsNightShift      bool
	Status            Status
	IsDeleted         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports whether the record has a check-in but no check-out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// IsComplete reports whether both ends of the interval are present.
func (a Attendance) IsComplete() bool {
	return a.CheckIn != nil && a.CheckOut != nil && *a.CheckIn != "" && *a.CheckOut != ""
}

// Schedule is the planned shift attached to a record at check-in.
type Schedule struct {
	CheckIn   *string
	CheckOut  *string
	BreakTime *string
}

// NewOpenRecord builds the OPEN state of a record.
func NewOpenRecord(id, employeeID string, date time.Time, checkIn string, schedule Schedule, nightShift bool, status Status) (Attendance, error) {
	if checkIn == "" {
		return Attendance{}, ErrCheckInRequired
	}
	if !status.IsValid() {
		return Attendance{}, ErrInvalidStatus
	}

	in := checkIn
	return Attendance{
		ID:                id,
		EmployeeID:        employeeID,
		Date:              time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		CheckIn:           &in,
		CheckOut:          nil,
		ScheduledCheckIn:  schedule.CheckIn,
		ScheduledCheckOut: schedule.CheckOut,
		BreakTime:         schedule.BreakTime,
		IsNightShift:      nightShift,
		Status:            status,
	}, nil
}

// Close moves an OPEN record to CLOSED. The receiver is left untouched.
func (a Attendance) Close(checkOut string, status Status) (Attendance, error) {
	if a.CheckIn == nil {
		return Attendance{}, ErrNotCheckedIn
	}
	if a.CheckOut != nil {
		return Attendance{}, ErrAlreadyCheckedOut
	}
	if checkOut == "" {
		return Attendance{}, ErrCheckOutRequired
	}
	if !status.IsValid() {
		return Attendance{}, ErrInvalidStatus
	}

	closed := a
	out := checkOut
	closed.CheckOut = &out
	closed.Status = status
	return closed, nil
}

// SessionWindow returns the business dates that may hold the open record
// for an instant: yesterday, today and tomorrow. Night shifts are filed
// under the following day, and a shift crossing midnight is closed the day
// after it was opened.
func SessionWindow(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return []time.Time{
		today.AddDate(0, 0, -1),
		today,
		today.AddDate(0, 0, 1),
	}
}
