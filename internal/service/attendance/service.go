package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

const clockLayout = "15:04:05"

var (
	// default lateness thresholds when no schedule is attached
	defaultDayStart   = clock.Clock{Hour: 9}
	defaultNightStart = clock.Clock{Hour: 20}

	// default early-leave thresholds when no schedule is attached
	defaultDayEnd   = clock.Clock{Hour: 18}
	defaultNightEnd = clock.Clock{Hour: 6}
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
// Check-ins from 18:00 are night shifts filed under the next day; check-ins
// before 06:00 are night shifts filed under the current day.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.ensureActive(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := s.now().In(s.loc)
	actualSeconds := nowLocal.Hour()*3600 + nowLocal.Minute()*60 + nowLocal.Second()

	nightShift := nowLocal.Hour() >= 18 || nowLocal.Hour() < 6
	businessDate := nowLocal
	if nowLocal.Hour() >= 18 {
		businessDate = nowLocal.AddDate(0, 0, 1)
	}

	status := checkInStatus(actualSeconds, req.ScheduledCheckIn, nightShift)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	record, err := attendance.NewOpenRecord(
		id.String(),
		req.EmployeeID,
		businessDate,
		nowLocal.Format(clockLayout),
		attendance.Schedule{
			CheckIn:   req.ScheduledCheckIn,
			CheckOut:  req.ScheduledCheckOut,
			BreakTime: req.BreakTime,
		},
		nightShift,
		status,
	)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Attendance
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.LockEmployee(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		_, err := s.attendanceRepo.GetOpenSession(ctx, req.EmployeeID, attendance.SessionWindow(nowLocal))
		if err == nil {
			return attendance.ErrAlreadyCheckedIn
		}
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return fmt.Errorf("failed to get open session: %w", err)
		}

		created, err = s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked in",
		"attendance_id", created.ID,
		"employee_id", created.EmployeeID,
		"date", created.Date.Format("2006-01-02"),
		"night_shift", created.IsNightShift,
		"status", created.Status)

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := s.now().In(s.loc)
	actual := clock.Clock{Hour: nowLocal.Hour(), Minute: nowLocal.Minute()}

	var closed attendance.Attendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.LockEmployee(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}

		open, err := s.attendanceRepo.GetOpenSession(ctx, req.EmployeeID, attendance.SessionWindow(nowLocal))
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get open session: %w", err)
		}

		closed, err = open.Close(nowLocal.Format(clockLayout), checkOutStatus(open, actual))
		if err != nil {
			return err
		}

		if err := s.attendanceRepo.Close(ctx, closed); err != nil {
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked out",
		"attendance_id", closed.ID,
		"employee_id", closed.EmployeeID,
		"status", closed.Status)

	return mapAttendanceToResponse(closed), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(att), nil
}

func (s *AttendanceServiceImpl) ensureActive(ctx context.Context, employeeID string) error {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return employee.ErrEmployeeInactive
	}
	return nil
}

// checkInStatus marks an arrival after the scheduled start as late, compared
// to the second. Without a schedule the default start of the shift is used.
func checkInStatus(actualSeconds int, scheduledIn *string, nightShift bool) attendance.Status {
	threshold := defaultDayStart.Minutes() * 60
	if nightShift {
		threshold = defaultNightStart.Minutes() * 60
	}
	if scheduledIn != nil && *scheduledIn != "" {
		if sec, err := clock.SecondsOfDay(*scheduledIn); err == nil {
			threshold = sec
		}
	}

	if actualSeconds > threshold {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// checkOutStatus downgrades a present record to early-leave when the employee
// leaves before the end of the shift. Late records stay late.
func checkOutStatus(open attendance.Attendance, actual clock.Clock) attendance.Status {
	if open.Status != attendance.StatusPresent {
		return open.Status
	}

	var early bool
	switch {
	case open.IsNightShift:
		early = actual.Before(defaultNightEnd)
	case open.ScheduledCheckOut != nil && *open.ScheduledCheckOut != "":
		end, err := clock.Parse(*open.ScheduledCheckOut)
		if err != nil {
			end = defaultDayEnd
		}
		early = actual.Before(end)
	default:
		early = actual.Before(defaultDayEnd)
	}

	if early {
		return attendance.StatusEarlyLeave
	}
	return attendance.StatusPresent
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}

	resp := attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      employeeName,
		Date:              att.Date.Format("2006-01-02"),
		CheckIn:           att.CheckIn,
		CheckOut:          att.CheckOut,
		ScheduledCheckIn:  att.ScheduledCheckIn,
		ScheduledCheckOut: att.ScheduledCheckOut,
		BreakTime:         att.BreakTime,
		IsNightShift:      att.IsNightShift,
		Status:            string(att.Status),
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
