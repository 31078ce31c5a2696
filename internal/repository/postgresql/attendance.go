package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

// Clock columns are TIME; they travel as text so the domain keeps "HH:MM:SS".
const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.check_in::text, a.check_out::text,
	a.scheduled_check_in::text, a.scheduled_check_out::text,
	to_char(a.break_time, 'HH24:MI'),
	a.is_night_shift, a.status, a.is_deleted,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckIn, &att.CheckOut,
		&att.ScheduledCheckIn, &att.ScheduledCheckOut,
		&att.BreakTime,
		&att.IsNightShift, &att.Status, &att.IsDeleted,
		&att.CreatedAt, &att.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in,
			scheduled_check_in, scheduled_check_out, break_time,
			is_night_shift, status
		) VALUES (
			$1, $2, $3, $4::text::time,
			$5::text::time, $6::text::time, $7::text::time,
			$8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.ScheduledCheckIn,
		newAttendance.ScheduledCheckOut,
		newAttendance.BreakTime,
		newAttendance.IsNightShift,
		newAttendance.Status,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.last_name || ' ' || e.first_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
		  AND NOT a.is_deleted
	`

	var employeeName *string
	att, err := scanAttendance(q.QueryRow(ctx, query, id), &employeeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	att.EmployeeName = employeeName

	return att, nil
}

// Close implements attendance.AttendanceRepository.
// Only an open row is updated so a concurrent check-out cannot overwrite it.
func (a *attendanceRepository) Close(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1::text::time,
			status = $2,
			updated_at = NOW()
		WHERE id = $3
		  AND check_out IS NULL
		  AND NOT is_deleted
	`

	tag, err := q.Exec(ctx, query, att.CheckOut, att.Status, att.ID)
	if err != nil {
		return fmt.Errorf("failed to close attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// LockEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee attendance: %w", err)
	}
	return nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, dates []time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = ANY($2)
		  AND a.check_out IS NULL
		  AND NOT a.is_deleted
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dates))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// ListByEmployeesAndDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Attendance, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = ANY($1)
		  AND a.date BETWEEN $2 AND $3
		  AND NOT a.is_deleted
		ORDER BY a.employee_id, a.date, a.check_in
	`

	rows, err := q.Query(ctx, query, employeeIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "NOT a.is_deleted"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.FacilityID != nil && *filter.FacilityID != "" {
		baseWhere += fmt.Sprintf(" AND e.facility_id = $%d", argIdx)
		args = append(args, *filter.FacilityID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "check_in":
		orderByField = "a.check_in"
	case "check_out":
		orderByField = "a.check_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			e.last_name || ' ' || e.first_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.id
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var employeeName *string
		att, err := scanAttendance(rows, &employeeName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		att.EmployeeName = employeeName
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
