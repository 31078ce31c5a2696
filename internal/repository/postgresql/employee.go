package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.employee_code, e.last_name, e.first_name,
	e.facility_id, e.company_id, e.category,
	e.salary_type, e.cutoff_type, e.is_active,
	e.created_at, e.updated_at,
	f.name`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.LastName, &emp.FirstName,
		&emp.FacilityID, &emp.CompanyID, &emp.Category,
		&emp.SalaryType, &emp.CutoffType, &emp.IsActive,
		&emp.CreatedAt, &emp.UpdatedAt,
		&emp.FacilityName,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN facilities f ON f.id = e.facility_id
		WHERE e.id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// GetActiveByFacilityID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByFacilityID(ctx context.Context, facilityID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN facilities f ON f.id = e.facility_id
		WHERE e.facility_id = $1
		  AND e.is_active
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
