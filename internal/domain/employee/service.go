package employee

import "context"

type EmployeeService interface {
	// ListActiveByFacility returns the active employees assigned to a facility
	ListActiveByFacility(ctx context.Context, facilityID string) ([]EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}
