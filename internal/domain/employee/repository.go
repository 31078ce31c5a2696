package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActiveByFacilityID(ctx context.Context, facilityID string) ([]Employee, error)
}
