package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeInactive  = errors.New("employee is not active")
	ErrFacilityIDMissing = errors.New("facility_id is required")
)
