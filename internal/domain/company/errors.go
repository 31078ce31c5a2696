package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrFacilityNotFound = errors.New("facility not found")
)
