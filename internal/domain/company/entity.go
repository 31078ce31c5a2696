package company

import "time"

type Company struct {
	ID        string
	Name      string
	IsSpecial bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Facility is a work site; employees are assigned to exactly one.
type Facility struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
