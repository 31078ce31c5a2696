package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByIDs(ctx context.Context, ids []string) ([]Company, error)
}

type FacilityRepository interface {
	GetByID(ctx context.Context, id string) (Facility, error)
}
