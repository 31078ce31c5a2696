package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, is_special, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(&comp.ID, &comp.Name, &comp.IsSpecial, &comp.CreatedAt, &comp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id: %w", err)
	}

	return comp, nil
}

// GetByIDs implements company.CompanyRepository. Unknown ids are ignored.
func (c *companyRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]company.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, is_special, created_at, updated_at
		FROM companies
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var comp company.Company
		if err := rows.Scan(&comp.ID, &comp.Name, &comp.IsSpecial, &comp.CreatedAt, &comp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}

	return companies, nil
}

type facilityRepositoryImpl struct {
	db *database.DB
}

func NewFacilityRepository(db *database.DB) company.FacilityRepository {
	return &facilityRepositoryImpl{db: db}
}

// GetByID implements company.FacilityRepository.
func (f *facilityRepositoryImpl) GetByID(ctx context.Context, id string) (company.Facility, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM facilities
		WHERE id = $1
	`

	var fac company.Facility
	err := q.QueryRow(ctx, query, id).Scan(&fac.ID, &fac.CompanyID, &fac.Name, &fac.CreatedAt, &fac.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Facility{}, company.ErrFacilityNotFound
		}
		return company.Facility{}, fmt.Errorf("failed to get facility by id: %w", err)
	}

	return fac, nil
}
