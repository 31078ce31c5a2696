package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	facilityRepo company.FacilityRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	facilityRepo company.FacilityRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		facilityRepo: facilityRepo,
	}
}

// ListActiveByFacility implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActiveByFacility(ctx context.Context, facilityID string) ([]employee.EmployeeResponse, error) {
	if strings.TrimSpace(facilityID) == "" {
		return nil, employee.ErrFacilityIDMissing
	}

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, company.ErrFacilityNotFound) {
			return nil, company.ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to get facility: %w", err)
	}

	employees, err := s.employeeRepo.GetActiveByFacilityID(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		if e.FacilityName == nil {
			e.FacilityName = &facility.Name
		}
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToResponse(e), nil
}
