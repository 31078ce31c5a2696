package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByFacilityID(ctx context.Context, facilityID string) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.FacilityID == facilityID && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeFacilityRepo struct{}

func (fakeFacilityRepo) GetByID(ctx context.Context, id string) (company.Facility, error) {
	if id != "fac-1" {
		return company.Facility{}, company.ErrFacilityNotFound
	}
	return company.Facility{ID: "fac-1", Name: "Osaka"}, nil
}

func TestListActiveByFacility(t *testing.T) {
	repo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e1", EmployeeCode: "E001", LastName: "Yamada", FirstName: "Taro", FacilityID: "fac-1", CutoffType: employee.CutoffType10, SalaryType: employee.SalaryTypeHourly, IsActive: true},
		{ID: "e2", LastName: "Gone", FacilityID: "fac-1", IsActive: false},
	}}
	svc := NewEmployeeService(repo, fakeFacilityRepo{})

	got, err := svc.ListActiveByFacility(context.Background(), "fac-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Yamada Taro", got[0].FullName)
	assert.Equal(t, "10", got[0].CutoffType)
	require.NotNil(t, got[0].FacilityName)
	assert.Equal(t, "Osaka", *got[0].FacilityName)

	_, err = svc.ListActiveByFacility(context.Background(), " ")
	assert.ErrorIs(t, err, employee.ErrFacilityIDMissing)

	_, err = svc.ListActiveByFacility(context.Background(), "fac-9")
	assert.ErrorIs(t, err, company.ErrFacilityNotFound)

	repo.err = errors.New("boom")
	_, err = svc.ListActiveByFacility(context.Background(), "fac-1")
	assert.Error(t, err)
}

func TestGetEmployee(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{employees: []employee.Employee{{ID: "e1", LastName: "Sato"}}}, fakeFacilityRepo{})

	got, err := svc.GetEmployee(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "Sato", got.FullName)

	_, err = svc.GetEmployee(context.Background(), "e9")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
