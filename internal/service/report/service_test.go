package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	holidayService "github.com/cmlabs-hris/worktime-backend-go/internal/service/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

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

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) GetByIDs(ctx context.Context, ids []string) ([]company.Company, error) {
	var out []company.Company
	for _, id := range ids {
		if c, ok := f.companies[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFacilityRepo struct {
	facilities map[string]company.Facility
}

func (f *fakeFacilityRepo) GetByID(ctx context.Context, id string) (company.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return company.Facility{}, company.ErrFacilityNotFound
	}
	return fac, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	records   []attendance.Attendance
	err       error
	gotStart  time.Time
	gotEnd    time.Time
	gotIDs    []string
	callCount int
}

func (f *fakeAttendanceRepo) ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]attendance.Attendance, error) {
	f.callCount++
	f.gotIDs, f.gotStart, f.gotEnd = employeeIDs, start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeHolidays struct {
	cal   holiday.Calendar
	years []int
}

func (f *fakeHolidays) Load(ctx context.Context, years ...int) holiday.Calendar {
	f.years = years
	return f.cal
}

// ---- helpers ----

func ptr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(empID string, date time.Time, in, out string) attendance.Attendance {
	r := attendance.Attendance{ID: empID + date.Format("0102"), EmployeeID: empID, Date: date, Status: attendance.StatusPresent}
	if in != "" {
		r.CheckIn = ptr(in)
	}
	if out != "" {
		r.CheckOut = ptr(out)
	}
	return r
}

type fixture struct {
	employees  *fakeEmployeeRepo
	companies  *fakeCompanyRepo
	facilities *fakeFacilityRepo
	records    *fakeAttendanceRepo
	holidays   *fakeHolidays
}

func newFixture(special bool) *fixture {
	category := "part-time"
	return &fixture{
		employees: &fakeEmployeeRepo{employees: []employee.Employee{
			{ID: "e1", EmployeeCode: "E001", LastName: "Yamada", FirstName: "Taro", FacilityID: "fac-1", CompanyID: "c1", Category: &category, SalaryType: employee.SalaryTypeHourly, CutoffType: employee.CutoffType10, IsActive: true},
			{ID: "e2", EmployeeCode: "E002", LastName: "Sato", FirstName: "Hanako", FacilityID: "fac-1", CompanyID: "c1", SalaryType: employee.SalaryTypeMonthly, CutoffType: employee.CutoffType20, IsActive: true},
			{ID: "e3", EmployeeCode: "E003", LastName: "Suzuki", FacilityID: "fac-1", CompanyID: "c1", CutoffType: employee.CutoffType20, IsActive: true},
			{ID: "e4", EmployeeCode: "E004", LastName: "Inactive", FacilityID: "fac-1", CompanyID: "c1", IsActive: false},
		}},
		companies:  &fakeCompanyRepo{companies: map[string]company.Company{"c1": {ID: "c1", Name: "Acme", IsSpecial: special}}},
		facilities: &fakeFacilityRepo{facilities: map[string]company.Facility{"fac-1": {ID: "fac-1", CompanyID: "c1", Name: "Osaka"}}},
		records:    &fakeAttendanceRepo{},
		holidays:   &fakeHolidays{cal: holidayService.NewCalendar(day(2024, 2, 12))},
	}
}

func (f *fixture) service(cfg config.ReportConfig) *ReportServiceImpl {
	svc := NewReportService(f.employees, f.companies, f.facilities, f.records, f.holidays, cfg).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC) }
	return svc
}

func rowByID(t *testing.T, r report.WorkHourSummaryReport, id string) report.WorkHourSummaryRow {
	t.Helper()
	for _, row := range r.Rows {
		if row.EmployeeID == id {
			return row
		}
	}
	t.Fatalf("row %s not found", id)
	return report.WorkHourSummaryRow{}
}

// ---- tests ----

func TestGenerateWorkHourSummary(t *testing.T) {
	f := newFixture(false)

	weekday := rec("e1", day(2024, 3, 4), "08:55:00", "18:10:00")
	weekday.ScheduledCheckIn, weekday.ScheduledCheckOut, weekday.BreakTime = ptr("09:00"), ptr("18:00"), ptr("01:00")

	night := rec("e1", day(2024, 3, 5), "16:35:12", "09:31:40")
	night.ScheduledCheckIn, night.ScheduledCheckOut = ptr("16:30"), ptr("09:30")

	deleted := rec("e1", day(2024, 3, 7), "09:00", "18:00")
	deleted.IsDeleted = true

	late := rec("e2", day(2024, 3, 20), "09:10", "18:05")
	late.ScheduledCheckIn, late.ScheduledCheckOut = ptr("09:00"), ptr("18:00")

	f.records.records = []attendance.Attendance{
		weekday,
		rec("e1", day(2024, 3, 3), "07:00", "20:00"), // sunday
		night,
		rec("e1", day(2024, 3, 6), "09:00", ""), // still open
		deleted,
		rec("e1", day(2024, 3, 11), "09:00", "18:00"), // next period
		rec("e1", day(2024, 2, 12), "10:00", "12:00"), // public holiday, under cap
		rec("e2", day(2024, 2, 20), "09:00", "18:00"), // previous period
		late,
		rec("e2", day(2024, 3, 19), "09:00", "09:20"),
		rec("e2", day(2024, 3, 18), "bad", "18:00"),
	}

	got, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(context.Background(), report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	require.NoError(t, err)

	assert.Equal(t, "Osaka", got.FacilityName)
	assert.False(t, got.IsSpecial)
	assert.Equal(t, "2024-03-25T09:00:00Z", got.GeneratedAt)
	require.Len(t, got.Rows, 3)

	e1 := rowByID(t, got, "e1")
	assert.Equal(t, "Yamada Taro", e1.EmployeeName)
	assert.Equal(t, "part-time", e1.Category)
	assert.Equal(t, "hourly", e1.SalaryType)
	assert.Equal(t, "2024-02-11", e1.PeriodStart)
	assert.Equal(t, "2024-03-10", e1.PeriodEnd)
	assert.Equal(t, 4, e1.TotalWorkedDays)
	assert.Equal(t, 1, e1.NightShiftCount)
	assert.Equal(t, 14.0, e1.NightShiftHours)
	assert.Equal(t, 2.0, e1.EarlyHours)
	assert.Equal(t, 2.0, e1.LateHours)
	// 8 weekday, 4 capped sunday, 2 public holiday
	assert.Equal(t, 14.0, e1.DayHours)
	assert.Equal(t, 6.0, e1.HolidayHours)
	assert.Equal(t, 8.0, e1.WeekdayHours)
	assert.Equal(t, 28.0, e1.TotalHours)

	e2 := rowByID(t, got, "e2")
	assert.Equal(t, "2024-02-21", e2.PeriodStart)
	assert.Equal(t, "2024-03-20", e2.PeriodEnd)
	assert.Equal(t, 2, e2.TotalWorkedDays)
	assert.Equal(t, 8.83, e2.TotalHours)
	assert.Equal(t, 8.83, e2.WeekdayHours)
	assert.Equal(t, 8.5, e2.DayHours)
	assert.Zero(t, e2.HolidayHours)

	e3 := rowByID(t, got, "e3")
	assert.Zero(t, e3.TotalHours)
	assert.Zero(t, e3.TotalWorkedDays)
	assert.Equal(t, "2024-02-21", e3.PeriodStart)

	assert.ElementsMatch(t, []string{"e1", "e2", "e3"}, f.records.gotIDs)
	assert.Equal(t, day(2024, 2, 11), f.records.gotStart)
	assert.Equal(t, day(2024, 3, 20), f.records.gotEnd)
	assert.Equal(t, []int{2023, 2024, 2025}, f.holidays.years)
}

func TestGenerateWorkHourSummary_SpecialCompanyHoliday(t *testing.T) {
	f := newFixture(true)
	f.records.records = []attendance.Attendance{
		rec("e1", day(2024, 3, 3), "09:00", "19:00"), // sunday
	}

	got, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(context.Background(), report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	require.NoError(t, err)
	assert.True(t, got.IsSpecial)

	e1 := rowByID(t, got, "e1")
	assert.Equal(t, 8.0, e1.DayHours)
	assert.Zero(t, e1.EarlyHours)
	assert.Zero(t, e1.LateHours)
	assert.Zero(t, e1.HolidayHours)
	assert.Equal(t, 10.0, e1.WeekdayHours)
	assert.Equal(t, 10.0, e1.TotalHours)
}

func TestGenerateWorkHourSummary_NightShiftNeverBucketed(t *testing.T) {
	f := newFixture(false)
	f.records.records = []attendance.Attendance{
		rec("e1", day(2024, 3, 3), "16:30", "09:30"), // sunday night shift
		rec("e1", day(2024, 3, 4), "16:40", "09:45"),
	}

	got, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(context.Background(), report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	require.NoError(t, err)

	e1 := rowByID(t, got, "e1")
	assert.Equal(t, 2, e1.NightShiftCount)
	assert.Equal(t, 28.0, e1.NightShiftHours)
	assert.Equal(t, 28.0, e1.TotalHours)
	assert.Equal(t, 2, e1.TotalWorkedDays)
	assert.Zero(t, e1.EarlyHours+e1.LateHours+e1.DayHours)
	assert.Zero(t, e1.HolidayHours+e1.WeekdayHours)
}

func TestGenerateWorkHourSummary_PerEmployeeSpecial(t *testing.T) {
	f := newFixture(false)
	f.companies.companies["c2"] = company.Company{ID: "c2", IsSpecial: true}
	f.employees.employees[1].CompanyID = "c2"
	f.records.records = []attendance.Attendance{
		rec("e1", day(2024, 3, 3), "09:00", "19:00"),
		rec("e2", day(2024, 3, 3), "09:00", "19:00"),
	}
	req := report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"}

	// facility-wide: one special company flags everyone
	got, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, got.IsSpecial)
	assert.Zero(t, rowByID(t, got, "e1").HolidayHours)

	got, err = f.service(config.ReportConfig{PerEmployeeSpecial: true}).GenerateWorkHourSummary(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 7.0, rowByID(t, got, "e1").HolidayHours)
	assert.Equal(t, 1.0, rowByID(t, got, "e1").LateHours)
	assert.Zero(t, rowByID(t, got, "e2").HolidayHours)
	assert.Equal(t, 10.0, rowByID(t, got, "e2").WeekdayHours)
}

func TestGenerateWorkHourSummary_Errors(t *testing.T) {
	ctx := context.Background()

	f := newFixture(false)
	_, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(ctx, report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "03-2024"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.service(config.ReportConfig{}).GenerateWorkHourSummary(ctx, report.WorkHourSummaryRequest{FacilityID: "missing", TargetMonth: "2024-03"})
	assert.ErrorIs(t, err, company.ErrFacilityNotFound)

	f.records.err = errors.New("connection reset")
	_, err = f.service(config.ReportConfig{}).GenerateWorkHourSummary(ctx, report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	assert.ErrorIs(t, err, report.ErrAggregationFailed)

	f = newFixture(false)
	f.employees.err = errors.New("timeout")
	_, err = f.service(config.ReportConfig{}).GenerateWorkHourSummary(ctx, report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	assert.ErrorIs(t, err, report.ErrAggregationFailed)
}

func TestGenerateWorkHourSummary_NoEmployees(t *testing.T) {
	f := newFixture(false)
	f.facilities.facilities["fac-2"] = company.Facility{ID: "fac-2", Name: "Kobe"}

	got, err := f.service(config.ReportConfig{}).GenerateWorkHourSummary(context.Background(), report.WorkHourSummaryRequest{FacilityID: "fac-2", TargetMonth: "2024-03"})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Zero(t, f.records.callCount)
}

func TestExportWorkHourSummary(t *testing.T) {
	f := newFixture(false)
	f.records.records = []attendance.Attendance{rec("e1", day(2024, 3, 4), "09:00", "18:00")}

	data, err := f.service(config.ReportConfig{}).ExportWorkHourSummary(context.Background(), report.WorkHourSummaryRequest{FacilityID: "fac-1", TargetMonth: "2024-03"})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}
