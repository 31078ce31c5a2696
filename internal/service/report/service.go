package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/export"
	holidayService "github.com/cmlabs-hris/worktime-backend-go/internal/service/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	companyRepo    company.CompanyRepository
	facilityRepo   company.FacilityRepository
	attendanceRepo attendance.AttendanceRepository
	holidays       holiday.CalendarLoader
	cfg            config.ReportConfig
	now            func() time.Time
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	facilityRepo company.FacilityRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidays holiday.CalendarLoader,
	cfg config.ReportConfig,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		companyRepo:    companyRepo,
		facilityRepo:   facilityRepo,
		attendanceRepo: attendanceRepo,
		holidays:       holidays,
		cfg:            cfg,
		now:            time.Now,
	}
}

// GenerateWorkHourSummary builds one row per active employee of the facility,
// each over the employee's own pay period for the target month.
func (s *ReportServiceImpl) GenerateWorkHourSummary(ctx context.Context, req report.WorkHourSummaryRequest) (report.WorkHourSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.WorkHourSummaryReport{}, err
	}

	facility, err := s.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, company.ErrFacilityNotFound) {
			return report.WorkHourSummaryReport{}, err
		}
		return report.WorkHourSummaryReport{}, fmt.Errorf("%w: get facility: %w", report.ErrAggregationFailed, err)
	}

	employees, err := s.employeeRepo.GetActiveByFacilityID(ctx, req.FacilityID)
	if err != nil {
		return report.WorkHourSummaryReport{}, fmt.Errorf("%w: list employees: %w", report.ErrAggregationFailed, err)
	}

	specialByCompany, err := s.specialCompanies(ctx, employees)
	if err != nil {
		return report.WorkHourSummaryReport{}, err
	}
	facilitySpecial := false
	for _, special := range specialByCompany {
		if special {
			facilitySpecial = true
			break
		}
	}

	periods := make([]worktime.PayPeriod, len(employees))
	for i, emp := range employees {
		p, err := worktime.ResolvePayPeriod(emp.CutoffType, req.TargetMonth)
		if err != nil {
			return report.WorkHourSummaryReport{}, err
		}
		periods[i] = p
	}

	recordsByEmployee, err := s.loadRecords(ctx, employees, periods)
	if err != nil {
		return report.WorkHourSummaryReport{}, err
	}

	calendar := s.holidays.Load(ctx, holidayService.YearsForPeriods(periods...)...)

	rows := make([]report.WorkHourSummaryRow, 0, len(employees))
	for i, emp := range employees {
		special := facilitySpecial
		if s.cfg.PerEmployeeSpecial {
			special = specialByCompany[emp.CompanyID]
		}

		t := newTotals()
		for _, rec := range recordsByEmployee[emp.ID] {
			if !periods[i].Contains(rec.Date) {
				continue
			}
			t.add(rec, calendar.IsHoliday(rec.Date), special)
		}

		rows = append(rows, t.row(emp, facility, periods[i]))
	}

	slog.Info("Work hour summary generated",
		"facility_id", req.FacilityID,
		"target_month", req.TargetMonth,
		"employees", len(rows),
		"special", facilitySpecial)

	return report.WorkHourSummaryReport{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		TargetMonth:  req.TargetMonth,
		IsSpecial:    facilitySpecial,
		GeneratedAt:  s.now().Format(time.RFC3339),
		Rows:         rows,
	}, nil
}

// ExportWorkHourSummary renders GenerateWorkHourSummary as XLSX.
func (s *ReportServiceImpl) ExportWorkHourSummary(ctx context.Context, req report.WorkHourSummaryRequest) ([]byte, error) {
	summary, err := s.GenerateWorkHourSummary(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := export.WorkHourSummaryXLSX(summary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}
	return data, nil
}

func (s *ReportServiceImpl) specialCompanies(ctx context.Context, employees []employee.Employee) (map[string]bool, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, emp := range employees {
		if emp.CompanyID == "" || seen[emp.CompanyID] {
			continue
		}
		seen[emp.CompanyID] = true
		ids = append(ids, emp.CompanyID)
	}

	special := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return special, nil
	}

	companies, err := s.companyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load companies: %w", report.ErrAggregationFailed, err)
	}
	for _, c := range companies {
		special[c.ID] = c.IsSpecial
	}
	return special, nil
}

// loadRecords fetches every record of the employees across the union of
// their periods in one query, grouped by employee.
func (s *ReportServiceImpl) loadRecords(ctx context.Context, employees []employee.Employee, periods []worktime.PayPeriod) (map[string][]attendance.Attendance, error) {
	grouped := make(map[string][]attendance.Attendance, len(employees))
	if len(employees) == 0 {
		return grouped, nil
	}

	ids := make([]string, len(employees))
	start, end := periods[0].Start, periods[0].End
	for i, emp := range employees {
		ids[i] = emp.ID
		if periods[i].Start.Before(start) {
			start = periods[i].Start
		}
		if periods[i].End.After(end) {
			end = periods[i].End
		}
	}

	records, err := s.attendanceRepo.ListByEmployeesAndDateRange(ctx, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: list attendance: %w", report.ErrAggregationFailed, err)
	}
	for _, rec := range records {
		if rec.IsDeleted {
			continue
		}
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}
	return grouped, nil
}
