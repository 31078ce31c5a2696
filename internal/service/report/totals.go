package report

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/worktime"
	"github.com/shopspring/decimal"
)

// totals accumulates one employee's hours over a period.
type totals struct {
	total      decimal.Decimal
	holiday    decimal.Decimal
	weekday    decimal.Decimal
	early      decimal.Decimal
	late       decimal.Decimal
	day        decimal.Decimal
	nightHours decimal.Decimal
	workedDays int
	nightCount int
}

func newTotals() *totals {
	return &totals{
		total:      decimal.Zero,
		holiday:    decimal.Zero,
		weekday:    decimal.Zero,
		early:      decimal.Zero,
		late:       decimal.Zero,
		day:        decimal.Zero,
		nightHours: decimal.Zero,
	}
}

var nightShiftHours = decimal.NewFromFloat(worktime.NightShiftHours)

// add folds one record in. Incomplete or unparsable records are skipped.
func (t *totals) add(rec attendance.Attendance, holiday, special bool) {
	if !rec.IsComplete() {
		return
	}

	iv, err := worktime.AdjustInterval(*rec.CheckIn, *rec.CheckOut, rec.ScheduledCheckIn, rec.ScheduledCheckOut)
	if err != nil {
		return
	}

	t.workedDays++

	if worktime.IsNightShift(*rec.CheckIn, *rec.CheckOut, rec.ScheduledCheckIn, rec.ScheduledCheckOut) {
		t.nightCount++
		t.nightHours = t.nightHours.Add(nightShiftHours)
		t.total = t.total.Add(nightShiftHours)
		return
	}

	breakMinutes := worktime.BreakMinutes(rec.BreakTime)
	net := decimal.NewFromInt(int64(max(0, iv.DurationMinutes()-breakMinutes))).Div(decimal.NewFromInt(60))

	b := worktime.Classify(iv, breakMinutes, holiday, special)
	t.early = t.early.Add(decimal.NewFromFloat(b.Early))
	t.late = t.late.Add(decimal.NewFromFloat(b.Late))
	t.day = t.day.Add(decimal.NewFromFloat(b.Day))

	if holiday && !special {
		dayHours := decimal.NewFromFloat(b.Day)
		t.holiday = t.holiday.Add(dayHours)
		t.total = t.total.Add(dayHours)
		return
	}

	t.weekday = t.weekday.Add(net)
	t.total = t.total.Add(net)
}

func (t *totals) row(emp employee.Employee, facility company.Facility, p worktime.PayPeriod) report.WorkHourSummaryRow {
	category := ""
	if emp.Category != nil {
		category = *emp.Category
	}

	return report.WorkHourSummaryRow{
		EmployeeID:      emp.ID,
		EmployeeCode:    emp.EmployeeCode,
		EmployeeName:    emp.FullName(),
		FacilityID:      facility.ID,
		FacilityName:    facility.Name,
		Category:        category,
		SalaryType:      string(emp.SalaryType),
		PeriodStart:     p.StartDate(),
		PeriodEnd:       p.EndDate(),
		TotalHours:      round2(t.total),
		HolidayHours:    round2(t.holiday),
		WeekdayHours:    round2(t.weekday),
		EarlyHours:      round2(t.early),
		LateHours:       round2(t.late),
		DayHours:        round2(t.day),
		TotalWorkedDays: t.workedDays,
		NightShiftCount: t.nightCount,
		NightShiftHours: round2(t.nightHours),
	}
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
