package export

import (
	"fmt"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet = "Summary"
	headerRow    = 4
)

var summaryHeaders = []string{
	"Employee Code", "Employee Name", "Facility", "Category", "Salary Type",
	"Period Start", "Period End",
	"Total Hours", "Holiday Hours", "Weekday Hours",
	"Early Hours", "Late Hours", "Day Hours",
	"Worked Days", "Night Shifts", "Night Shift Hours",
}

// WorkHourSummaryFilename is the download name for a summary workbook.
func WorkHourSummaryFilename(r report.WorkHourSummaryReport) string {
	name := r.FacilityName
	if name == "" {
		name = r.FacilityID
	}
	return fmt.Sprintf("work_hours_%s_%s.xlsx", name, r.TargetMonth)
}

// WorkHourSummaryXLSX renders the summary as a single-sheet workbook.
func WorkHourSummaryXLSX(r report.WorkHourSummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(summaryHeaders))
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: summarySheet}
	w.value("A1", "Work Hour Summary")
	w.merge("A1", lastCol+"1")
	w.style("A1", "A1", titleStyle)
	w.value("A2", fmt.Sprintf("Facility: %s", r.FacilityName))
	w.value("E2", fmt.Sprintf("Month: %s", r.TargetMonth))
	w.value("H2", fmt.Sprintf("Generated: %s", r.GeneratedAt))

	headers := make([]any, len(summaryHeaders))
	for i, h := range summaryHeaders {
		headers[i] = h
	}
	w.row(headerRow, headers)
	w.style(fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	for _, s := range r.Rows {
		w.row(row, []any{
			s.EmployeeCode, s.EmployeeName, s.FacilityName, s.Category, s.SalaryType,
			s.PeriodStart, s.PeriodEnd,
			s.TotalHours, s.HolidayHours, s.WeekdayHours,
			s.EarlyHours, s.LateHours, s.DayHours,
			s.TotalWorkedDays, s.NightShiftCount, s.NightShiftHours,
		})
		row++
	}
	if len(r.Rows) > 0 {
		w.style(fmt.Sprintf("H%d", headerRow+1), fmt.Sprintf("M%d", row-1), hoursStyle)
		w.style(fmt.Sprintf("P%d", headerRow+1), fmt.Sprintf("P%d", row-1), hoursStyle)
	}

	w.width("A", "A", 14)
	w.width("B", "C", 24)
	w.width("D", "G", 13)
	w.width("H", lastCol, 12)
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter applies cell edits to one sheet and keeps the first error;
// later edits are skipped once one fails.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) value(cell string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(w.sheet, cell, v)
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err == nil {
		w.err = w.f.MergeCell(w.sheet, from, to)
	}
}

func (w *sheetWriter) style(from, to string, styleID int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
	}
}

func (w *sheetWriter) width(from, to string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, from, to, width)
	}
}

func (w *sheetWriter) row(row int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}
