package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateWorkHourSummary aggregates one row per active employee of a facility
	GenerateWorkHourSummary(ctx context.Context, req WorkHourSummaryRequest) (WorkHourSummaryReport, error)

	// ExportWorkHourSummary renders the same summary as an XLSX workbook
	ExportWorkHourSummary(ctx context.Context, req WorkHourSummaryRequest) ([]byte, error)
}
