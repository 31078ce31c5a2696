package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	// Work hour summary as JSON
	GetWorkHourSummary(w http.ResponseWriter, r *http.Request)

	// Work hour summary as an XLSX download
	ExportWorkHourSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetWorkHourSummary handles GET /reports/work-hours
func (h *reportHandlerImpl) GetWorkHourSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := parseWorkHourSummaryRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateWorkHourSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWorkHourSummary handles GET /reports/work-hours/export
func (h *reportHandlerImpl) ExportWorkHourSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := parseWorkHourSummaryRequest(w, r)
	if !ok {
		return
	}

	body, err := h.reportService.ExportWorkHourSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := export.WorkHourSummaryFilename(report.WorkHourSummaryReport{
		FacilityID:  req.FacilityID,
		TargetMonth: req.TargetMonth,
	})
	requestedBy, _ := middleware.SubjectFromContext(r.Context())
	slog.Info("Work hour summary exported",
		"facility_id", req.FacilityID,
		"target_month", req.TargetMonth,
		"requested_by", requestedBy,
		"bytes", len(body))

	response.Attachment(w, export.ContentTypeXLSX, filename, body)
}

func parseWorkHourSummaryRequest(w http.ResponseWriter, r *http.Request) (report.WorkHourSummaryRequest, bool) {
	req := report.WorkHourSummaryRequest{
		FacilityID:  r.URL.Query().Get("facility_id"),
		TargetMonth: r.URL.Query().Get("target_month"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	if !validator.IsValidUUID(req.FacilityID) {
		response.BadRequest(w, "facility_id must be a valid UUID", nil)
		return req, false
	}
	return req, true
}
