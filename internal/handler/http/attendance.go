package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Failed to decode check-out request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := attendance.AttendanceFilter{}

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if facilityID := query.Get("facility_id"); facilityID != "" {
		if !validator.IsValidUUID(facilityID) {
			response.BadRequest(w, "facility_id must be a valid UUID", nil)
			return
		}
		filter.FacilityID = &facilityID
	}

	// Date range filters
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	// Pagination
	if p := query.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := query.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	// Sorting
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListAttendance(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       results.Page,
		Limit:      results.Limit,
		TotalItems: results.TotalCount,
		TotalPages: results.TotalPages,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "id must be a valid UUID", nil)
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
