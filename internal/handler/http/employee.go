package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListActive handles GET /employees?facility_id=
func (h *employeeHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	facilityID := r.URL.Query().Get("facility_id")
	if facilityID == "" {
		response.HandleError(w, employee.ErrFacilityIDMissing)
		return
	}
	if !validator.IsValidUUID(facilityID) {
		response.BadRequest(w, "facility_id must be a valid UUID", nil)
		return
	}

	employees, err := h.employeeService.ListActiveByFacility(r.Context(), facilityID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// GetEmployee handles GET /employees/{id}
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "id must be a valid UUID", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
