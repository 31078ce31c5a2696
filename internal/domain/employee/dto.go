package employee

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	FacilityID   string  `json:"facility_id"`
	FacilityName *string `json:"facility_name,omitempty"`
	Category     *string `json:"category,omitempty"`
	SalaryType   string  `json:"salary_type"`
	CutoffType   string  `json:"cutoff_type"`
	IsActive     bool    `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName(),
		FacilityID:   e.FacilityID,
		FacilityName: e.FacilityName,
		Category:     e.Category,
		SalaryType:   string(e.SalaryType),
		CutoffType:   string(e.CutoffType),
		IsActive:     e.IsActive,
	}
}
