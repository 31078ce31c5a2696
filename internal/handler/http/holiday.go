package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

// holidayYearWindow bounds ?year= around the current year; each distinct
// year costs an upstream fetch and a cache entry.
const holidayYearWindow = 2

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.Service
	now            func() time.Time
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
		now:            time.Now,
	}
}

// List handles GET /holidays?year=
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < year-holidayYearWindow || parsed > year+holidayYearWindow {
			response.BadRequest(w, fmt.Sprintf("year must be between %d and %d", year-holidayYearWindow, year+holidayYearWindow), nil)
			return
		}
		year = parsed
	}

	dates := h.holidayService.Holidays(r.Context(), year)
	response.Success(w, holiday.ToListResponse(year, dates))
}
