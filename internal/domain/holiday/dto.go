package holiday

import "time"

type HolidayListResponse struct {
	Year     int      `json:"year"`
	Holidays []string `json:"holidays"` // YYYY-MM-DD, ascending
}

func ToListResponse(year int, dates []time.Time) HolidayListResponse {
	resp := HolidayListResponse{
		Year:     year,
		Holidays: make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Holidays = append(resp.Holidays, d.Format("2006-01-02"))
	}
	return resp
}
