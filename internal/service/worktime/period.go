package worktime

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
)

var ErrInvalidTargetMonth = errors.New("target month must be in YYYY-MM format")

const dateLayout = "2006-01-02"

// PayPeriod is an inclusive range of business dates.
type PayPeriod struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls within [Start, End], ignoring time of day.
func (p PayPeriod) Contains(date time.Time) bool {
	d := truncateDate(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p PayPeriod) StartDate() string { return p.Start.Format(dateLayout) }
func (p PayPeriod) EndDate() string   { return p.End.Format(dateLayout) }

func (p PayPeriod) String() string {
	return "[" + p.StartDate() + ", " + p.EndDate() + "]"
}

// ResolvePayPeriod returns the period closing in targetMonth ("YYYY-MM").
// Cutoff 10 runs from the 11th of the prior month to the 10th; every other
// cutoff is treated as 20 and runs from the 21st to the 20th.
func ResolvePayPeriod(cutoff employee.CutoffType, targetMonth string) (PayPeriod, error) {
	month, err := time.Parse("2006-01", targetMonth)
	if err != nil {
		return PayPeriod{}, fmt.Errorf("%w: %q", ErrInvalidTargetMonth, targetMonth)
	}

	closingDay := 20
	if cutoff == employee.CutoffType10 {
		closingDay = 10
	}

	// time.Date normalises month 0 to December of the previous year.
	start := time.Date(month.Year(), month.Month()-1, closingDay+1, 0, 0, 0, 0, time.UTC)
	end := time.Date(month.Year(), month.Month(), closingDay, 0, 0, 0, 0, time.UTC)

	return PayPeriod{Start: start, End: end}, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
