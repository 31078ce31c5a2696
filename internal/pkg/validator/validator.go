package validator

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID string.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidYearMonth checks a "YYYY-MM" string.
func IsValidYearMonth(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", s)
	return t, err == nil
}

// IsValidClock checks a wall-clock "HH:MM" or "HH:MM:SS" string.
func IsValidClock(s string) bool {
	_, err := clock.Parse(s)
	return err == nil
}

// IsValidDuration checks an "HH:MM" duration.
func IsValidDuration(s string) bool {
	_, err := clock.DurationMinutes(s)
	return err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
