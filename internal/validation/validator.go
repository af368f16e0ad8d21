package validation

import (
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
)

const dayLayout = "2006-01-02"

// timestamp layouts accepted for a calendar-day filter; a timestamp without offset is UTC.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

// New returns a configured validator with the custom tags used by storage records
// and query parameters registered:
//
//	rfc3339   string parses as an RFC 3339 timestamp (fractional seconds allowed)
//	dayfilter string is a YYYY-MM-DD day or a full timestamp
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// both registrations only fail on an empty tag name or nil func
	_ = v.RegisterValidation("rfc3339", func(fl validatorv10.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("dayfilter", func(fl validatorv10.FieldLevel) bool {
		_, ok := CalendarDay(fl.Field().String())
		return ok
	})

	return v
}

// ParseTimestamp parses a stored ISO 8601 timestamp with explicit offset.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// CalendarDay normalizes a date filter to a YYYY-MM-DD prefix. A bare day passes
// through unchanged; a full timestamp is converted to its UTC calendar day.
func CalendarDay(s string) (string, bool) {
	if _, err := time.Parse(dayLayout, s); err == nil {
		return s, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(dayLayout), true
		}
	}
	return "", false
}
