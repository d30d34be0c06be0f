package shared

import (
	"fmt"
	"time"
)

// dateFormats are the accepted wire formats for date fields, tried in
// order. Plain dates parse as midnight UTC.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDate parses a request date field. An empty value is not an
// error; it returns the zero time so the domain layer decides whether
// the field was required.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC3339", value)
}
