package utils

import (
	"fmt"
	"strings"
	"time"
)

var activityDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseActivityDate parses a user-chosen date such as "2024-03-01" or a full
// RFC 3339 timestamp. Results are normalized to UTC.
func ParseActivityDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range activityDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
