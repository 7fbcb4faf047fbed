package timeparse

import (
	"fmt"
	"time"
)

// Layouts tried after RFC3339, all read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse reads an ISO8601 timestamp. Values without an offset are taken in loc
// (time.Local when nil).
func Parse(val string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, val, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339 or YYYY-MM-DDTHH:MM[:SS]", val)
}
