package domain

import (
	"errors"
	"time"
)

// CreatedWith tags every entry this tool creates.
const CreatedWith = "Knob"

// ErrStopBeforeStart is returned when the stop time precedes the start time.
var ErrStopBeforeStart = errors.New("the stop time must be after the start time")

// TimeEntry is the entry to be created in Toggl. It lives for one request.
type TimeEntry struct {
	Description string
	CreatedWith string
	Start       time.Time // keeps the zone it was parsed in
	DurationSec int64
	WorkspaceID uint64
	ProjectID   uint64
}

// NewTimeEntry builds an entry spanning [start, stop]. Duration is truncated to whole seconds.
func NewTimeEntry(description string, workspaceID, projectID uint64, start, stop time.Time) (TimeEntry, error) {
	if stop.Before(start) {
		return TimeEntry{}, ErrStopBeforeStart
	}
	return TimeEntry{
		Description: description,
		CreatedWith: CreatedWith,
		Start:       start,
		DurationSec: int64(stop.Sub(start) / time.Second),
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
	}, nil
}

// Stop returns the end of the entry.
func (e TimeEntry) Stop() time.Time {
	return e.Start.Add(time.Duration(e.DurationSec) * time.Second)
}

// CreatedEntry is an entry Toggl accepted.
type CreatedEntry struct {
	ID         int64 // 0 when the response carried no id
	APIVersion string
	Entry      TimeEntry
}

// ListedEntry is a time entry as read back from Toggl.
type ListedEntry struct {
	ID          int64
	Description string
	ProjectID   *int64
	WorkspaceID *int64
	Tags        []string
	Start       time.Time
	Stop        *time.Time
	DurationSec int64 // Negative means running in Toggl API semantics
}
