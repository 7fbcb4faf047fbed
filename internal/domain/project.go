package domain

import "time"

// Project is a Toggl project as listed by the "projects" command, mainly so
// users can look up the ids that "add" needs.
type Project struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Active      bool
	Private     bool
	Color       string
	ClientID    *int64
	At          time.Time // Last update timestamp from Toggl
}
