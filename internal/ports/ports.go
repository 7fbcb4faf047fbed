package ports

import (
	"context"
	"time"

	"toggl-entry/internal/domain"
)

// TogglClient talks to the Toggl Track API.
type TogglClient interface {
	CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (domain.CreatedEntry, error)
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.ListedEntry, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// Ledger keeps a local record of entries Toggl accepted.
type Ledger interface {
	RecordEntry(ctx context.Context, entry domain.CreatedEntry) error
}
