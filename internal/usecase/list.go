package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"toggl-entry/internal/domain"
	"toggl-entry/internal/ports"
)

// ListUseCase reads projects and entries back from Toggl.
type ListUseCase struct {
	Log   *slog.Logger
	Toggl ports.TogglClient
}

func (uc *ListUseCase) Projects(ctx context.Context) ([]domain.Project, error) {
	if uc.Toggl == nil {
		return nil, errors.New("usecase not initialized: missing toggl client")
	}
	projects, err := uc.Toggl.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	uc.Log.Debug("fetched projects", slog.Int("count", len(projects)))
	return projects, nil
}

func (uc *ListUseCase) Entries(ctx context.Context, from, to time.Time) ([]domain.ListedEntry, error) {
	if uc.Toggl == nil {
		return nil, errors.New("usecase not initialized: missing toggl client")
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid window: %s is before %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	uc.Log.Debug("fetching time entries", slog.Time("from", from), slog.Time("to", to))
	entries, err := uc.Toggl.ListTimeEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}
	uc.Log.Debug("fetched time entries", slog.Int("count", len(entries)))
	return entries, nil
}
