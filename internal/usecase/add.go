package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toggl-entry/internal/domain"
	"toggl-entry/internal/ports"
)

// AddInput carries the command-line values for one entry.
type AddInput struct {
	Description string
	WorkspaceID uint64
	ProjectID   uint64
	Start       time.Time
	Stop        time.Time
}

// AddUseCase creates one time entry in Toggl and optionally records it locally.
type AddUseCase struct {
	Log    *slog.Logger
	Toggl  ports.TogglClient
	Ledger ports.Ledger // nil disables the ledger
}

// Entry validates the input and builds the entry without touching the network.
func (in AddInput) Entry() (domain.TimeEntry, error) {
	return domain.NewTimeEntry(in.Description, in.WorkspaceID, in.ProjectID, in.Start, in.Stop)
}

func (uc *AddUseCase) Run(ctx context.Context, in AddInput) (domain.CreatedEntry, error) {
	if uc.Toggl == nil {
		return domain.CreatedEntry{}, errors.New("usecase not initialized: missing toggl client")
	}
	entry, err := in.Entry()
	if err != nil {
		return domain.CreatedEntry{}, err
	}
	uc.Log.Info("creating time entry",
		slog.Uint64("workspace_id", entry.WorkspaceID),
		slog.Uint64("project_id", entry.ProjectID),
		slog.Time("start", entry.Start),
		slog.Int64("duration_sec", entry.DurationSec),
	)

	created, err := uc.Toggl.CreateTimeEntry(ctx, entry)
	if err != nil {
		return domain.CreatedEntry{}, err
	}
	uc.Log.Info("time entry created", slog.Int64("id", created.ID))

	if uc.Ledger != nil {
		// The entry exists remotely by now, so a ledger failure must not fail the run.
		if err := uc.Ledger.RecordEntry(ctx, created); err != nil {
			uc.Log.Error("failed to record entry in ledger", slog.String("error", err.Error()))
		}
	}
	return created, nil
}
