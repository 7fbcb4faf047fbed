package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	tg "toggl-entry/internal/adapter/toggl"
	"toggl-entry/internal/app"
	"toggl-entry/internal/timeparse"
	"toggl-entry/internal/usecase"
)

type addOptions struct {
	global *globalOptions

	description string
	workspaceID uint64
	projectID   uint64
	start       string
	stop        string
	dryRun      bool
}

func newAddCmd(g *globalOptions) *cobra.Command {
	o := &addOptions{global: g}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create one time entry",
		Example: `  toggl-entry add -d "Write report" -w 1856420 -p 42 \
    --start 2024-03-01T09:00:00 --stop 2024-03-01T10:30:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.bindFlags(cmd.Flags())
	return cmd
}

func (o *addOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.description, "description", "d", "", "Description for the task")
	fs.Uint64VarP(&o.workspaceID, "workspace-id", "w", 0, "Workspace id (default from config)")
	fs.Uint64VarP(&o.projectID, "project-id", "p", 0, "Project id (default from config)")
	fs.StringVar(&o.start, "start", "", "Start time, ISO8601 (offset optional, local time assumed)")
	fs.StringVar(&o.stop, "stop", "", "Stop time, ISO8601 (offset optional, local time assumed)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print the request body instead of sending it")
}

func (o *addOptions) input() (usecase.AddInput, error) {
	cfg := o.global.cfg.Toggl
	in := usecase.AddInput{
		Description: o.description,
		WorkspaceID: o.workspaceID,
		ProjectID:   o.projectID,
	}
	if in.Description == "" {
		return in, errors.New("--description is required")
	}
	if in.WorkspaceID == 0 {
		in.WorkspaceID = cfg.WorkspaceID
	}
	if in.WorkspaceID == 0 {
		return in, errors.New("--workspace-id is required")
	}
	if in.ProjectID == 0 {
		in.ProjectID = cfg.ProjectID
	}
	if in.ProjectID == 0 {
		return in, errors.New("--project-id is required")
	}
	if o.start == "" || o.stop == "" {
		return in, errors.New("--start and --stop are required")
	}

	var err error
	if in.Start, err = timeparse.Parse(o.start, time.Local); err != nil {
		return in, fmt.Errorf("--start: %w", err)
	}
	if in.Stop, err = timeparse.Parse(o.stop, time.Local); err != nil {
		return in, fmt.Errorf("--stop: %w", err)
	}
	return in, nil
}

func (o *addOptions) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	g := o.global
	out := cmd.OutOrStdout()

	in, err := o.input()
	if err != nil {
		return err
	}

	if o.dryRun {
		entry, err := in.Entry()
		if err != nil {
			return err
		}
		body, err := app.NewOffline(g.log, g.cfg, "").EncodeEntry(entry)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(body))
		return nil
	}

	// Validate before reading the token so bad input never reaches the network.
	if _, err := in.Entry(); err != nil {
		return err
	}

	a, err := g.openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.Add.Run(ctx, in)
	if err != nil {
		var se *tg.StatusError
		if errors.As(err, &se) {
			fmt.Fprintln(cmd.ErrOrStderr(), se.Body)
			fmt.Fprintln(cmd.ErrOrStderr(), se.Code)
			return fmt.Errorf("aborting, status wasn't 200: %w", err)
		}
		return err
	}

	fmt.Fprintf(out, "Created time entry %d: %q, %s from %s\n",
		created.ID,
		created.Entry.Description,
		formatDuration(time.Duration(created.Entry.DurationSec)*time.Second),
		created.Entry.Start.Format(time.RFC3339),
	)
	return nil
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	} else if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
