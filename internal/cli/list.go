package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"toggl-entry/internal/timeparse"
)

func newProjectsCmd(g *globalOptions) *cobra.Command {
	var workspaceID uint64
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, to find ids for add",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspaceID != 0 {
				g.cfg.Toggl.WorkspaceID = workspaceID
			}
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.List.Projects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWORKSPACE\tNAME\tACTIVE")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%d\t%s\t%t\n", p.ID, p.WorkspaceID, p.Name, p.Active)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Uint64VarP(&workspaceID, "workspace-id", "w", 0, "Only list projects of this workspace")
	return cmd
}

func newEntriesCmd(g *globalOptions) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List time entries in a window (default: last 24h)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			end := time.Now()
			if to != "" {
				t, err := timeparse.Parse(to, time.Local)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				end = t
			}
			start := end.Add(-24 * time.Hour)
			if from != "" {
				t, err := timeparse.Parse(from, time.Local)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				start = t
			}

			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.List.Entries(cmd.Context(), start, end)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTART\tDURATION\tPROJECT\tDESCRIPTION")
			for _, e := range entries {
				dur := "running"
				if e.DurationSec >= 0 {
					dur = formatDuration(time.Duration(e.DurationSec) * time.Second)
				}
				project := "-"
				if e.ProjectID != nil {
					project = fmt.Sprint(*e.ProjectID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					e.ID, e.Start.Local().Format("2006-01-02 15:04"), dur, project, e.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Window start, ISO8601 (default: --to minus 24h)")
	cmd.Flags().StringVar(&to, "to", "", "Window end, ISO8601 (default: now)")
	return cmd
}
