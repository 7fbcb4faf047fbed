package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"toggl-entry/internal/app"
	"toggl-entry/internal/config"
	"toggl-entry/internal/credentials"
)

// globalOptions are shared by every command.
type globalOptions struct {
	configPath string
	tokenFile  string
	verbose    bool

	log *slog.Logger
	cfg config.Config
}

// NewRootCmd builds the toggl-entry command tree. Running the root command
// without a subcommand behaves like "add".
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	add := &addOptions{global: g}

	rootCmd := &cobra.Command{
		Use:   "toggl-entry",
		Short: "Create a Toggl Track time entry from the command line",
		Long: `toggl-entry creates one time entry in Toggl Track.

The API token is read from a plaintext file (./api_token by default).
Running toggl-entry without a subcommand is the same as "toggl-entry add".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return add.run(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	pf.StringVar(&g.tokenFile, "token-file", "", "Path to the plaintext API token file (default ./api_token)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")

	add.bindFlags(rootCmd.Flags())

	rootCmd.AddCommand(newAddCmd(g))
	rootCmd.AddCommand(newProjectsCmd(g))
	rootCmd.AddCommand(newEntriesCmd(g))
	return rootCmd
}

// Execute runs the command tree with ctx and the given arguments.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func (g *globalOptions) setup(cmd *cobra.Command) error {
	// Logger
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// Config
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if g.tokenFile != "" {
		cfg.Toggl.TokenFile = g.tokenFile
	}
	g.cfg = cfg
	return nil
}

// openApp reads the token and wires the app. The token is read once per run.
func (g *globalOptions) openApp(ctx context.Context) (*app.App, error) {
	token, err := credentials.ReadToken(g.cfg.Toggl.TokenFile)
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, g.log, g.cfg, token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return a, nil
}
