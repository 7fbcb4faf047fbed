package app

import (
	"context"
	"log/slog"

	msql "toggl-entry/internal/adapter/mysql"
	tg "toggl-entry/internal/adapter/toggl"
	"toggl-entry/internal/config"
	"toggl-entry/internal/domain"
	"toggl-entry/internal/migrate"
	"toggl-entry/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	toggl  *tg.Client
	ledger *msql.Ledger

	Add  *usecase.AddUseCase
	List *usecase.ListUseCase
}

// New builds the app. The MySQL ledger is only opened when a DSN is configured.
func New(ctx context.Context, log *slog.Logger, cfg config.Config, apiToken string) (*App, error) {
	a := NewOffline(log, cfg, apiToken)

	if cfg.MySQL.DSN == "" {
		log.Debug("ledger disabled, MYSQL_DSN not set")
		return a, nil
	}
	// Run migrations before opening the ledger for use
	if err := migrate.Run(ctx, cfg.MySQL.DSN, log); err != nil {
		return nil, err
	}
	ledger, err := msql.NewLedger(ctx, cfg.MySQL.DSN, log)
	if err != nil {
		return nil, err
	}
	a.ledger = ledger
	a.Add.Ledger = ledger
	return a, nil
}

// NewOffline builds the app without touching the network or the ledger.
// Used for dry runs; apiToken may be empty then.
func NewOffline(log *slog.Logger, cfg config.Config, apiToken string) *App {
	togglClient := tg.NewClient(tg.Options{
		BaseURL:     cfg.Toggl.BaseURL,
		APIToken:    apiToken,
		APIVersion:  cfg.Toggl.APIVersion,
		WorkspaceID: cfg.Toggl.WorkspaceID,
		Timeout:     cfg.Toggl.Timeout,
	}, log)

	return &App{
		toggl: togglClient,
		Add:   &usecase.AddUseCase{Log: log, Toggl: togglClient},
		List:  &usecase.ListUseCase{Log: log, Toggl: togglClient},
	}
}

// EncodeEntry returns the JSON body that would be posted for e.
func (a *App) EncodeEntry(e domain.TimeEntry) ([]byte, error) {
	return a.toggl.EncodeEntry(e)
}

func (a *App) Close() error {
	if a.ledger != nil {
		return a.ledger.Close()
	}
	return nil
}
