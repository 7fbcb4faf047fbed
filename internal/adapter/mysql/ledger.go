package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"toggl-entry/internal/domain"
)

// Ledger implements ports.Ledger by writing to a MySQL table.
type Ledger struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// NewLedger opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewLedger(ctx context.Context, dsn string, log *slog.Logger) (*Ledger, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// One short-lived process, one writer.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return NewLedgerFromDB(db, log), nil
}

// NewLedgerFromDB wraps an already opened handle.
func NewLedgerFromDB(db *sql.DB, log *slog.Logger) *Ledger {
	return &Ledger{db: db, log: log, now: time.Now}
}

// RecordEntry stores one created entry. Re-recording the same remote id updates the row.
func (l *Ledger) RecordEntry(ctx context.Context, e domain.CreatedEntry) error {
	const q = `
INSERT INTO toggl_created_entries
  (submission_id, remote_id, description, workspace_id, project_id, start, duration_sec, created_with, api_version, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  description=VALUES(description),
  workspace_id=VALUES(workspace_id),
  project_id=VALUES(project_id),
  start=VALUES(start),
  duration_sec=VALUES(duration_sec),
  created_with=VALUES(created_with),
  api_version=VALUES(api_version);
`
	// Toggl ids are unique; an unknown id is stored as NULL so the unique key ignores it.
	var remote interface{}
	if e.ID != 0 {
		remote = e.ID
	}
	id := uuid.New().String()
	if _, err := l.db.ExecContext(
		ctx,
		q,
		id,
		remote,
		e.Entry.Description,
		e.Entry.WorkspaceID,
		e.Entry.ProjectID,
		e.Entry.Start.UTC(),
		e.Entry.DurationSec,
		e.Entry.CreatedWith,
		e.APIVersion,
		l.now().UTC(),
	); err != nil {
		return err
	}
	l.log.Info("ledger recorded entry", slog.String("submission_id", id), slog.Int64("remote_id", e.ID))
	return nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (l *Ledger) Close() error { return l.db.Close() }
