//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	msql "toggl-entry/internal/adapter/mysql"
	"toggl-entry/internal/domain"
	"toggl-entry/internal/migrate"
	"toggl-entry/internal/usecase"
)

type fakeToggl struct{ nextID int64 }

func (f *fakeToggl) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (domain.CreatedEntry, error) {
	return domain.CreatedEntry{ID: f.nextID, APIVersion: "v9", Entry: e}, nil
}

func (f *fakeToggl) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.ListedEntry, error) {
	return nil, nil
}

func (f *fakeToggl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return nil, nil
}

func TestAddToMySQLLedger_UpsertsByRemoteID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8.0",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      "testdb",
			"MYSQL_ROOT_PASSWORD": "secret",
			"MYSQL_USER":          "test",
			"MYSQL_PASSWORD":      "pass",
		},
		WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(90 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start mysql container: %v", err)
	}
	t.Cleanup(func() { _ = mysqlC.Terminate(context.Background()) })

	host, err := mysqlC.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := mysqlC.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true", "test", "pass", host, port.Port(), "testdb")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := migrate.Run(ctx, dsn, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Second run must be a no-op.
	if err := migrate.Run(ctx, dsn, logger); err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	ledger, err := msql.NewLedger(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("mysql ledger: %v", err)
	}
	t.Cleanup(func() { _ = ledger.Close() })

	toggl := &fakeToggl{nextID: 1}
	uc := &usecase.AddUseCase{Log: logger, Toggl: toggl, Ledger: ledger}
	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	in := usecase.AddInput{Description: "Dev work", WorkspaceID: 456, ProjectID: 123, Start: start, Stop: start.Add(90 * time.Minute)}

	if _, err := uc.Run(ctx, in); err != nil {
		t.Fatalf("add run: %v", err)
	}
	toggl.nextID = 2
	if _, err := uc.Run(ctx, in); err != nil {
		t.Fatalf("add run 2: %v", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM toggl_created_entries").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	// Recording the same remote id again updates the row in place.
	in.Description = "Dev work (edited)"
	if _, err := uc.Run(ctx, in); err != nil {
		t.Fatalf("add run 3: %v", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM toggl_created_entries").Scan(&count); err != nil {
		t.Fatalf("count 2: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows after upsert, got %d", count)
	}
	var desc string
	var dur int64
	if err := db.QueryRowContext(ctx, "SELECT description, duration_sec FROM toggl_created_entries WHERE remote_id = 2").Scan(&desc, &dur); err != nil {
		t.Fatalf("select: %v", err)
	}
	if desc != "Dev work (edited)" || dur != 5400 {
		t.Fatalf("unexpected row: %q %d", desc, dur)
	}
}
