package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-entry/internal/config"
	"toggl-entry/internal/usecase"
)

func TestNew_WithoutDSNSkipsLedger(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(context.Background(), log, config.Default(), "tok")
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Add.Ledger)
	assert.NotNil(t, a.List)
}

func TestNewOffline_EncodeEntry(t *testing.T) {
	cfg := config.Default()
	cfg.Toggl.APIVersion = "v8"
	a := NewOffline(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, "")

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e, err := usecase.AddInput{Description: "x", WorkspaceID: 1, ProjectID: 2, Start: start, Stop: start.Add(time.Minute)}.Entry()
	require.NoError(t, err)

	body, err := a.EncodeEntry(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"time_entry":{"description":"x","created_with":"Knob","start":"2024-03-01T09:00:00Z","duration":60,"wid":1,"pid":2}}`,
		string(body))
}
