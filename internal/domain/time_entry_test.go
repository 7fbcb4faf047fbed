package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeEntry_Duration(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)

	cases := []struct {
		name string
		stop time.Time
		want int64
	}{
		{"equal", start, 0},
		{"ninety minutes", start.Add(90 * time.Minute), 5400},
		{"truncates sub-second", start.Add(2*time.Second + 999*time.Millisecond), 2},
		{"across days", start.Add(26 * time.Hour), 93600},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewTimeEntry("work", 1, 2, start, tc.stop)
			require.NoError(t, err)
			assert.Equal(t, tc.want, e.DurationSec)
			assert.Equal(t, CreatedWith, e.CreatedWith)
			assert.Equal(t, uint64(1), e.WorkspaceID)
			assert.Equal(t, uint64(2), e.ProjectID)
			assert.Equal(t, loc, e.Start.Location())
		})
	}
}

func TestNewTimeEntry_StopBeforeStart(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := NewTimeEntry("work", 1, 2, start, start.Add(-time.Nanosecond))
	if !errors.Is(err, ErrStopBeforeStart) {
		t.Fatalf("expected ErrStopBeforeStart, got %v", err)
	}
}

func TestTimeEntry_Stop(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e, err := NewTimeEntry("work", 1, 2, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, e.Stop().Equal(start.Add(time.Hour)))
}
