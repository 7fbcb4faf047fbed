package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	berlin := time.FixedZone("Berlin", 2*3600)

	t.Run("rfc3339 keeps offset", func(t *testing.T) {
		got, err := Parse("2024-03-01T09:00:00+01:00", berlin)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01T09:00:00+01:00", got.Format(time.RFC3339))
	})

	t.Run("local without offset", func(t *testing.T) {
		got, err := Parse("2024-03-01T09:00:00", berlin)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-01T09:00:00+02:00", got.Format(time.RFC3339))
	})

	t.Run("space separator without seconds", func(t *testing.T) {
		got, err := Parse("2024-03-01 17:30", berlin)
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2024, 3, 1, 17, 30, 0, 0, berlin)))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse("yesterday", berlin)
		assert.Error(t, err)
	})
}
