package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/domain"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewMarketCloseNormalizer()
	require.NoError(t, err)
	return n
}

func TestNormalize_MarketCloseAcrossDST(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		date        string
		expectedUTC string
	}{
		{"2025-02-24", "2025-02-24T21:00:00Z"}, // EST, UTC-5
		{"2025-03-07", "2025-03-07T21:00:00Z"},
		{"2025-03-10", "2025-03-10T20:00:00Z"}, // EDT, UTC-4
		{"2025-07-04", "2025-07-04T20:00:00Z"},
		{"2025-11-03", "2025-11-03T21:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := n.Normalize(mustDate(t, tt.date))
			require.NoError(t, err)

			assert.Equal(t, tt.expectedUTC, got.UTC().Format(time.RFC3339))
			assert.Equal(t, 16, got.Hour())
			assert.Equal(t, MarketTimezone, got.Location().String())
		})
	}
}

func TestNormalize_TransitionDaysAtCloseAreUnambiguous(t *testing.T) {
	n := newTestNormalizer(t)

	for _, date := range []string{"2025-03-09", "2025-11-02"} {
		got, err := n.Normalize(mustDate(t, date))
		require.NoError(t, err, date)
		assert.Equal(t, 16, got.Hour())
		assert.Equal(t, date, got.Format("2006-01-02"))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer(t)

	for _, date := range []string{"2025-01-02", "2025-03-09", "2025-06-30", "2025-11-02", "2025-12-31"} {
		once, err := n.Normalize(mustDate(t, date))
		require.NoError(t, err)
		twice, err := n.Normalize(once)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice), date)
	}
}

func TestNormalize_UsesCalendarDateOfInput(t *testing.T) {
	n := newTestNormalizer(t)

	tokyo := time.FixedZone("JST", 9*3600)
	got, err := n.Normalize(time.Date(2025, 2, 25, 1, 0, 0, 0, tokyo))
	require.NoError(t, err)
	assert.Equal(t, "2025-02-25", got.Format("2006-01-02"))
}

func TestNormalize_AmbiguousWallClockFails(t *testing.T) {
	loc, err := time.LoadLocation(MarketTimezone)
	require.NoError(t, err)

	// 01:30 happens twice when clocks fall back.
	fallBack := NewNormalizer(loc, 1, 30)
	_, err = fallBack.Normalize(mustDate(t, "2025-11-02"))
	assert.ErrorIs(t, err, domain.ErrAmbiguousLocalTime)

	// 02:30 never happens when clocks spring forward.
	springForward := NewNormalizer(loc, 2, 30)
	_, err = springForward.Normalize(mustDate(t, "2025-03-09"))
	assert.ErrorIs(t, err, domain.ErrAmbiguousLocalTime)

	_, err = springForward.Normalize(mustDate(t, "2025-03-10"))
	assert.NoError(t, err)
}
