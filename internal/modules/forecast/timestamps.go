package forecast

import (
	"fmt"
	"time"
	_ "time/tzdata" // market zones must resolve on hosts without a zoneinfo database

	"github.com/fuzzysystem/finance/internal/domain"
)

// Market close used for every forecast row: 16:00 US Eastern.
const (
	MarketTimezone    = "America/New_York"
	MarketCloseHour   = 16
	MarketCloseMinute = 0
)

// Normalizer pins calendar dates to a fixed wall-clock time in a zone.
type Normalizer struct {
	loc    *time.Location
	hour   int
	minute int
}

// NewNormalizer creates a normalizer for hour:minute in loc.
func NewNormalizer(loc *time.Location, hour, minute int) *Normalizer {
	return &Normalizer{loc: loc, hour: hour, minute: minute}
}

// NewMarketCloseNormalizer creates the 16:00 America/New_York normalizer.
func NewMarketCloseNormalizer() (*Normalizer, error) {
	loc, err := time.LoadLocation(MarketTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", MarketTimezone, err)
	}
	return NewNormalizer(loc, MarketCloseHour, MarketCloseMinute), nil
}

// Location returns the normalizer's zone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize returns the instant at which the normalizer's wall-clock time
// occurs on date's calendar day (taken in date's own location). It fails with
// ErrAmbiguousLocalTime when that wall-clock time occurs twice or not at all
// on the day.
func (n *Normalizer) Normalize(date time.Time) (time.Time, error) {
	y, m, d := date.Date()
	wall := time.Date(y, m, d, n.hour, n.minute, 0, 0, time.UTC)

	var matches []time.Time
	for _, offset := range n.offsetsAround(wall) {
		candidate := wall.Add(-time.Duration(offset) * time.Second).In(n.loc)
		if !sameWallClock(candidate, wall) || containsInstant(matches, candidate) {
			continue
		}
		matches = append(matches, candidate)
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s does not exist in %s",
			domain.ErrAmbiguousLocalTime, wall.Format("2006-01-02 15:04"), n.loc)
	default:
		return time.Time{}, fmt.Errorf("%w: %s occurs %d times in %s",
			domain.ErrAmbiguousLocalTime, wall.Format("2006-01-02 15:04"), len(matches), n.loc)
	}
}

// offsetsAround returns the distinct UTC offsets in effect within a day of
// the wall-clock time read as UTC.
func (n *Normalizer) offsetsAround(wall time.Time) []int {
	var offsets []int
	for _, probe := range []time.Time{wall.Add(-24 * time.Hour), wall, wall.Add(24 * time.Hour)} {
		_, offset := probe.In(n.loc).Zone()
		found := false
		for _, o := range offsets {
			if o == offset {
				found = true
				break
			}
		}
		if !found {
			offsets = append(offsets, offset)
		}
	}
	return offsets
}

func sameWallClock(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
