package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, September 2 2026.
var wednesday = time.Date(2026, time.September, 2, 14, 30, 0, 0, time.UTC)

func TestParseDate_TodayTomorrow(t *testing.T) {
	t.Parallel()

	d, ok := parseDate("today", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate("tomorrow", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_WeekdayIsNextOccurrence(t *testing.T) {
	t.Parallel()

	// From Wednesday, "friday" is two days out.
	d, ok := parseDate("friday", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Weekday(time.Friday), d.Weekday())
	assert.Equal(t, time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC), d)

	// Same weekday as the base jumps a full week.
	d, ok = parseDate("wednesday", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.September, 9, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_NextWeekAdvancesToMonday(t *testing.T) {
	t.Parallel()

	// "tuesday next week" from Wednesday: past the upcoming Monday
	// (Sep 7), landing on Tuesday Sep 8.
	d, ok := parseDate("tuesday next week", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_MonthDayRollsForward(t *testing.T) {
	t.Parallel()

	// March 5 already passed in 2026 relative to a September base.
	d, ok := parseDate("march 5", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, time.March, 5, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate("dec 15", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_Numeric(t *testing.T) {
	t.Parallel()

	d, ok := parseDate("10/15", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate("1/5/2027", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_Unparseable(t *testing.T) {
	t.Parallel()

	_, ok := parseDate("whenever works", wednesday)
	assert.False(t, ok)
}

func TestParseDateRange_NextWeekAppliesToBothEndpoints(t *testing.T) {
	t.Parallel()

	start, end, ok := parseDateRange("tuesday and wednesday next week", wednesday)
	require.True(t, ok)

	// Start is the Tuesday strictly after the upcoming Monday; end is
	// one day later.
	assert.Equal(t, time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.September, 9, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, start.Before(end))
}

func TestParseDateRange_FromToReorders(t *testing.T) {
	t.Parallel()

	// Endpoints are ordered by value, not by mention order.
	start, end, ok := parseDateRange("from 10/20 to 10/12", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDateRange_SingleDate(t *testing.T) {
	t.Parallel()

	start, end, ok := parseDateRange("tomorrow", wednesday)
	require.True(t, ok)
	assert.Equal(t, start, end)
}
