package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey_RoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 2, 29, 0, 0, 0, 0, loc),
		time.Date(2024, 3, 10, 0, 0, 0, 0, loc), // DST starts
		time.Date(2024, 11, 3, 0, 0, 0, 0, loc), // DST ends
		time.Date(1999, 12, 31, 0, 0, 0, 0, loc),
	}

	for _, d := range dates {
		got, err := ParseDateKey(DateKey(d), loc)
		require.NoError(t, err)
		assert.True(t, d.Equal(got), "round trip of %s gave %s", d, got)
	}
}

func TestDateKey_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 5, 7, 23, 59, 59, 0, time.UTC)
	early := time.Date(2024, 5, 7, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, "2024-05-07", DateKey(late))
	assert.Equal(t, "2024-05-07", DateKey(early))
}

func TestDateKey_SortsChronologically(t *testing.T) {
	a := DateKey(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	b := DateKey(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := DateKey(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))

	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestParseDateKey_Malformed(t *testing.T) {
	for _, key := range []string{"", "2024-1-01", "2024/01/01", "2024-02-30", "yesterday"} {
		_, err := ParseDateKey(key, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDateKey, "key %q", key)
		assert.False(t, IsDateKey(key), "key %q", key)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want string
	}{
		{"month rollover", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2024-02-01"},
		{"leap day", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 1, "2024-02-29"},
		{"year rollover backwards", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), -1, "2023-12-31"},
		{"two weeks back", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), -14, "2023-12-27"},
		{"zero", time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC), 0, "2024-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddDays(tt.from, tt.n)
			assert.Equal(t, tt.want, DateKey(got))
			assert.Equal(t, 0, got.Hour())
			assert.Equal(t, 0, got.Minute())
		})
	}
}

func TestAddDays_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	before := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	after := AddDays(before, 2)

	assert.Equal(t, "2024-04-01", DateKey(after))
	assert.Equal(t, 0, after.Hour())
	assert.Equal(t, 2, DaysBetween(after, before))
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(today, today))
	assert.Equal(t, 1, DaysBetween(today, AddDays(today, -1)))
	assert.Equal(t, -3, DaysBetween(today, AddDays(today, 3)))
	assert.Equal(t, 366, DaysBetween(today, AddDays(today, -366)))
}

func TestToday_StripsTimeInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 21:30 UTC on the 14th is 02:30 on the 15th in UTC+5.
	now := time.Date(2024, 6, 14, 21, 30, 0, 0, time.UTC)

	got := Today(now, loc)

	assert.Equal(t, "2024-06-15", DateKey(got))
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 0, got.Hour())
}

func TestIsEditable(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		offset int
		want   bool
	}{
		{0, true},
		{-1, true},
		{-2, true},
		{-3, false},
		{1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEditable(today, AddDays(today, tt.offset)), "offset %d", tt.offset)
	}
}
