package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func daysAgo(n int, hour int) time.Time {
	return time.Date(2024, 3, 15-n, hour, 0, 0, 0, time.UTC)
}

func TestDayKey(t *testing.T) {
	morning := time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DayKey(morning), DayKey(night))
	assert.NotEqual(t, DayKey(night), DayKey(night.Add(time.Second)))

	// 2024-03-15 23:30 in UTC-5 is 2024-03-16 in UTC.
	est := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "2024-03-16", DayKey(time.Date(2024, 3, 15, 23, 30, 0, 0, est)).String())

	d := DayKey(night)
	assert.Equal(t, d, DayKey(d.Time()), "normalizing a normalized day is a no-op")
	assert.Equal(t, 1, d.DaysSince(d.AddDays(-1)))
}

func TestCalculateStreakEmpty(t *testing.T) {
	res := CalculateStreak(nil, now)
	assert.Equal(t, StreakResult{}, res)
	assert.Nil(t, res.LastActiveDay)
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []time.Time
		current    int
		best       int
		last       string
	}{
		{"only today", []time.Time{daysAgo(0, 9)}, 1, 1, "2024-03-15"},
		{"today and yesterday", []time.Time{daysAgo(0, 9), daysAgo(1, 22)}, 2, 2, "2024-03-15"},
		{"only yesterday keeps streak alive", []time.Time{daysAgo(1, 8)}, 1, 1, "2024-03-14"},
		{"gap of two days breaks the run", []time.Time{daysAgo(0, 9), daysAgo(3, 9)}, 1, 1, "2024-03-15"},
		{"stale run is not current", []time.Time{daysAgo(2, 9), daysAgo(3, 9), daysAgo(4, 9)}, 0, 3, "2024-03-13"},
		{"same day counted once", []time.Time{daysAgo(0, 1), daysAgo(0, 5), daysAgo(0, 23)}, 1, 1, "2024-03-15"},
		{
			"best older than current",
			[]time.Time{daysAgo(0, 9), daysAgo(1, 9), daysAgo(5, 9), daysAgo(6, 9), daysAgo(7, 9), daysAgo(8, 9)},
			2, 4, "2024-03-15",
		},
		{
			"unordered input",
			[]time.Time{daysAgo(2, 9), daysAgo(0, 9), daysAgo(1, 9), daysAgo(1, 3)},
			3, 3, "2024-03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateStreak(tt.timestamps, now)
			assert.Equal(t, tt.current, res.CurrentStreak)
			assert.Equal(t, tt.best, res.BestStreak)
			require.NotNil(t, res.LastActiveDay)
			assert.Equal(t, tt.last, *res.LastActiveDay)
			assert.GreaterOrEqual(t, res.BestStreak, res.CurrentStreak)
		})
	}
}

func TestCalculateStreakBestNeverBelowCurrent(t *testing.T) {
	var timestamps []time.Time
	for i := 0; i < 60; i++ {
		if i%7 == 3 || i%11 == 5 {
			continue
		}
		timestamps = append(timestamps, daysAgo(i, i%24))
		res := CalculateStreak(timestamps, now)
		assert.GreaterOrEqual(t, res.BestStreak, res.CurrentStreak)
		assert.GreaterOrEqual(t, res.CurrentStreak, 0)
	}
}

func TestActiveDaysDescending(t *testing.T) {
	days := ActiveDays([]time.Time{daysAgo(3, 1), daysAgo(0, 1), daysAgo(3, 20), daysAgo(1, 1)})
	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-15", days[0].String())
	assert.Equal(t, "2024-03-14", days[1].String())
	assert.Equal(t, "2024-03-12", days[2].String())
}
