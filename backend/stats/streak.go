package stats

import (
	"sort"
	"time"
)

// StreakResult is the day-level activity streak of a user.
type StreakResult struct {
	CurrentStreak int     `json:"currentStreak"`
	BestStreak    int     `json:"bestStreak"`
	LastActiveDay *string `json:"lastSolvedDate"`
}

// ActiveDays normalizes timestamps to unique days, most recent first.
func ActiveDays(timestamps []time.Time) []Day {
	seen := make(map[Day]struct{}, len(timestamps))
	days := make([]Day, 0, len(timestamps))
	for _, ts := range timestamps {
		day := DayKey(ts)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[j].Before(days[i]) })
	return days
}

// CalculateStreak computes current and best consecutive-day streaks from
// solve timestamps. The current streak only counts when the latest active
// day is today or yesterday relative to now.
func CalculateStreak(timestamps []time.Time, now time.Time) StreakResult {
	days := ActiveDays(timestamps)
	if len(days) == 0 {
		return StreakResult{}
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].DaysSince(days[i]) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}

	current := 0
	today := DayKey(now)
	if days[0] == today || days[0] == today.AddDays(-1) {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].DaysSince(days[i]) != 1 {
				break
			}
			current++
		}
	}

	last := days[0].String()
	return StreakResult{
		CurrentStreak: current,
		BestStreak:    best,
		LastActiveDay: &last,
	}
}
