// Package stats turns already-fetched progress records into streaks,
// difficulty tallies, per-pattern completion and the profile summary.
// Nothing here touches the database; every function is deterministic for
// the same inputs and the same reference time.
package stats

import "time"

// DayLayout is the calendar-date format used for day keys in responses.
const DayLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day is a calendar day in UTC, stored as whole days since the Unix epoch.
// Two timestamps normalize to the same Day iff they fall on the same UTC
// date, so Day values are safe to compare with == and use as map keys.
type Day struct {
	n int64
}

// DayKey normalizes t to its UTC calendar day.
func DayKey(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{n: time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay}
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time { return time.Unix(d.n*secondsPerDay, 0).UTC() }

func (d Day) String() string { return d.Time().Format(DayLayout) }

func (d Day) Before(o Day) bool { return d.n < o.n }

// AddDays shifts the day by n calendar days.
func (d Day) AddDays(n int) Day { return Day{n: d.n + int64(n)} }

// DaysSince returns the number of calendar days from o to d.
func (d Day) DaysSince(o Day) int { return int(d.n - o.n) }
