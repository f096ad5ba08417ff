package stats

import (
	"math"
	"time"
)

// ProgressRecord is one user's completion state for one problem.
type ProgressRecord struct {
	UserID         uint
	ProblemID      uint
	Solved         bool
	ReviseLater    bool
	LastModifiedAt time.Time
}

// PatternTotal is the number of registered problems in a pattern.
type PatternTotal struct {
	PatternID   uint   `json:"patternId"`
	PatternName string `json:"patternName"`
	TotalCount  int    `json:"totalCount"`
}

type PatternProgress struct {
	PatternID      uint    `json:"patternId"`
	PatternName    string  `json:"patternName"`
	CompletedCount int     `json:"completedCount"`
	TotalCount     int     `json:"totalCount"`
	Ratio          float64 `json:"ratio"`
}

// CompletionRatio is completed/total, or 0 for a pattern with no problems.
func CompletionRatio(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(1, float64(completed)/float64(total))
}

// AggregatePatterns left-joins the pattern totals against the number of
// solved records per pattern. Solved records whose problem is not in
// problems are skipped, and solved patterns missing from totals are dropped.
// The output keeps the order of totals.
func AggregatePatterns(totals []PatternTotal, records []ProgressRecord, problems []ProblemSummary) []PatternProgress {
	patternOf := make(map[uint]uint, len(problems))
	for _, p := range problems {
		patternOf[p.ProblemID] = p.PatternID
	}

	solved := make(map[uint]int)
	for _, r := range records {
		if !r.Solved {
			continue
		}
		patternID, ok := patternOf[r.ProblemID]
		if !ok {
			continue
		}
		solved[patternID]++
	}

	out := make([]PatternProgress, 0, len(totals))
	for _, t := range totals {
		completed := solved[t.PatternID]
		out = append(out, PatternProgress{
			PatternID:      t.PatternID,
			PatternName:    t.PatternName,
			CompletedCount: completed,
			TotalCount:     t.TotalCount,
			Ratio:          CompletionRatio(completed, t.TotalCount),
		})
	}
	return out
}
