package stats

import "strings"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ProblemSummary is the slice of a problem the aggregations need.
type ProblemSummary struct {
	ProblemID  uint
	Difficulty string
	PatternID  uint
}

// DifficultyCounts tallies solved problems per tier. Unknown holds problems
// whose tier is not easy, medium or hard; they never count toward the three
// known buckets.
type DifficultyCounts struct {
	Easy    int `json:"easy"`
	Medium  int `json:"medium"`
	Hard    int `json:"hard"`
	Unknown int `json:"unknown"`
}

// NormalizeDifficulty lower-cases and trims a tier, returning "" for
// anything outside the known set.
func NormalizeDifficulty(tier string) string {
	switch t := strings.ToLower(strings.TrimSpace(tier)); t {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return t
	default:
		return ""
	}
}

func ClassifyDifficulty(problems []ProblemSummary) DifficultyCounts {
	var counts DifficultyCounts
	for _, p := range problems {
		switch NormalizeDifficulty(p.Difficulty) {
		case DifficultyEasy:
			counts.Easy++
		case DifficultyMedium:
			counts.Medium++
		case DifficultyHard:
			counts.Hard++
		default:
			counts.Unknown++
		}
	}
	return counts
}
