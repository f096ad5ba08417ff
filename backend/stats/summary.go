package stats

import (
	"errors"
	"time"
)

// ErrUserNotResolved is returned when the summary has no user to describe.
var ErrUserNotResolved = errors.New("user identity not resolved")

const defaultPreferredSheet = "Default"

// UserIdentity carries the account fields echoed back in the summary.
type UserIdentity struct {
	ID             uint
	FullName       string
	Username       string
	Email          string
	AvatarURL      string
	PreferredSheet string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SummaryInput is everything BuildSummary needs, already fetched.
type SummaryInput struct {
	User           *UserIdentity
	Records        []ProgressRecord
	SolvedProblems []ProblemSummary
	TotalProblems  int
	PatternsCount  int
}

type ProfileSummary struct {
	User       UserSection     `json:"user"`
	Account    AccountSection  `json:"account"`
	Progress   ProgressSection `json:"progress"`
	Streak     StreakResult    `json:"streak"`
	QuickStats QuickStats      `json:"quickStats"`
}

type UserSection struct {
	FullName  string  `json:"fullName"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
}

type AccountSection struct {
	AccountCreatedAt time.Time `json:"accountCreatedAt"`
	LastActiveAt     time.Time `json:"lastActiveAt"`
	PreferredSheet   string    `json:"preferredSheet"`
}

type ProgressSection struct {
	TotalProblems             int     `json:"totalProblems"`
	SolvedProblems            int     `json:"solvedProblems"`
	PendingProblems           int     `json:"pendingProblems"`
	RevisionProblems          int     `json:"revisionProblems"`
	OverallProgressPercentage float64 `json:"overallProgressPercentage"`
}

type QuickStats struct {
	PatternsCount int `json:"patternsCount"`
	EasySolved    int `json:"easySolved"`
	MediumSolved  int `json:"mediumSolved"`
	HardSolved    int `json:"hardSolved"`
	UnknownSolved int `json:"unknownSolved,omitempty"`
}

// Percentage returns part/total*100 rounded half-up to two decimals, or 0
// when total is 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	if part <= 0 {
		return 0
	}
	// hundredths of a percent, rounded half-up in integers so exact
	// .xx5 ratios are not lost to float error
	t := int64(total)
	q := (int64(part)*20000 + t) / (2 * t)
	return float64(q) / 100
}

// BuildSummary assembles the profile summary. It only fails when the user
// is missing; empty collections produce zeroed sections.
func BuildSummary(in SummaryInput, now time.Time) (ProfileSummary, error) {
	if in.User == nil || in.User.ID == 0 {
		return ProfileSummary{}, ErrUserNotResolved
	}

	var solved, revision int
	solvedAt := make([]time.Time, 0, len(in.Records))
	for _, r := range in.Records {
		if r.Solved {
			solved++
			solvedAt = append(solvedAt, r.LastModifiedAt)
		}
		if r.ReviseLater {
			revision++
		}
	}

	total := max(in.TotalProblems, 0)
	difficulty := ClassifyDifficulty(in.SolvedProblems)

	var avatar *string
	if in.User.AvatarURL != "" {
		a := in.User.AvatarURL
		avatar = &a
	}
	sheet := in.User.PreferredSheet
	if sheet == "" {
		sheet = defaultPreferredSheet
	}

	return ProfileSummary{
		User: UserSection{
			FullName:  in.User.FullName,
			Username:  in.User.Username,
			Email:     in.User.Email,
			AvatarURL: avatar,
		},
		Account: AccountSection{
			AccountCreatedAt: in.User.CreatedAt,
			LastActiveAt:     in.User.UpdatedAt,
			PreferredSheet:   sheet,
		},
		Progress: ProgressSection{
			TotalProblems:             total,
			SolvedProblems:            solved,
			PendingProblems:           max(total-solved, 0),
			RevisionProblems:          revision,
			OverallProgressPercentage: Percentage(solved, total),
		},
		Streak: CalculateStreak(solvedAt, now),
		QuickStats: QuickStats{
			PatternsCount: in.PatternsCount,
			EasySolved:    difficulty.Easy,
			MediumSolved:  difficulty.Medium,
			HardSolved:    difficulty.Hard,
			UnknownSolved: difficulty.Unknown,
		},
	}, nil
}
