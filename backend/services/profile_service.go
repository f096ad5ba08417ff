package services

import (
	"context"
	"fmt"
	"time"

	"dsa-tracker/backend/models"
	"dsa-tracker/backend/stats"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB       *gorm.DB
	Catalog  *CatalogService
	Progress *ProgressService
	Logger   *zap.Logger
	// Now is the reference time for streaks.
	Now func() time.Time
}

func NewProfileService(db *gorm.DB, catalog *CatalogService, progress *ProgressService, logger *zap.Logger) *ProfileService {
	return &ProfileService{DB: db, Catalog: catalog, Progress: progress, Logger: logger, Now: time.Now}
}

// Summary builds the profile summary of a user. It is computed on every
// call and never cached.
func (s *ProfileService) Summary(ctx context.Context, userID uint) (stats.ProfileSummary, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return stats.ProfileSummary{}, notFound(err, ErrUserNotFound)
	}

	var (
		records       []stats.ProgressRecord
		totalProblems int
		patternsCount int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.Progress.Records(gctx, userID, false)
		return err
	})
	g.Go(func() error {
		var err error
		totalProblems, err = s.Catalog.TotalProblems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		patternsCount, err = s.Catalog.PatternsCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats.ProfileSummary{}, fmt.Errorf("load profile data: %w", err)
	}

	var solvedIDs []uint
	for _, r := range records {
		if r.Solved {
			solvedIDs = append(solvedIDs, r.ProblemID)
		}
	}
	solvedProblems, err := s.Catalog.ProblemSummaries(ctx, solvedIDs)
	if err != nil {
		return stats.ProfileSummary{}, fmt.Errorf("load solved problems: %w", err)
	}

	summary, err := stats.BuildSummary(stats.SummaryInput{
		User: &stats.UserIdentity{
			ID:             user.ID,
			FullName:       user.FullName,
			Username:       user.Username,
			Email:          user.Email,
			AvatarURL:      user.AvatarURL,
			PreferredSheet: user.PreferredSheet,
			CreatedAt:      user.CreatedAt,
			UpdatedAt:      user.UpdatedAt,
		},
		Records:        records,
		SolvedProblems: solvedProblems,
		TotalProblems:  totalProblems,
		PatternsCount:  patternsCount,
	}, s.Now())
	if err != nil {
		return stats.ProfileSummary{}, err
	}

	if n := summary.QuickStats.UnknownSolved; n > 0 {
		s.Logger.Warn("solved problems with unknown difficulty left out of tier counts",
			zap.Uint("user_id", userID), zap.Int("count", n))
	}
	return summary, nil
}
