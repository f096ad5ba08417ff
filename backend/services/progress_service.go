package services

import (
	"context"
	"errors"
	"time"

	"dsa-tracker/backend/models"
	"dsa-tracker/backend/stats"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressUpdate lists every field a client may change on a progress
// record. Nil fields are left untouched.
type ProgressUpdate struct {
	ProblemID   uint    `json:"problemId" validate:"required"`
	Solved      *bool   `json:"solved"`
	ReviseLater *bool   `json:"reviseLater"`
	Notes       *string `json:"notes" validate:"omitempty,max=20000"`
}

type NoteInput struct {
	Notes string `json:"notes" validate:"max=20000"`
}

// ProgressEntry is a progress record with its problem and pattern name.
type ProgressEntry struct {
	ID          uint          `json:"id"`
	ProblemID   uint          `json:"problemId"`
	Solved      bool          `json:"solved"`
	ReviseLater bool          `json:"reviseLater"`
	Notes       string        `json:"notes"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Problem     *ProblemBrief `json:"problem"`
}

type ProblemBrief struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Difficulty  string `json:"difficulty"`
	PatternID   uint   `json:"patternId"`
	PatternName string `json:"patternName"`
}

type ProgressService struct {
	DB      *gorm.DB
	Catalog *CatalogService
	Logger  *zap.Logger
}

func NewProgressService(db *gorm.DB, catalog *CatalogService, logger *zap.Logger) *ProgressService {
	return &ProgressService{DB: db, Catalog: catalog, Logger: logger}
}

// Upsert creates or updates the caller's record for a problem. The write is
// a single INSERT .. ON CONFLICT on (user_id, problem_id), so concurrent
// first updates for the same problem cannot collide on the unique index.
func (s *ProgressService) Upsert(ctx context.Context, userID uint, in ProgressUpdate) (*models.Progress, error) {
	var progress models.Progress
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var problem models.Problem
		if err := tx.Select("id").First(&problem, in.ProblemID).Error; err != nil {
			return notFound(err, ErrProblemNotFound)
		}

		row := models.Progress{UserID: userID, ProblemID: in.ProblemID}
		in.apply(&row)
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "problem_id"}},
			DoUpdates: clause.AssignmentColumns(in.columns()),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		return tx.Where("user_id = ? AND problem_id = ?", userID, in.ProblemID).First(&progress).Error
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Debug("progress updated",
		zap.Uint("user_id", userID), zap.Uint("problem_id", in.ProblemID), zap.Bool("solved", progress.Solved))
	return &progress, nil
}

func (in ProgressUpdate) apply(p *models.Progress) {
	if in.Solved != nil {
		p.Solved = *in.Solved
	}
	if in.ReviseLater != nil {
		p.ReviseLater = *in.ReviseLater
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
}

// columns lists what an existing row takes from the update.
func (in ProgressUpdate) columns() []string {
	cols := []string{"updated_at"}
	if in.Solved != nil {
		cols = append(cols, "solved")
	}
	if in.ReviseLater != nil {
		cols = append(cols, "revise_later")
	}
	if in.Notes != nil {
		cols = append(cols, "notes")
	}
	return cols
}

// ListForUser returns every record of the user, most recently changed first.
func (s *ProgressService) ListForUser(ctx context.Context, userID uint) ([]ProgressEntry, error) {
	var rows []models.Progress
	err := s.DB.WithContext(ctx).
		Preload("Problem", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "difficulty", "pattern_id")
		}).
		Preload("Problem.Pattern", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ProgressEntry, 0, len(rows))
	for _, r := range rows {
		entry := ProgressEntry{
			ID:          r.ID,
			ProblemID:   r.ProblemID,
			Solved:      r.Solved,
			ReviseLater: r.ReviseLater,
			Notes:       r.Notes,
			UpdatedAt:   r.UpdatedAt,
		}
		if r.Problem != nil {
			entry.Problem = &ProblemBrief{
				ID:         r.Problem.ID,
				Title:      r.Problem.Title,
				Difficulty: r.Problem.Difficulty,
				PatternID:  r.Problem.PatternID,
			}
			if r.Problem.Pattern != nil {
				entry.Problem.PatternName = r.Problem.Pattern.Name
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Records loads the user's progress in the shape the stats package reads.
func (s *ProgressService) Records(ctx context.Context, userID uint, solvedOnly bool) ([]stats.ProgressRecord, error) {
	q := s.DB.WithContext(ctx).Model(&models.Progress{}).Where("user_id = ?", userID)
	if solvedOnly {
		q = q.Where("solved = ?", true)
	}

	var rows []models.Progress
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]stats.ProgressRecord, len(rows))
	for i, r := range rows {
		records[i] = stats.ProgressRecord{
			UserID:         r.UserID,
			ProblemID:      r.ProblemID,
			Solved:         r.Solved,
			ReviseLater:    r.ReviseLater,
			LastModifiedAt: r.UpdatedAt,
		}
	}
	return records, nil
}

// PatternProgress reports completed/total problems for every pattern.
func (s *ProgressService) PatternProgress(ctx context.Context, userID uint) ([]stats.PatternProgress, error) {
	records, err := s.Records(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	problems, err := s.Catalog.ProblemSummaries(ctx, problemIDs(records))
	if err != nil {
		return nil, err
	}

	totals, err := s.Catalog.PatternTotals(ctx)
	if err != nil {
		return nil, err
	}

	if missing := len(records) - len(problems); missing > 0 {
		s.Logger.Warn("solved records reference missing problems",
			zap.Uint("user_id", userID), zap.Int("missing", missing))
	}

	return stats.AggregatePatterns(totals, records, problems), nil
}

// GetNote returns the user's note for a problem, or "" when none exists.
func (s *ProgressService) GetNote(ctx context.Context, userID, problemID uint) (string, error) {
	var progress models.Progress
	err := s.DB.WithContext(ctx).
		Select("notes").
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return progress.Notes, nil
}

// SaveNote replaces the note for a problem, creating the record if needed.
func (s *ProgressService) SaveNote(ctx context.Context, userID, problemID uint, notes string) error {
	_, err := s.Upsert(ctx, userID, ProgressUpdate{ProblemID: problemID, Notes: &notes})
	return err
}

func problemIDs(records []stats.ProgressRecord) []uint {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ProblemID)
	}
	return ids
}
