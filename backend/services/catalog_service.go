package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dsa-tracker/backend/cache"
	"dsa-tracker/backend/models"
	"dsa-tracker/backend/stats"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreatePatternInput struct {
	Name           string `json:"name" validate:"required,max=120"`
	Description    string `json:"description" validate:"required"`
	WhenToUse      string `json:"whenToUse"`
	CommonMistakes string `json:"commonMistakes"`
	CodeTemplate   string `json:"codeTemplate"`
}

type CreateProblemInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	Pattern      uint   `json:"pattern" validate:"required"`
	Difficulty   string `json:"difficulty" validate:"required"`
	Description  string `json:"description"`
	LeetcodeLink string `json:"leetcodeLink" validate:"omitempty,url"`
	GfgLink      string `json:"gfgLink" validate:"omitempty,url"`
	Order        int    `json:"order" validate:"gte=0"`
}

// PatternProblems is a pattern together with its problems in display order.
type PatternProblems struct {
	Pattern  models.Pattern   `json:"pattern"`
	Problems []models.Problem `json:"problems"`
}

// CatalogService owns patterns and problems. Aggregate reads go through the
// cache store and every write invalidates cache.CatalogKeys.
type CatalogService struct {
	DB     *gorm.DB
	Cache  cache.Store
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, store cache.Store, ttl time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{DB: db, Cache: store, TTL: ttl, Logger: logger}
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, cache.CatalogKeys...); err != nil {
		s.Logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) CreatePattern(ctx context.Context, in CreatePatternInput) (*models.Pattern, error) {
	db := s.DB.WithContext(ctx)
	name := strings.TrimSpace(in.Name)
	patternSlug := slug.Make(name)

	var count int64
	if err := db.Model(&models.Pattern{}).Where("name = ? OR slug = ?", name, patternSlug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("pattern %w", ErrConflict)
	}

	pattern := models.Pattern{
		Name:           name,
		Slug:           patternSlug,
		Description:    in.Description,
		WhenToUse:      in.WhenToUse,
		CommonMistakes: in.CommonMistakes,
		CodeTemplate:   in.CodeTemplate,
	}
	if err := db.Create(&pattern).Error; err != nil {
		return nil, fmt.Errorf("create pattern: %w", err)
	}
	s.invalidate(ctx)
	return &pattern, nil
}

// ListPatterns returns all patterns, oldest first.
func (s *CatalogService) ListPatterns(ctx context.Context) ([]models.Pattern, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyPatterns, s.TTL, func(ctx context.Context) ([]models.Pattern, error) {
		patterns := []models.Pattern{}
		err := s.DB.WithContext(ctx).
			Select("id", "name", "slug", "description", "created_at").
			Order("created_at ASC, id ASC").
			Find(&patterns).Error
		return patterns, err
	})
}

func (s *CatalogService) GetPattern(ctx context.Context, id uint) (*models.Pattern, error) {
	var pattern models.Pattern
	if err := s.DB.WithContext(ctx).First(&pattern, id).Error; err != nil {
		return nil, notFound(err, ErrPatternNotFound)
	}
	return &pattern, nil
}

func (s *CatalogService) CreateProblem(ctx context.Context, in CreateProblemInput) (*models.Problem, error) {
	if _, err := s.GetPattern(ctx, in.Pattern); err != nil {
		return nil, err
	}

	problem := models.Problem{
		Title:        strings.TrimSpace(in.Title),
		Slug:         slug.Make(in.Title),
		Difficulty:   strings.TrimSpace(in.Difficulty),
		Description:  in.Description,
		LeetcodeLink: in.LeetcodeLink,
		GfgLink:      in.GfgLink,
		Order:        in.Order,
		PatternID:    in.Pattern,
	}
	if stats.NormalizeDifficulty(problem.Difficulty) == "" {
		s.Logger.Warn("problem created with unknown difficulty",
			zap.String("title", problem.Title), zap.String("difficulty", problem.Difficulty))
	}

	if err := s.DB.WithContext(ctx).Create(&problem).Error; err != nil {
		return nil, fmt.Errorf("create problem: %w", err)
	}
	s.invalidate(ctx)
	return &problem, nil
}

func (s *CatalogService) ProblemsByPattern(ctx context.Context, patternID uint) (*PatternProblems, error) {
	db := s.DB.WithContext(ctx)

	var pattern models.Pattern
	if err := db.Select("id", "name", "slug", "description").First(&pattern, patternID).Error; err != nil {
		return nil, notFound(err, ErrPatternNotFound)
	}

	problems := []models.Problem{}
	if err := db.
		Select("id", "title", "slug", "difficulty", "leetcode_link", "gfg_link", "sort_order", "pattern_id").
		Where("pattern_id = ?", patternID).
		Order("sort_order ASC, id ASC").
		Find(&problems).Error; err != nil {
		return nil, err
	}

	return &PatternProblems{Pattern: pattern, Problems: problems}, nil
}

// GetProblem returns a problem with its pattern name resolved.
func (s *CatalogService) GetProblem(ctx context.Context, id uint) (*models.Problem, error) {
	var problem models.Problem
	err := s.DB.WithContext(ctx).
		Preload("Pattern", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "slug") }).
		First(&problem, id).Error
	if err != nil {
		return nil, notFound(err, ErrProblemNotFound)
	}
	return &problem, nil
}

// TotalProblems counts every registered problem.
func (s *CatalogService) TotalProblems(ctx context.Context) (int, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyProblemCount, s.TTL, func(ctx context.Context) (int, error) {
		var n int64
		err := s.DB.WithContext(ctx).Model(&models.Problem{}).Count(&n).Error
		return int(n), err
	})
}

// PatternsCount counts patterns that have at least one problem.
func (s *CatalogService) PatternsCount(ctx context.Context) (int, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyPatternsCount, s.TTL, func(ctx context.Context) (int, error) {
		var n int64
		err := s.DB.WithContext(ctx).Model(&models.Problem{}).Distinct("pattern_id").Count(&n).Error
		return int(n), err
	})
}

// PatternTotals groups problems by pattern. Patterns without problems are
// included with a zero total.
func (s *CatalogService) PatternTotals(ctx context.Context) ([]stats.PatternTotal, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyPatternTotals, s.TTL, func(ctx context.Context) ([]stats.PatternTotal, error) {
		totals := []stats.PatternTotal{}
		err := s.DB.WithContext(ctx).
			Table("patterns").
			Select("patterns.id AS pattern_id, patterns.name AS pattern_name, COUNT(problems.id) AS total_count").
			Joins("LEFT JOIN problems ON problems.pattern_id = patterns.id").
			Group("patterns.id, patterns.name").
			Order("patterns.id ASC").
			Scan(&totals).Error
		return totals, err
	})
}

// ProblemSummaries loads difficulty and pattern for the given problems.
// Ids that no longer exist are simply absent from the result.
func (s *CatalogService) ProblemSummaries(ctx context.Context, ids []uint) ([]stats.ProblemSummary, error) {
	out := []stats.ProblemSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	err := s.DB.WithContext(ctx).
		Model(&models.Problem{}).
		Select("id AS problem_id, difficulty, pattern_id").
		Where("id IN ?", ids).
		Scan(&out).Error
	return out, err
}
