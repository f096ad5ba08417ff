package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrPatternNotFound = fmt.Errorf("pattern %w", ErrNotFound)
	ErrProblemNotFound = fmt.Errorf("problem %w", ErrNotFound)
)

// notFound maps gorm's missing-row error onto the entity's sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
