package models

import "time"

// Progress is one user's state for one problem. UpdatedAt doubles as the
// solve timestamp used for streaks.
type Progress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_progress_user_problem;not null" json:"userId"`
	ProblemID   uint      `gorm:"uniqueIndex:idx_progress_user_problem;not null" json:"problemId"`
	Problem     *Problem  `json:"problem,omitempty"`
	Solved      bool      `gorm:"default:false" json:"solved"`
	ReviseLater bool      `gorm:"default:false" json:"reviseLater"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Progress) TableName() string { return "progress" }

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{&User{}, &Pattern{}, &Problem{}, &Progress{}}
}
