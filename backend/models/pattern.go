package models

import "time"

// Pattern groups related practice problems, e.g. "Sliding Window".
type Pattern struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string    `gorm:"not null" json:"description"`
	WhenToUse      string    `json:"whenToUse,omitempty"`
	CommonMistakes string    `json:"commonMistakes,omitempty"`
	CodeTemplate   string    `json:"codeTemplate,omitempty"`
	Problems       []Problem `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Problem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Slug         string    `gorm:"index" json:"slug"`
	Difficulty   string    `gorm:"not null" json:"difficulty"` // easy, medium, hard
	Description  string    `json:"description,omitempty"`
	LeetcodeLink string    `json:"leetcodeLink,omitempty"`
	GfgLink      string    `json:"gfgLink,omitempty"`
	Order        int       `gorm:"column:sort_order;default:0" json:"order"`
	PatternID    uint      `gorm:"index;not null" json:"patternId"`
	Pattern      *Pattern  `json:"pattern,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
