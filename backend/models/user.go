package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"not null" json:"fullName"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"default:user" json:"role"` // user, admin
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	PreferredSheet string    `json:"preferredSheet,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
