package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dsa-tracker/backend/config"
	"dsa-tracker/backend/models"
	"dsa-tracker/backend/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"omitempty,min=3,max=40"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *zap.Logger
}

func NewAuthService(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{DB: db, Cfg: cfg, Logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	db := s.DB.WithContext(ctx)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("email %w", ErrConflict)
	}

	username, err := s.pickUsername(db, in.Username, email)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     strings.TrimSpace(in.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}
	if s.Cfg.IsAdminEmail(email) {
		user.Role = models.RoleAdmin
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.Logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	return s.issue(&user)
}

// pickUsername honours an explicit username or derives one from the email.
func (s *AuthService) pickUsername(db *gorm.DB, requested, email string) (string, error) {
	explicit := strings.TrimSpace(requested) != ""
	base := requested
	if !explicit {
		base, _, _ = strings.Cut(email, "@")
	}
	username := slug.Make(base)
	if username == "" {
		username = "user"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return username, nil
	}
	if explicit {
		return "", fmt.Errorf("username %w", ErrConflict)
	}
	return username + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0], nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(&user)
}

// Resolve returns the user behind an authenticated id.
func (s *AuthService) Resolve(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateJWTToken(user.ID, s.Cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
