package utils

import (
	"errors"
	"strings"
	"time"

	"dsa-tracker/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

func GenerateJWTToken(userID uint, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(cfg.JWTExpiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseJWTToken validates the token and returns the user id it was issued
// for. A leading "Bearer " is accepted.
func ParseJWTToken(tokenString string, cfg *config.Config) (uint, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))
	if tokenString == "" {
		return 0, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userIDFloat), nil
}

func ExtractUserIDFromToken(c *fiber.Ctx, cfg *config.Config) (uint, error) {
	tokenString := c.Get(fiber.HeaderAuthorization)
	if tokenString == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Not authorized, token missing")
	}

	userID, err := ParseJWTToken(tokenString, cfg)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Not authorized, invalid token")
	}
	return userID, nil
}

const userIDLocal = "user_id"

// SetCurrentUserID stores the authenticated user id on the request.
func SetCurrentUserID(c *fiber.Ctx, userID uint) {
	c.Locals(userIDLocal, userID)
}

// CurrentUserID returns the id stored by the auth middleware, or 0.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDLocal).(uint)
	return id
}
