package controllers

import (
	"errors"
	"strconv"

	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError translates service errors into the JSON envelope. Anything
// unexpected is logged and reported as a 500 with a generic message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrConflict):
		return utils.Conflict(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.Unauthorized(c, "Invalid credentials")
	}
	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return utils.InternalServerError(c, fallback)
}

// idParam parses a positive numeric route parameter.
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
