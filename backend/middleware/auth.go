package middleware

import (
	"errors"

	"dsa-tracker/backend/config"
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and stores the user id on the
// request for utils.CurrentUserID.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return utils.Unauthorized(c, fe.Message)
			}
			return utils.Unauthorized(c, "Unauthorized")
		}
		utils.SetCurrentUserID(c, userID)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Resolve(c.UserContext(), utils.CurrentUserID(c))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.Unauthorized(c, "Unauthorized")
			}
			return utils.InternalServerError(c, "Could not verify user")
		}

		if !user.IsAdmin() {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}

		return c.Next()
	}
}
