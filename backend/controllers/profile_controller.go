package controllers

import (
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileController struct {
	Profile *services.ProfileService
	Logger  *zap.Logger
}

func NewProfileController(profile *services.ProfileService, logger *zap.Logger) *ProfileController {
	return &ProfileController{Profile: profile, Logger: logger}
}

// GetProfileSummary godoc
// @Summary Profile summary
// @Description Account details, overall progress, streaks and quick stats of the caller
// @Tags profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile/summary [get]
func (pc *ProfileController) GetProfileSummary(c *fiber.Ctx) error {
	summary, err := pc.Profile.Summary(c.UserContext(), utils.CurrentUserID(c))
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not build profile summary")
	}
	return utils.OK(c, "Profile summary fetched", summary)
}
