package controllers

import (
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProgressController struct {
	Progress *services.ProgressService
	Logger   *zap.Logger
}

func NewProgressController(progress *services.ProgressService, logger *zap.Logger) *ProgressController {
	return &ProgressController{Progress: progress, Logger: logger}
}

// Update godoc
// @Summary Mark or unmark a problem
// @Description Creates or updates the caller's progress for a problem. Only solved, reviseLater and notes may change.
// @Tags progress
// @Accept json
// @Produce json
// @Param input body services.ProgressUpdate true "Progress update"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [post]
func (pc *ProgressController) Update(c *fiber.Ctx) error {
	var input services.ProgressUpdate
	if err := utils.ParseStrictBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	progress, err := pc.Progress.Upsert(c.UserContext(), utils.CurrentUserID(c), input)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not update progress")
	}

	return utils.OK(c, "Progress updated", progress)
}

// GetMyProgress godoc
// @Summary Get user progress
// @Description Returns every progress record of the caller with problem and pattern names
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetMyProgress(c *fiber.Ctx) error {
	entries, err := pc.Progress.ListForUser(c.UserContext(), utils.CurrentUserID(c))
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch progress")
	}
	return utils.OK(c, "User progress fetched", entries)
}

// GetPatternProgress godoc
// @Summary Get pattern-wise progress
// @Description Returns completed and total problem counts for every pattern
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/patterns [get]
func (pc *ProgressController) GetPatternProgress(c *fiber.Ctx) error {
	progress, err := pc.Progress.PatternProgress(c.UserContext(), utils.CurrentUserID(c))
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch pattern progress")
	}
	return utils.OK(c, "Pattern-wise progress fetched", progress)
}

// GetProblemNote godoc
// @Summary Get note for a problem
// @Tags progress
// @Produce json
// @Param problemId path int true "Problem ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/notes/{problemId} [get]
func (pc *ProgressController) GetProblemNote(c *fiber.Ctx) error {
	problemID, ok := idParam(c, "problemId")
	if !ok {
		return utils.BadRequest(c, "Problem ID is required")
	}

	notes, err := pc.Progress.GetNote(c.UserContext(), utils.CurrentUserID(c), problemID)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch note")
	}
	return utils.OK(c, "Problem note fetched", notes)
}

// SaveProblemNote godoc
// @Summary Save note for a problem
// @Tags progress
// @Accept json
// @Produce json
// @Param problemId path int true "Problem ID"
// @Param input body services.NoteInput true "Note"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/notes/{problemId} [put]
func (pc *ProgressController) SaveProblemNote(c *fiber.Ctx) error {
	problemID, ok := idParam(c, "problemId")
	if !ok {
		return utils.BadRequest(c, "Problem ID is required")
	}

	var input services.NoteInput
	if err := utils.ParseStrictBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	if err := pc.Progress.SaveNote(c.UserContext(), utils.CurrentUserID(c), problemID, input.Notes); err != nil {
		return respondError(c, pc.Logger, err, "Could not save note")
	}
	return utils.OK(c, "Problem note saved", nil)
}
