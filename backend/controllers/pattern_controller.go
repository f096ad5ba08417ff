package controllers

import (
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PatternController struct {
	Catalog *services.CatalogService
	Logger  *zap.Logger
}

func NewPatternController(catalog *services.CatalogService, logger *zap.Logger) *PatternController {
	return &PatternController{Catalog: catalog, Logger: logger}
}

// CreatePattern godoc
// @Summary Create a pattern (admin only)
// @Tags patterns
// @Accept json
// @Produce json
// @Param input body services.CreatePatternInput true "Pattern data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /patterns [post]
func (pc *PatternController) CreatePattern(c *fiber.Ctx) error {
	var input services.CreatePatternInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	pattern, err := pc.Catalog.CreatePattern(c.UserContext(), input)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not create pattern")
	}
	return utils.Created(c, "Pattern created", pattern)
}

// GetAllPatterns godoc
// @Summary List patterns
// @Tags patterns
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /patterns [get]
func (pc *PatternController) GetAllPatterns(c *fiber.Ctx) error {
	patterns, err := pc.Catalog.ListPatterns(c.UserContext())
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch patterns")
	}
	return utils.OK(c, "Patterns fetched", patterns)
}

// GetPatternByID godoc
// @Summary Get a pattern
// @Tags patterns
// @Produce json
// @Param id path int true "Pattern ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /patterns/{id} [get]
func (pc *PatternController) GetPatternByID(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid pattern ID")
	}

	pattern, err := pc.Catalog.GetPattern(c.UserContext(), id)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch pattern")
	}
	return utils.OK(c, "Pattern fetched", pattern)
}
