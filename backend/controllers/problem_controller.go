package controllers

import (
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProblemController struct {
	Catalog *services.CatalogService
	Logger  *zap.Logger
}

func NewProblemController(catalog *services.CatalogService, logger *zap.Logger) *ProblemController {
	return &ProblemController{Catalog: catalog, Logger: logger}
}

// ProblemStats is the catalog-wide counter payload.
type ProblemStats struct {
	TotalProblems int `json:"totalProblems"`
	PatternsCount int `json:"patternsCount"`
}

// CreateProblem godoc
// @Summary Create a problem (admin only)
// @Tags problems
// @Accept json
// @Produce json
// @Param input body services.CreateProblemInput true "Problem data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /problems [post]
func (pc *ProblemController) CreateProblem(c *fiber.Ctx) error {
	var input services.CreateProblemInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	problem, err := pc.Catalog.CreateProblem(c.UserContext(), input)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not create problem")
	}
	return utils.Created(c, "Problem created", problem)
}

// GetProblemsByPattern godoc
// @Summary List problems of a pattern
// @Description Problems are returned in display order
// @Tags problems
// @Produce json
// @Param patternId path int true "Pattern ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /problems/pattern/{patternId} [get]
func (pc *ProblemController) GetProblemsByPattern(c *fiber.Ctx) error {
	patternID, ok := idParam(c, "patternId")
	if !ok {
		return utils.BadRequest(c, "Invalid pattern ID")
	}

	result, err := pc.Catalog.ProblemsByPattern(c.UserContext(), patternID)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch problems")
	}
	return utils.OK(c, "Problems fetched", result)
}

// GetProblemByID godoc
// @Summary Get a problem
// @Tags problems
// @Produce json
// @Param id path int true "Problem ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /problems/{id} [get]
func (pc *ProblemController) GetProblemByID(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	problem, err := pc.Catalog.GetProblem(c.UserContext(), id)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch problem")
	}
	return utils.OK(c, "Problem fetched", problem)
}

// GetProblemStats godoc
// @Summary Catalog counters
// @Tags problems
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /problems/stats [get]
func (pc *ProblemController) GetProblemStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	total, err := pc.Catalog.TotalProblems(ctx)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch problem stats")
	}
	patterns, err := pc.Catalog.PatternsCount(ctx)
	if err != nil {
		return respondError(c, pc.Logger, err, "Could not fetch problem stats")
	}
	return utils.OK(c, "Problem stats fetched", ProblemStats{TotalProblems: total, PatternsCount: patterns})
}
