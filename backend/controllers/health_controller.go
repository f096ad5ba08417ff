package controllers

import (
	"context"
	"time"

	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type HealthController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewHealthController(db *gorm.DB, logger *zap.Logger) *HealthController {
	return &HealthController{DB: db, Logger: logger}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /health [get]
func (hc *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	sqlDB, err := hc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		hc.Logger.Error("database ping failed", zap.Error(err))
		return utils.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return utils.OK(c, "OK", fiber.Map{"database": "up"})
}
