package routes

import (
	"dsa-tracker/backend/config"
	"dsa-tracker/backend/middleware"
	"dsa-tracker/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp creates the Fiber app with the global middleware stack.
func NewApp(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "dsa-tracker",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	// inside the logger so recovered panics are logged with their request
	app.Use(recover.New())

	return app
}
