package routes

import (
	"dsa-tracker/backend/cache"
	"dsa-tracker/backend/config"
	"dsa-tracker/backend/controllers"
	"dsa-tracker/backend/middleware"
	"dsa-tracker/backend/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles the application services behind the HTTP layer.
type Services struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Progress *services.ProgressService
	Profile  *services.ProfileService
}

// NewServices wires the service graph. store may be nil to disable
// catalog caching.
func NewServices(db *gorm.DB, cfg *config.Config, store cache.Store, logger *zap.Logger) *Services {
	catalog := services.NewCatalogService(db, store, cfg.CatalogCacheTTL, logger)
	progress := services.NewProgressService(db, catalog, logger)
	return &Services{
		Auth:     services.NewAuthService(db, cfg, logger),
		Catalog:  catalog,
		Progress: progress,
		Profile:  services.NewProfileService(db, catalog, progress, logger),
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, svc *Services, logger *zap.Logger) {
	healthController := controllers.NewHealthController(db, logger)
	app.Get("/health", healthController.Health)

	api := app.Group("/api")

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(svc.Auth)

	// Auth routes
	authController := controllers.NewAuthController(svc.Auth, logger)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	// Pattern routes
	patternController := controllers.NewPatternController(svc.Catalog, logger)
	patterns := api.Group("/patterns")
	patterns.Get("/", patternController.GetAllPatterns)
	patterns.Get("/:id", patternController.GetPatternByID)
	patterns.Post("/", authMiddleware, adminMiddleware, patternController.CreatePattern)

	// Problem routes; stats and pattern/:patternId must precede /:id
	problemController := controllers.NewProblemController(svc.Catalog, logger)
	problems := api.Group("/problems")
	problems.Get("/stats", problemController.GetProblemStats)
	problems.Get("/pattern/:patternId", problemController.GetProblemsByPattern)
	problems.Get("/:id", problemController.GetProblemByID)
	problems.Post("/", authMiddleware, adminMiddleware, problemController.CreateProblem)

	// Progress routes
	progressController := controllers.NewProgressController(svc.Progress, logger)
	progress := api.Group("/progress", authMiddleware)
	progress.Post("/", progressController.Update)
	progress.Get("/", progressController.GetMyProgress)
	progress.Get("/patterns", progressController.GetPatternProgress)
	progress.Get("/notes/:problemId", progressController.GetProblemNote)
	progress.Put("/notes/:problemId", progressController.SaveProblemNote)

	// Profile routes
	profileController := controllers.NewProfileController(svc.Profile, logger)
	api.Get("/profile/summary", authMiddleware, profileController.GetProfileSummary)
}
