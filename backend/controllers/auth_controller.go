package controllers

import (
	"dsa-tracker/backend/services"
	"dsa-tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	Auth   *services.AuthService
	Logger *zap.Logger
}

func NewAuthController(auth *services.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Logger: logger}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	result, err := ac.Auth.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, ac.Logger, err, "Could not register user")
	}

	return utils.Created(c, "User registered successfully", result)
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := utils.ParseBody(c, &input); err != nil {
		return utils.RespondBodyError(c, err)
	}

	result, err := ac.Auth.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, ac.Logger, err, "Could not log in")
	}

	return utils.OK(c, "Login successful", result)
}
