package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
)

// UserHandler handles HTTP requests for accounts and authentication.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app. authGuard
// protects the profile-edit route; sign-up and sign-in stay public.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/google-sign-in", h.HandleGoogleSignIn)
	router.Put("/users", authGuard, h.HandleEditProfile)
}

// HandleRegister handles new account registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		return writeError(c, err)
	}

	// Only the public subset of the new record goes back.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles login and issues an identity token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	token, account, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"account":      account,
	})
}

// GoogleSignInRequest represents the request body for federated sign-in.
type GoogleSignInRequest struct {
	GoogleToken string `json:"google_token" validate:"required"`
}

// HandleGoogleSignIn handles federated sign-in, provisioning a local account
// on first use.
func (h *UserHandler) HandleGoogleSignIn(c *fiber.Ctx) error {
	var req GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing google sign-in request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	token, account, err := h.authService.GoogleSignIn(c.Context(), req.GoogleToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"account":      account,
	})
}

// HandleEditProfile updates the caller's own account.
func (h *UserHandler) HandleEditProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req services.EditProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing edit profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	account, err := h.authService.EditProfile(userID, &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"account": account,
	})
}
