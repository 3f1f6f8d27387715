package handlers

import (
	"errors"
	"fmt"
	"log"

	"planetary/internal/models"
	"planetary/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/retrieve_password/:email", h.HandleRetrievePassword)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(user); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.authService.Register(&user); err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already exists",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// LoginRequest represents the request body for login, accepted as JSON or
// form data.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Bad email or password",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Login succeeded",
		"access_token": token,
	})
}

// HandleRetrievePassword mails a temporary password to the given address.
// The response is the same whether or not the address is registered, so the
// endpoint cannot be used to probe for accounts.
func (h *AuthHandler) HandleRetrievePassword(c *fiber.Ctx) error {
	address := c.Params("email")

	err := h.authService.RetrievePassword(address)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("Error retrieving password for %s: %v", address, err)
		if errors.Is(err, services.ErrMailDelivery) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Could not send the password email",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process the request",
		})
	}

	return c.JSON(fiber.Map{
		"message": "If that email address is registered, a password email has been sent",
	})
}
