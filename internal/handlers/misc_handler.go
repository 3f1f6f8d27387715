package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MiscHandler serves the greeting and demo endpoints. None of them touch
// persistent state.
type MiscHandler struct{}

// NewMiscHandler creates a new MiscHandler.
func NewMiscHandler() *MiscHandler {
	return &MiscHandler{}
}

// RegisterRoutes registers the demo routes with the Fiber app.
func (h *MiscHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHello)
	router.Get("/super_simple", h.HandleSuperSimple)
	router.Get("/not_found", h.HandleNotFound)
	router.Get("/parameters", h.HandleParameters)
	router.Get("/url_variables/:name/:age", h.HandleURLVariables)
}

// HandleHello returns a literal greeting.
func (h *MiscHandler) HandleHello(c *fiber.Ctx) error {
	return c.SendString("Hello World!")
}

// HandleSuperSimple returns a trivial JSON message.
func (h *MiscHandler) HandleSuperSimple(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Hello from the Planetary API.",
	})
}

// HandleNotFound always responds 404.
func (h *MiscHandler) HandleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "That resource was not found",
	})
}

// HandleParameters runs the age gate against query parameters.
func (h *MiscHandler) HandleParameters(c *fiber.Ctx) error {
	return ageGate(c, c.Query("name"), c.Query("age"))
}

// HandleURLVariables runs the age gate against path variables.
func (h *MiscHandler) HandleURLVariables(c *fiber.Ctx) error {
	return ageGate(c, c.Params("name"), c.Params("age"))
}

// ageGate responds with a welcome for adults and 401 otherwise. The age
// arrives as text and an unparseable value is a client error, not a crash.
func ageGate(c *fiber.Ctx, name, rawAge string) error {
	age, err := strconv.Atoi(rawAge)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "age must be an integer",
		})
	}

	if age < 18 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": fmt.Sprintf("Sorry %s, you are not old enough.", name),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome %s, you are old enough!", name),
	})
}
