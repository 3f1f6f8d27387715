package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"planetary/internal/models"
	"planetary/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PlanetHandler handles HTTP requests for planets.
type PlanetHandler struct {
	service *services.PlanetService
}

// NewPlanetHandler creates a new PlanetHandler.
func NewPlanetHandler(service *services.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		service: service,
	}
}

// RegisterPublicRoutes registers the read-only planet routes.
func (h *PlanetHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/planets", h.HandleGetPlanets)
	router.Get("/planet_details/:planet_id", h.HandleGetPlanetDetails)
}

// RegisterProtectedRoutes registers the mutating planet routes. The caller
// is expected to mount these behind the auth middleware.
func (h *PlanetHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/add_planet", h.HandleAddPlanet)
	router.Put("/update_planet", h.HandleUpdatePlanet)
	router.Delete("/remove_planet/:planet_id", h.HandleRemovePlanet)
}

// HandleGetPlanets retrieves all planets.
func (h *PlanetHandler) HandleGetPlanets(c *fiber.Ctx) error {
	planets, err := h.service.GetAllPlanets()
	if err != nil {
		log.Printf("Error getting all planets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve planets",
		})
	}
	return c.JSON(planets)
}

// HandleGetPlanetDetails retrieves a single planet by its ID.
func (h *PlanetHandler) HandleGetPlanetDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("planet_id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "planet_id must be an integer",
		})
	}

	planet, err := h.service.GetPlanetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPlanetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "That planet does not exist",
			})
		}
		log.Printf("Error getting planet %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve planet",
		})
	}
	return c.JSON(planet)
}

// HandleAddPlanet creates a new planet from form data.
func (h *PlanetHandler) HandleAddPlanet(c *fiber.Ctx) error {
	planet, badField := planetFromForm(c)
	if badField != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Field '%s' must be a number", badField),
		})
	}
	if planet.PlanetName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "planet_name is required",
		})
	}

	if err := h.service.CreatePlanet(planet); err != nil {
		if errors.Is(err, services.ErrPlanetExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "There is already a planet by that name",
			})
		}
		log.Printf("Error creating planet: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create planet",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "New planet is added",
		"planet":  planet,
	})
}

// HandleUpdatePlanet replaces all non-id fields of an existing planet.
func (h *PlanetHandler) HandleUpdatePlanet(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("planet_id"))
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Field 'planet_id' must be an integer",
		})
	}

	planet, badField := planetFromForm(c)
	if badField != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Field '%s' must be a number", badField),
		})
	}
	planet.PlanetID = uint(id)

	if err := h.service.UpdatePlanet(planet); err != nil {
		if errors.Is(err, services.ErrPlanetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "That planet does not exist",
			})
		}
		if errors.Is(err, services.ErrPlanetExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "There is already a planet by that name",
			})
		}
		log.Printf("Error updating planet %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update planet",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Updated planet details successfully",
	})
}

// HandleRemovePlanet deletes a planet by its ID.
func (h *PlanetHandler) HandleRemovePlanet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("planet_id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "planet_id must be an integer",
		})
	}

	if err := h.service.DeletePlanet(uint(id)); err != nil {
		if errors.Is(err, services.ErrPlanetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "That planet does not exist",
			})
		}
		log.Printf("Error deleting planet %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete planet",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "You deleted the planet",
	})
}

// planetFromForm builds a planet from form fields. The numeric fields arrive
// as text; the first one that fails to parse is reported back so the handler
// can answer 400 instead of crashing.
func planetFromForm(c *fiber.Ctx) (*models.Planet, string) {
	planet := &models.Planet{
		PlanetName: c.FormValue("planet_name"),
		PlanetType: c.FormValue("planet_type"),
		HomeStar:   c.FormValue("home_star"),
	}

	for _, field := range []struct {
		name string
		dst  *float64
	}{
		{"mass", &planet.Mass},
		{"radius", &planet.Radius},
		{"distance", &planet.Distance},
	} {
		value, err := strconv.ParseFloat(c.FormValue(field.name), 64)
		if err != nil {
			return nil, field.name
		}
		*field.dst = value
	}

	return planet, ""
}
