package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"planetary/internal/models"
	"planetary/internal/repositories"

	"planetary/pkg/rabbitmq"
)

// PlanetService handles business logic related to planets.
type PlanetService struct {
	repo     repositories.PlanetRepository
	mqClient *rabbitmq.Client // optional, nil disables event publishing
}

// NewPlanetService creates a new PlanetService. mqClient may be nil.
func NewPlanetService(repo repositories.PlanetRepository, mqClient *rabbitmq.Client) *PlanetService {
	return &PlanetService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetAllPlanets retrieves all planets.
func (s *PlanetService) GetAllPlanets() ([]models.Planet, error) {
	return s.repo.GetAll()
}

// GetPlanetByID retrieves a single planet by its ID.
func (s *PlanetService) GetPlanetByID(id uint) (*models.Planet, error) {
	planet, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("planet %d: %w", id, ErrPlanetNotFound)
		}
		return nil, err
	}
	return planet, nil
}

// CreatePlanet creates a new planet. The name must not already be in use.
func (s *PlanetService) CreatePlanet(planet *models.Planet) error {
	if existing, err := s.repo.GetByName(planet.PlanetName); err == nil && existing != nil {
		return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrPlanetExists)
	}

	if err := s.repo.Create(planet); err != nil {
		// The unique index on planet_name is the authoritative check.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrPlanetExists)
		}
		return fmt.Errorf("failed to create planet: %w", err)
	}

	s.publishEvent("planet.created", planet)
	return nil
}

// UpdatePlanet replaces all non-id fields of an existing planet.
func (s *PlanetService) UpdatePlanet(planet *models.Planet) error {
	if err := s.repo.Update(planet); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("planet %d: %w", planet.PlanetID, ErrPlanetNotFound)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrPlanetExists)
		}
		return fmt.Errorf("failed to update planet: %w", err)
	}

	s.publishEvent("planet.updated", planet)
	return nil
}

// DeletePlanet deletes a planet by its ID.
func (s *PlanetService) DeletePlanet(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("planet %d: %w", id, ErrPlanetNotFound)
		}
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	s.publishEvent("planet.deleted", &models.Planet{PlanetID: id})
	return nil
}

// publishEvent emits a planet lifecycle event when a broker is configured.
// Publishing is best effort: a broker failure never fails the request.
func (s *PlanetService) publishEvent(event string, planet *models.Planet) {
	if s.mqClient == nil {
		return
	}

	message := map[string]interface{}{
		"event":       event,
		"planet_id":   planet.PlanetID,
		"planet_name": planet.PlanetName,
	}
	body, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.PublishPlanetEvent(body); err != nil {
		log.Printf("Warning: failed to publish %s event for planet %d: %v", event, planet.PlanetID, err)
	}
}
