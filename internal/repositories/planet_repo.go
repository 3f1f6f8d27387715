package repositories

import (
	"planetary/internal/models"
)

// PlanetRepository defines the interface for planet data access.
type PlanetRepository interface {
	GetAll() ([]models.Planet, error)
	GetByID(id uint) (*models.Planet, error)
	GetByName(name string) (*models.Planet, error)
	Create(planet *models.Planet) error
	Update(planet *models.Planet) error
	Delete(id uint) error
}
