package repositories

import (
	"errors"
	"fmt"

	"planetary/internal/models"

	"gorm.io/gorm"
)

// GORMPlanetRepository is a GORM implementation of PlanetRepository.
type GORMPlanetRepository struct {
	db *gorm.DB
}

// NewGORMPlanetRepository creates a new instance of GORMPlanetRepository.
func NewGORMPlanetRepository(db *gorm.DB) *GORMPlanetRepository {
	return &GORMPlanetRepository{
		db: db,
	}
}

// GetAll retrieves all planets from the database. The result is never nil,
// so an empty catalog serializes as an empty JSON array.
func (r *GORMPlanetRepository) GetAll() ([]models.Planet, error) {
	planets := make([]models.Planet, 0)
	if err := r.db.Find(&planets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all planets: %w", err)
	}
	return planets, nil
}

// GetByID retrieves a single planet by its ID from the database.
func (r *GORMPlanetRepository) GetByID(id uint) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.First(&planet, "planet_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("planet %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get planet by ID %d: %w", id, err)
	}
	return &planet, nil
}

// GetByName retrieves a single planet by its name from the database.
func (r *GORMPlanetRepository) GetByName(name string) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.First(&planet, "planet_name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("planet %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get planet by name %q: %w", name, err)
	}
	return &planet, nil
}

// Create inserts a new planet. The database assigns the planet ID and
// enforces name uniqueness.
func (r *GORMPlanetRepository) Create(planet *models.Planet) error {
	if err := r.db.Create(planet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create planet: %w", err)
	}
	return nil
}

// Update replaces all non-id fields of an existing planet. A plain Updates
// is used instead of Save: Save inserts a new row when the id matches
// nothing, which would let clients mint their own planet IDs.
func (r *GORMPlanetRepository) Update(planet *models.Planet) error {
	res := r.db.Model(&models.Planet{}).
		Where("planet_id = ?", planet.PlanetID).
		Select("planet_name", "planet_type", "home_star", "mass", "radius", "distance").
		Updates(planet)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to update planet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates does not return ErrRecordNotFound for a missed update,
		// so we check RowsAffected.
		return fmt.Errorf("planet %d: %w", planet.PlanetID, ErrNotFound)
	}
	return nil
}

// Delete removes a planet by its ID.
func (r *GORMPlanetRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Planet{}, "planet_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete planet %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("planet %d: %w", id, ErrNotFound)
	}
	return nil
}
