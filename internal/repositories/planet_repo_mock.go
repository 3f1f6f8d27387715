package repositories

import (
	"fmt"
	"sync"

	"planetary/internal/models"
)

// MockPlanetRepository is an in-memory implementation of PlanetRepository.
type MockPlanetRepository struct {
	planets map[uint]models.Planet
	nextID  uint
	mu      sync.RWMutex
}

// NewMockPlanetRepository creates a new instance of MockPlanetRepository.
func NewMockPlanetRepository() *MockPlanetRepository {
	return &MockPlanetRepository{
		planets: make(map[uint]models.Planet),
		nextID:  1,
	}
}

// GetAll returns all planets.
func (r *MockPlanetRepository) GetAll() ([]models.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planetList := make([]models.Planet, 0, len(r.planets))
	for _, p := range r.planets {
		planetList = append(planetList, p)
	}
	return planetList, nil
}

// GetByID returns a planet by its ID.
func (r *MockPlanetRepository) GetByID(id uint) (*models.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planet, ok := r.planets[id]
	if !ok {
		return nil, fmt.Errorf("planet %d: %w", id, ErrNotFound)
	}
	return &planet, nil
}

// GetByName returns a planet by its name.
func (r *MockPlanetRepository) GetByName(name string) (*models.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.planets {
		if p.PlanetName == name {
			planet := p
			return &planet, nil
		}
	}
	return nil, fmt.Errorf("planet %q: %w", name, ErrNotFound)
}

// Create adds a new planet, assigning the next free ID.
func (r *MockPlanetRepository) Create(planet *models.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.planets {
		if p.PlanetName == planet.PlanetName {
			return fmt.Errorf("planet %q: %w", planet.PlanetName, ErrDuplicateKey)
		}
	}
	if planet.PlanetID == 0 {
		planet.PlanetID = r.nextID
	}
	if planet.PlanetID >= r.nextID {
		r.nextID = planet.PlanetID + 1
	}
	r.planets[planet.PlanetID] = *planet
	return nil
}

// Update modifies an existing planet.
func (r *MockPlanetRepository) Update(planet *models.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.planets[planet.PlanetID]
	if !ok {
		return fmt.Errorf("planet %d: %w", planet.PlanetID, ErrNotFound)
	}
	r.planets[planet.PlanetID] = *planet
	return nil
}

// Delete removes a planet by its ID.
func (r *MockPlanetRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.planets[id]
	if !ok {
		return fmt.Errorf("planet %d: %w", id, ErrNotFound)
	}
	delete(r.planets, id)
	return nil
}
