package repositories

import (
	"errors"
	"fmt"

	"planetary/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. The database assigns the ID and enforces
// email uniqueness.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %q: %w", user.Email, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %q: %w", email, err)
	}
	return &user, nil
}

// UpdatePassword replaces the stored password hash for the given email.
func (r *GORMUserRepository) UpdatePassword(email, passwordHash string) error {
	res := r.db.Model(&models.User{}).Where("email = ?", email).Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("failed to update password for %q: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	return nil
}
