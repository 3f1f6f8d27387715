package repositories

import "planetary/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(email, passwordHash string) error
}
