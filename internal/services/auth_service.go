package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"planetary/internal/models"
	"planetary/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mailer is the narrow contract the auth service needs from the
// notification sink.
type Mailer interface {
	Send(to, subject, body string) error
}

// AuthService handles business logic for accounts, authentication and
// authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     Mailer
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. tokenTTL <= 0 falls back to 24h.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
	}
}

// Register registers a new user, hashes their password, and saves them to
// the database.
func (s *AuthService) Register(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %q: %w", user.Email, ErrEmailExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		// The unique index on email is the authoritative check; a racing
		// registration that slipped past the lookup above lands here.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("email %q: %w", user.Email, ErrEmailExists)
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user by email and password and returns a signed JWT
// if successful.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(s.tokenDurat).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// RetrievePassword rotates the account to a freshly generated temporary
// password and mails it to the address on file. Stored passwords are bcrypt
// hashes, so the original cleartext cannot be recovered and resent.
func (s *AuthService) RetrievePassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("email %q: %w", email, ErrUserNotFound)
	}

	tempPassword := uuid.NewString()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.Email, string(hashed)); err != nil {
		return fmt.Errorf("failed to store temporary password: %w", err)
	}

	body := fmt.Sprintf(
		"Your Planetary API password has been reset.\n\n"+
			"Your temporary password is %s\n\n"+
			"Please log in and change it as soon as possible.\n",
		tempPassword,
	)
	if err := s.mailer.Send(user.Email, "Your Planetary API password", body); err != nil {
		log.Printf("Failed to send password email to %s: %v", user.Email, err)
		return fmt.Errorf("sending password email: %w", ErrMailDelivery)
	}

	return nil
}
