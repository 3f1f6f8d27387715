package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"planetary/internal/models"
	"planetary/internal/repositories"
	"planetary/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(email, passwordHash string) error {
	args := m.Called(email, passwordHash)
	return args.Error(0)
}

// MockMailer is a mock implementation of services.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := services.NewAuthService(mockRepo, mockMailer, "test_jwt_secret", 0)

	user := &models.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "password123",
	}

	// Test successful registration: the stored password must be a hash of
	// the submitted one, not the cleartext.
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user %q: %w", user.Email, repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		stored := args.Get(0).(*models.User)
		assert.NotEqual(t, "password123", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	}).Return(nil).Once()

	err := authService.Register(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: 1, Email: user.Email}, nil).Once()
	err = authService.Register(user)
	assert.ErrorIs(t, err, services.ErrEmailExists)
	mockRepo.AssertExpectations(t)

	// Test duplicate-key from the store winning a race past the lookup
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user %q: %w", user.Email, repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(fmt.Errorf("user %q: %w", user.Email, repositories.ErrDuplicateKey)).Once()
	err = authService.Register(user)
	assert.ErrorIs(t, err, services.ErrEmailExists)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, mockMailer, testJWTSecret, 0)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:        42,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login("ada@x.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The issued token must carry the identity claim and verify with the
	// signing secret.
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.Email, claims["email"])
	assert.NotEmpty(t, claims["jti"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login("ada@x.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", "nobody@x.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	_, err = authService.Login("nobody@x.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, mockMailer, testJWTSecret, 0)

	// Test valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ada@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "ada@x.com", claims["email"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Test token signed with a different key
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ada@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.Error(t, err)

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ada@x.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
}

func TestAuthService_RetrievePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	authService := services.NewAuthService(mockRepo, mockMailer, "test_jwt_secret", 0)

	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       7,
		Email:    "william@test.com",
		Password: string(oldHash),
	}

	// Successful retrieval rotates the stored hash and mails the new
	// cleartext temporary password.
	var storedHash, mailedBody string
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("UpdatePassword", user.Email, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		storedHash = args.String(1)
	}).Return(nil).Once()
	mockMailer.On("Send", user.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		mailedBody = args.String(2)
	}).Return(nil).Once()

	err := authService.RetrievePassword(user.Email)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)

	tempPassword := ""
	for _, line := range strings.Split(mailedBody, "\n") {
		if strings.HasPrefix(line, "Your temporary password is ") {
			tempPassword = strings.TrimPrefix(line, "Your temporary password is ")
		}
	}
	assert.NotEmpty(t, tempPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(tempPassword)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("oldpassword")))

	// Unknown email
	mockRepo.On("GetByEmail", "nobody@test.com").Return(nil, fmt.Errorf("user: %w", repositories.ErrNotFound)).Once()
	err = authService.RetrievePassword("nobody@test.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)

	// Delivery failure surfaces as ErrMailDelivery
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("UpdatePassword", user.Email, mock.AnythingOfType("string")).Return(nil).Once()
	mockMailer.On("Send", user.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(fmt.Errorf("smtp unreachable")).Once()
	err = authService.RetrievePassword(user.Email)
	assert.ErrorIs(t, err, services.ErrMailDelivery)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}
