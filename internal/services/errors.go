package services

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers translate these into
// status codes with errors.Is.
var (
	// ErrEmailExists signals a registration attempt with an email already on file.
	ErrEmailExists = errors.New("email already exists")
	// ErrPlanetExists signals a creation attempt with a planet name already on file.
	ErrPlanetExists = errors.New("planet already exists")
	// ErrInvalidCredentials signals a failed login. It is returned for both an
	// unknown email and a wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPlanetNotFound signals a lookup, update or delete against a missing planet.
	ErrPlanetNotFound = errors.New("planet not found")
	// ErrUserNotFound signals a password retrieval for an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrMailDelivery signals that the notification sink could not deliver.
	ErrMailDelivery = errors.New("mail delivery failed")
)
