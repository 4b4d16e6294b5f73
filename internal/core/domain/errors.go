package domain

import "errors"

var (
	// ErrValidation marks malformed or missing input. Wrap it with field
	// detail so the transport layer can echo a useful message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID marks a syntactically invalid user identifier.
	ErrInvalidID = errors.New("invalid user id")

	// ErrInvalidCredentials covers unknown email and missing stored hash.
	// Deliberately generic so login never confirms account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordIncorrect is returned when the account exists but the
	// password does not verify.
	ErrPasswordIncorrect = errors.New("password incorrect")

	// ErrNoSession means the request carries no valid transport session.
	ErrNoSession = errors.New("no active session")

	// ErrStaleSession means the session resolved but its user record no
	// longer exists (deleted between login and this request).
	ErrStaleSession = errors.New("session user not found")

	// ErrForbidden means the caller is authenticated but lacks the role
	// required for the target resource.
	ErrForbidden = errors.New("insufficient permissions")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrSessionNotFound = errors.New("session not found")
)
