package handler

import "github.com/accountd/account-api/internal/core/domain"

// messageResponse is the standard envelope for bodies with no payload and
// for all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse carries a single user. domain.User excludes the password
// hash from JSON, so the envelope can embed it directly on every path.
type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type usersResponse struct {
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
}

type sessionsResponse struct {
	Message  string           `json:"message"`
	Sessions []domain.Session `json:"sessions"`
}

type sessionResponse struct {
	Message string          `json:"message"`
	Session *domain.Session `json:"session"`
}
