package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decodable shape of a session token. Any of the fields may be
// absent; a malformed token decodes to no identity rather than an error.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	User  string `json:"user,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the resolved current-session identity threaded through the
// flows that need it (checkout, reward crediting, profile).
type Identity struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name,omitempty"`
}

func (i *Identity) IsAnonymous() bool {
	return i == nil || i.Key == ""
}

type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
}
