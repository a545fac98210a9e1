package model

import (
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
)

// Identity is the minimal authenticated caller record attached to the
// request context by the authentication gate.
type Identity struct {
	ID    uuid.UUID  `json:"id"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	Role        authz.Role `json:"role" binding:"required,role"`
	SpecialtyID *uuid.UUID `json:"specialty_id"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
