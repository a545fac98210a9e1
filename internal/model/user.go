package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
)

// User represents a system user. Users are deactivated, never deleted, and
// the role is replaced wholesale on update rather than transitioned.
type User struct {
	Base
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         authz.Role `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	SpecialtyID  *uuid.UUID `db:"specialty_id" json:"specialty_id,omitempty"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

type CreateUserRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	Role        authz.Role `json:"role" binding:"required,role"`
	SpecialtyID *uuid.UUID `json:"specialty_id"`
}

type UpdateUserRequest struct {
	Email       *string     `json:"email" binding:"omitempty,email"`
	FirstName   *string     `json:"first_name"`
	LastName    *string     `json:"last_name"`
	Role        *authz.Role `json:"role" binding:"omitempty,role"`
	SpecialtyID *uuid.UUID  `json:"specialty_id"`
	Active      *bool       `json:"active"`
}

type UserFilters struct {
	Role   authz.Role
	Active *bool
	Search string
}
