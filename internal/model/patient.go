package model

import (
	"time"
)

// Identification document types used in Colombian healthcare records.
const (
	IdentificationCC = "CC" // cédula de ciudadanía
	IdentificationTI = "TI" // tarjeta de identidad
	IdentificationCE = "CE" // cédula de extranjería
	IdentificationPA = "PA" // pasaporte
	IdentificationRC = "RC" // registro civil
)

// Patient identity is the (identification type, identification number)
// pair; it must be unique across the practice.
type Patient struct {
	Base
	IdentificationType   string     `db:"identification_type" json:"identification_type"`
	IdentificationNumber string     `db:"identification_number" json:"identification_number"`
	FirstName            string     `db:"first_name" json:"first_name"`
	LastName             string     `db:"last_name" json:"last_name"`
	BirthDate            *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender               string     `db:"gender" json:"gender,omitempty"`
	Phone                string     `db:"phone" json:"phone,omitempty"`
	Email                string     `db:"email" json:"email,omitempty"`
	Address              string     `db:"address" json:"address,omitempty"`
	InsuranceProvider    string     `db:"insurance_provider" json:"insurance_provider,omitempty"`
	Active               bool       `db:"active" json:"active"`
}

type CreatePatientRequest struct {
	IdentificationType   string     `json:"identification_type" binding:"required,oneof=CC TI CE PA RC"`
	IdentificationNumber string     `json:"identification_number" binding:"required"`
	FirstName            string     `json:"first_name" binding:"required"`
	LastName             string     `json:"last_name" binding:"required"`
	BirthDate            *time.Time `json:"birth_date"`
	Gender               string     `json:"gender" binding:"omitempty,oneof=M F O"`
	Phone                string     `json:"phone"`
	Email                string     `json:"email" binding:"omitempty,email"`
	Address              string     `json:"address"`
	InsuranceProvider    string     `json:"insurance_provider"`
}

type UpdatePatientRequest struct {
	IdentificationType   *string    `json:"identification_type" binding:"omitempty,oneof=CC TI CE PA RC"`
	IdentificationNumber *string    `json:"identification_number"`
	FirstName            *string    `json:"first_name"`
	LastName             *string    `json:"last_name"`
	BirthDate            *time.Time `json:"birth_date"`
	Gender               *string    `json:"gender" binding:"omitempty,oneof=M F O"`
	Phone                *string    `json:"phone"`
	Email                *string    `json:"email" binding:"omitempty,email"`
	Address              *string    `json:"address"`
	InsuranceProvider    *string    `json:"insurance_provider"`
	Active               *bool      `json:"active"`
}

type PatientFilters struct {
	Search string
	Active *bool
}
