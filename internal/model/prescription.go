package model

import (
	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "active"
	PrescriptionStatusCompleted PrescriptionStatus = "completed"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
	PrescriptionStatusExpired   PrescriptionStatus = "expired"
)

func (s PrescriptionStatus) Valid() bool {
	switch s {
	case PrescriptionStatusActive, PrescriptionStatusCompleted,
		PrescriptionStatusCancelled, PrescriptionStatusExpired:
		return true
	}
	return false
}

// Locked reports whether full-record edits are blocked for this status.
func (s PrescriptionStatus) Locked() bool {
	return s == PrescriptionStatusCompleted || s == PrescriptionStatusCancelled
}

type Prescription struct {
	Base
	PatientID    uuid.UUID          `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID          `db:"doctor_id" json:"doctor_id"`
	Medication   string             `db:"medication" json:"medication"`
	Dosage       string             `db:"dosage" json:"dosage"`
	Frequency    string             `db:"frequency" json:"frequency"`
	DurationDays int                `db:"duration_days" json:"duration_days"`
	Instructions string             `db:"instructions" json:"instructions,omitempty"`
	Status       PrescriptionStatus `db:"status" json:"status"`
}

type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	Medication   string    `json:"medication" binding:"required,max=200"`
	Dosage       string    `json:"dosage" binding:"required,max=100"`
	Frequency    string    `json:"frequency" binding:"required,max=100"`
	DurationDays int       `json:"duration_days" binding:"required,min=1,max=365"`
	Instructions string    `json:"instructions" binding:"max=1000"`
}

type UpdatePrescriptionRequest struct {
	Medication   *string `json:"medication" binding:"omitempty,max=200"`
	Dosage       *string `json:"dosage" binding:"omitempty,max=100"`
	Frequency    *string `json:"frequency" binding:"omitempty,max=100"`
	DurationDays *int    `json:"duration_days" binding:"omitempty,min=1,max=365"`
	Instructions *string `json:"instructions" binding:"omitempty,max=1000"`
}

type UpdatePrescriptionStatusRequest struct {
	Status PrescriptionStatus `json:"status" binding:"required"`
}
