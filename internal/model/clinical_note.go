package model

import (
	"github.com/google/uuid"
)

// ClinicalNote is authored by exactly one doctor; only that author may
// update it, and only a super user may delete it.
type ClinicalNote struct {
	Base
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AppointmentID  *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	DiagnosisCode  *string    `db:"diagnosis_code" json:"diagnosis_code,omitempty"`
	ChiefComplaint string     `db:"chief_complaint" json:"chief_complaint"`
	Findings       string     `db:"findings" json:"findings,omitempty"`
	Plan           string     `db:"plan" json:"plan,omitempty"`
}

type CreateClinicalNoteRequest struct {
	PatientID      uuid.UUID  `json:"patient_id" binding:"required"`
	AppointmentID  *uuid.UUID `json:"appointment_id"`
	DiagnosisCode  *string    `json:"diagnosis_code"`
	ChiefComplaint string     `json:"chief_complaint" binding:"required,max=2000"`
	Findings       string     `json:"findings" binding:"max=5000"`
	Plan           string     `json:"plan" binding:"max=5000"`
}

type UpdateClinicalNoteRequest struct {
	DiagnosisCode  *string `json:"diagnosis_code"`
	ChiefComplaint *string `json:"chief_complaint" binding:"omitempty,max=2000"`
	Findings       *string `json:"findings" binding:"omitempty,max=5000"`
	Plan           *string `json:"plan" binding:"omitempty,max=5000"`
}

type ClinicalNoteFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
}
