package model

import (
	"github.com/google/uuid"
)

// Evolution is a follow-up entry attached to a clinical note. Same
// authorship rules as the note itself.
type Evolution struct {
	Base
	ClinicalNoteID uuid.UUID `db:"clinical_note_id" json:"clinical_note_id"`
	DoctorID       uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Description    string    `db:"description" json:"description"`
	Treatment      string    `db:"treatment" json:"treatment,omitempty"`
}

type CreateEvolutionRequest struct {
	ClinicalNoteID uuid.UUID `json:"clinical_note_id" binding:"required"`
	Description    string    `json:"description" binding:"required,max=5000"`
	Treatment      string    `json:"treatment" binding:"max=5000"`
}

type UpdateEvolutionRequest struct {
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Treatment   *string `json:"treatment" binding:"omitempty,max=5000"`
}
