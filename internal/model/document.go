package model

import (
	"github.com/google/uuid"
)

// Document is upload metadata; file bytes live on disk under the configured
// upload directory.
type Document struct {
	Base
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	UploadedBy   uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	FileName     string    `db:"file_name" json:"file_name"`
	StoredPath   string    `db:"stored_path" json:"-"`
	ContentType  string    `db:"content_type" json:"content_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	Description  string    `db:"description" json:"description,omitempty"`
}

type DocumentFilters struct {
	PatientID uuid.UUID
}
