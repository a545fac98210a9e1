package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

func (r *clinicalNoteRepository) Create(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		INSERT INTO clinical_notes (
			id, patient_id, doctor_id, appointment_id, diagnosis_code,
			chief_complaint, findings, plan, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	note.ID = uuid.New()
	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.PatientID,
		note.DoctorID,
		note.AppointmentID,
		note.DiagnosisCode,
		note.ChiefComplaint,
		note.Findings,
		note.Plan,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinical note: %w", err)
	}
	return nil
}

func (r *clinicalNoteRepository) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	query := `
		SELECT id, patient_id, doctor_id, appointment_id, diagnosis_code,
		       chief_complaint, findings, plan, created_at, updated_at
		FROM clinical_notes
		WHERE id = $1
	`
	var note model.ClinicalNote
	err := r.db.GetContext(ctx, &note, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}
	return &note, nil
}

func (r *clinicalNoteRepository) List(ctx context.Context, filters *model.ClinicalNoteFilters) ([]*model.ClinicalNote, error) {
	query := `
		SELECT id, patient_id, doctor_id, appointment_id, diagnosis_code,
		       chief_complaint, findings, plan, created_at, updated_at
		FROM clinical_notes
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
		if filters.DoctorID != uuid.Nil {
			query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
			args = append(args, filters.DoctorID)
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var notes []*model.ClinicalNote
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}

func (r *clinicalNoteRepository) Update(ctx context.Context, note *model.ClinicalNote) error {
	query := `
		UPDATE clinical_notes
		SET diagnosis_code = $1, chief_complaint = $2, findings = $3,
		    plan = $4, updated_at = $5
		WHERE id = $6
	`
	note.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		note.DiagnosisCode,
		note.ChiefComplaint,
		note.Findings,
		note.Plan,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinical note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	return nil
}

func (r *clinicalNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clinical_notes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete clinical note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	return nil
}
