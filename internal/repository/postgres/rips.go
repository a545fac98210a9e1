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

func (r *ripsRepository) Create(ctx context.Context, rec *model.RIPS) error {
	query := `
		INSERT INTO rips (
			id, patient_id, appointment_id, service_code, diagnosis_code,
			invoice_number, service_value, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.PatientID,
		rec.AppointmentID,
		rec.ServiceCode,
		rec.DiagnosisCode,
		rec.InvoiceNumber,
		rec.ServiceValue,
		rec.Status,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create RIPS record: %w", err)
	}
	return nil
}

func (r *ripsRepository) Get(ctx context.Context, id uuid.UUID) (*model.RIPS, error) {
	query := `
		SELECT id, patient_id, appointment_id, service_code, diagnosis_code,
		       invoice_number, service_value, status, created_at, updated_at
		FROM rips
		WHERE id = $1
	`
	var rec model.RIPS
	err := r.db.GetContext(ctx, &rec, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "RIPS record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get RIPS record: %w", err)
	}
	return &rec, nil
}

func (r *ripsRepository) List(ctx context.Context, filters *model.RIPSFilters) ([]*model.RIPS, error) {
	query := `
		SELECT id, patient_id, appointment_id, service_code, diagnosis_code,
		       invoice_number, service_value, status, created_at, updated_at
		FROM rips
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
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var records []*model.RIPS
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list RIPS records: %w", err)
	}
	return records, nil
}

func (r *ripsRepository) Update(ctx context.Context, rec *model.RIPS) error {
	query := `
		UPDATE rips
		SET service_code = $1, diagnosis_code = $2, invoice_number = $3,
		    service_value = $4, updated_at = $5
		WHERE id = $6
	`
	rec.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		rec.ServiceCode,
		rec.DiagnosisCode,
		rec.InvoiceNumber,
		rec.ServiceValue,
		rec.UpdatedAt,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update RIPS record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "RIPS record not found")
	}
	return nil
}

func (r *ripsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RIPSStatus) error {
	query := `UPDATE rips SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update RIPS status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "RIPS record not found")
	}
	return nil
}

func (r *ripsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rips WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete RIPS record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "RIPS record not found")
	}
	return nil
}
