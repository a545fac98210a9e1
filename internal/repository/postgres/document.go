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

func (r *documentRepository) Create(ctx context.Context, d *model.Document) error {
	query := `
		INSERT INTO documents (
			id, patient_id, uploaded_by, file_name, stored_path,
			content_type, size_bytes, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.PatientID,
		d.UploadedBy,
		d.FileName,
		d.StoredPath,
		d.ContentType,
		d.SizeBytes,
		d.Description,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	query := `
		SELECT id, patient_id, uploaded_by, file_name, stored_path,
		       content_type, size_bytes, description, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var d model.Document
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "document not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

func (r *documentRepository) List(ctx context.Context, filters *model.DocumentFilters) ([]*model.Document, error) {
	query := `
		SELECT id, patient_id, uploaded_by, file_name, stored_path,
		       content_type, size_bytes, description, created_at, updated_at
		FROM documents
		WHERE 1=1
	`
	args := []interface{}{}

	if filters != nil && filters.PatientID != uuid.Nil {
		query += " AND patient_id = $1"
		args = append(args, filters.PatientID)
	}

	query += " ORDER BY created_at DESC"

	var documents []*model.Document
	if err := r.db.SelectContext(ctx, &documents, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "document not found")
	}
	return nil
}
