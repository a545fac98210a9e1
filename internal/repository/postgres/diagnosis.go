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

func (r *diagnosisRepository) Create(ctx context.Context, d *model.Diagnosis) error {
	query := `
		INSERT INTO diagnoses (id, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query, d.ID, d.Code, d.Description, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return translateUnique(fmt.Errorf("failed to create diagnosis: %w", err))
	}
	return nil
}

func (r *diagnosisRepository) Get(ctx context.Context, id uuid.UUID) (*model.Diagnosis, error) {
	query := `SELECT id, code, description, created_at, updated_at FROM diagnoses WHERE id = $1`

	var d model.Diagnosis
	err := r.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "diagnosis not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnosis: %w", err)
	}
	return &d, nil
}

func (r *diagnosisRepository) GetByCode(ctx context.Context, code string) (*model.Diagnosis, error) {
	query := `SELECT id, code, description, created_at, updated_at FROM diagnoses WHERE code = $1`

	var d model.Diagnosis
	err := r.db.GetContext(ctx, &d, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "diagnosis not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnosis by code: %w", err)
	}
	return &d, nil
}

func (r *diagnosisRepository) List(ctx context.Context, search string) ([]*model.Diagnosis, error) {
	query := `SELECT id, code, description, created_at, updated_at FROM diagnoses`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE code ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY code`

	var diagnoses []*model.Diagnosis
	if err := r.db.SelectContext(ctx, &diagnoses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) Update(ctx context.Context, d *model.Diagnosis) error {
	query := `UPDATE diagnoses SET description = $1, updated_at = $2 WHERE id = $3`
	d.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, d.Description, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update diagnosis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "diagnosis not found")
	}
	return nil
}

func (r *diagnosisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM diagnoses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete diagnosis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "diagnosis not found")
	}
	return nil
}

func (r *diagnosisRepository) CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM diagnoses WHERE code = $1`
	args := []interface{}{code}

	if excludeID != nil {
		query += " AND id != $2"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check diagnosis code uniqueness: %w", err)
	}
	return exists, nil
}
