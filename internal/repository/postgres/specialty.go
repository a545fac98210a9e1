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

func (r *specialtyRepository) Create(ctx context.Context, s *model.Specialty) error {
	query := `
		INSERT INTO specialties (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Description, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return translateUnique(fmt.Errorf("failed to create specialty: %w", err))
	}
	return nil
}

func (r *specialtyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM specialties WHERE id = $1`

	var s model.Specialty
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "specialty not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty: %w", err)
	}
	return &s, nil
}

func (r *specialtyRepository) List(ctx context.Context) ([]*model.Specialty, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM specialties ORDER BY name`

	var specialties []*model.Specialty
	if err := r.db.SelectContext(ctx, &specialties, query); err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}

func (r *specialtyRepository) Update(ctx context.Context, s *model.Specialty) error {
	query := `UPDATE specialties SET name = $1, description = $2, updated_at = $3 WHERE id = $4`
	s.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, s.Name, s.Description, s.UpdatedAt, s.ID)
	if err != nil {
		return translateUnique(fmt.Errorf("failed to update specialty: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "specialty not found")
	}
	return nil
}

func (r *specialtyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM specialties WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete specialty: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "specialty not found")
	}
	return nil
}

func (r *specialtyRepository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM specialties WHERE LOWER(name) = LOWER($1)`
	args := []interface{}{name}

	if excludeID != nil {
		query += " AND id != $2"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check specialty name uniqueness: %w", err)
	}
	return exists, nil
}
