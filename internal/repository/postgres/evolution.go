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

func (r *evolutionRepository) Create(ctx context.Context, ev *model.Evolution) error {
	query := `
		INSERT INTO evolutions (
			id, clinical_note_id, doctor_id, description, treatment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	ev.ID = uuid.New()
	ev.CreatedAt = time.Now()
	ev.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ev.ID,
		ev.ClinicalNoteID,
		ev.DoctorID,
		ev.Description,
		ev.Treatment,
		ev.CreatedAt,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create evolution: %w", err)
	}
	return nil
}

func (r *evolutionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Evolution, error) {
	query := `
		SELECT id, clinical_note_id, doctor_id, description, treatment,
		       created_at, updated_at
		FROM evolutions
		WHERE id = $1
	`
	var ev model.Evolution
	err := r.db.GetContext(ctx, &ev, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "evolution not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evolution: %w", err)
	}
	return &ev, nil
}

func (r *evolutionRepository) ListByClinicalNote(ctx context.Context, noteID uuid.UUID) ([]*model.Evolution, error) {
	query := `
		SELECT id, clinical_note_id, doctor_id, description, treatment,
		       created_at, updated_at
		FROM evolutions
		WHERE clinical_note_id = $1
		ORDER BY created_at DESC
	`
	var evolutions []*model.Evolution
	if err := r.db.SelectContext(ctx, &evolutions, query, noteID); err != nil {
		return nil, fmt.Errorf("failed to list evolutions: %w", err)
	}
	return evolutions, nil
}

func (r *evolutionRepository) Update(ctx context.Context, ev *model.Evolution) error {
	query := `
		UPDATE evolutions
		SET description = $1, treatment = $2, updated_at = $3
		WHERE id = $4
	`
	ev.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, ev.Description, ev.Treatment, ev.UpdatedAt, ev.ID)
	if err != nil {
		return fmt.Errorf("failed to update evolution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "evolution not found")
	}
	return nil
}

func (r *evolutionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM evolutions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete evolution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "evolution not found")
	}
	return nil
}
