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

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, identification_type, identification_number, first_name, last_name,
			birth_date, gender, phone, email, address, insurance_provider,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.IdentificationType,
		patient.IdentificationNumber,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.InsuranceProvider,
		patient.Active,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return translateUnique(fmt.Errorf("failed to create patient: %w", err))
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, identification_type, identification_number, first_name, last_name,
		       birth_date, gender, phone, email, address, insurance_provider,
		       active, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.KindNotFound, "patient not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `
		SELECT id, identification_type, identification_number, first_name, last_name,
		       birth_date, gender, phone, email, address, insurance_provider,
		       active, created_at, updated_at
		FROM patients
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.Search != "" {
			query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR identification_number ILIKE $%d)", argCount, argCount, argCount)
			args = append(args, "%"+filters.Search+"%")
			argCount++
		}
		if filters.Active != nil {
			query += fmt.Sprintf(" AND active = $%d", argCount)
			args = append(args, *filters.Active)
			argCount++
		}
	}

	query += " ORDER BY last_name, first_name"

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET identification_type = $1, identification_number = $2, first_name = $3,
		    last_name = $4, birth_date = $5, gender = $6, phone = $7, email = $8,
		    address = $9, insurance_provider = $10, active = $11, updated_at = $12
		WHERE id = $13
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.IdentificationType,
		patient.IdentificationNumber,
		patient.FirstName,
		patient.LastName,
		patient.BirthDate,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.InsuranceProvider,
		patient.Active,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return translateUnique(fmt.Errorf("failed to update patient: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "patient not found")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.New(apperror.KindNotFound, "patient not found")
	}
	return nil
}

func (r *patientRepository) IdentificationExists(ctx context.Context, idType, idNumber string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE identification_type = $1 AND identification_number = $2
	`
	args := []interface{}{idType, idNumber}

	if excludeID != nil {
		query += " AND id != $3"
		args = append(args, *excludeID)
	}
	query += ")"

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check identification uniqueness: %w", err)
	}
	return exists, nil
}
