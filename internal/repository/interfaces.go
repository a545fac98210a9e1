package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	EmailExists(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	IdentificationExists(ctx context.Context, idType, idNumber string, excludeID *uuid.UUID) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// ListForConflictCheck returns the appointments that still occupy the
	// doctor's calendar on the given date, optionally excluding one id.
	ListForConflictCheck(ctx context.Context, doctorID uuid.UUID, date string, excludeID *uuid.UUID) ([]*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClinicalNoteRepository interface {
	Create(ctx context.Context, note *model.ClinicalNote) error
	Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error)
	List(ctx context.Context, filters *model.ClinicalNoteFilters) ([]*model.ClinicalNote, error)
	Update(ctx context.Context, note *model.ClinicalNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EvolutionRepository interface {
	Create(ctx context.Context, ev *model.Evolution) error
	Get(ctx context.Context, id uuid.UUID) (*model.Evolution, error)
	ListByClinicalNote(ctx context.Context, noteID uuid.UUID) ([]*model.Evolution, error)
	Update(ctx context.Context, ev *model.Evolution) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error)
	Update(ctx context.Context, p *model.Prescription) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PrescriptionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RIPSRepository interface {
	Create(ctx context.Context, r *model.RIPS) error
	Get(ctx context.Context, id uuid.UUID) (*model.RIPS, error)
	List(ctx context.Context, filters *model.RIPSFilters) ([]*model.RIPS, error)
	Update(ctx context.Context, r *model.RIPS) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.RIPSStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SpecialtyRepository interface {
	Create(ctx context.Context, s *model.Specialty) error
	Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
	List(ctx context.Context) ([]*model.Specialty, error)
	Update(ctx context.Context, s *model.Specialty) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

type DiagnosisRepository interface {
	Create(ctx context.Context, d *model.Diagnosis) error
	Get(ctx context.Context, id uuid.UUID) (*model.Diagnosis, error)
	GetByCode(ctx context.Context, code string) (*model.Diagnosis, error)
	List(ctx context.Context, search string) ([]*model.Diagnosis, error)
	Update(ctx context.Context, d *model.Diagnosis) error
	Delete(ctx context.Context, id uuid.UUID) error
	CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context, filters *model.DocumentFilters) ([]*model.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
}
