package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/RogansDev/romedicals-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type clinicalNoteRepository struct {
	db *sqlx.DB
}

type evolutionRepository struct {
	db *sqlx.DB
}

type prescriptionRepository struct {
	db *sqlx.DB
}

type ripsRepository struct {
	db *sqlx.DB
}

type specialtyRepository struct {
	db *sqlx.DB
}

type diagnosisRepository struct {
	db *sqlx.DB
}

type documentRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewClinicalNoteRepository(db *sqlx.DB) repository.ClinicalNoteRepository {
	return &clinicalNoteRepository{db: db}
}

func NewEvolutionRepository(db *sqlx.DB) repository.EvolutionRepository {
	return &evolutionRepository{db: db}
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func NewRIPSRepository(db *sqlx.DB) repository.RIPSRepository {
	return &ripsRepository{db: db}
}

func NewSpecialtyRepository(db *sqlx.DB) repository.SpecialtyRepository {
	return &specialtyRepository{db: db}
}

func NewDiagnosisRepository(db *sqlx.DB) repository.DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
