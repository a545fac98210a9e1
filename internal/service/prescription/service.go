package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	prescriptions repository.PrescriptionRepository
	patients      repository.PatientRepository
	auditor       *audit.Service
}

func NewService(prescriptions repository.PrescriptionRepository, patients repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{prescriptions: prescriptions, patients: patients, auditor: auditor}
}

// Create issues a prescription authored by the caller. New prescriptions
// always start active.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindReferenceNotFound, "referenced patient does not exist")
		}
		return nil, apperror.Internal(err)
	}

	p := &model.Prescription{
		PatientID:    req.PatientID,
		DoctorID:     actor.ID,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		DurationDays: req.DurationDays,
		Instructions: req.Instructions,
		Status:       model.PrescriptionStatusActive,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "prescription", p.ID, map[string]interface{}{
		"patient_id": p.PatientID,
		"medication": p.Medication,
	})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	p, err := s.prescriptions.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return prescriptions, nil
}

// Update requires both authorship and an unlocked status: completed and
// cancelled prescriptions are immutable.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.DoctorID != actor.ID {
		return nil, apperror.New(apperror.KindNotOwner, "only the prescribing doctor may modify this prescription")
	}
	if p.Status.Locked() {
		return nil, apperror.Newf(apperror.KindRecordLocked,
			"prescription in status %s cannot be modified", p.Status)
	}

	if req.Medication != nil {
		p.Medication = *req.Medication
	}
	if req.Dosage != nil {
		p.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		p.Frequency = *req.Frequency
	}
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.Instructions != nil {
		p.Instructions = *req.Instructions
	}

	if err := s.prescriptions.Update(ctx, p); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "prescription", p.ID, nil)
	return p, nil
}

// UpdateStatus changes the prescription status without the lock guard, so a
// doctor can still complete or cancel an active prescription.
func (s *Service) UpdateStatus(ctx context.Context, actor *model.Identity, id uuid.UUID, status model.PrescriptionStatus) (*model.Prescription, error) {
	if !status.Valid() {
		return nil, apperror.Newf(apperror.KindValidation, "invalid prescription status %q", status)
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DoctorID != actor.ID {
		return nil, apperror.New(apperror.KindNotOwner, "only the prescribing doctor may modify this prescription")
	}

	if err := s.prescriptions.UpdateStatus(ctx, id, status); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	p.Status = status

	s.auditor.Record(ctx, actor, "status_changed", "prescription", p.ID, map[string]interface{}{
		"status": status,
	})
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.prescriptions.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "prescription", id, nil)
	return nil
}
