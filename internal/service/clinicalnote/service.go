package clinicalnote

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	notes        repository.ClinicalNoteRepository
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	diagnoses    repository.DiagnosisRepository
	auditor      *audit.Service
}

func NewService(notes repository.ClinicalNoteRepository, patients repository.PatientRepository, appointments repository.AppointmentRepository, diagnoses repository.DiagnosisRepository, auditor *audit.Service) *Service {
	return &Service{
		notes:        notes,
		patients:     patients,
		appointments: appointments,
		diagnoses:    diagnoses,
		auditor:      auditor,
	}
}

// Create authors a note on behalf of the caller: the doctor id is always
// the authenticated identity, never client-supplied.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateClinicalNoteRequest) (*model.ClinicalNote, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindReferenceNotFound, "referenced patient does not exist")
		}
		return nil, apperror.Internal(err)
	}
	if req.AppointmentID != nil {
		if _, err := s.appointments.Get(ctx, *req.AppointmentID); err != nil {
			if apperror.Is(err, apperror.KindNotFound) {
				return nil, apperror.New(apperror.KindReferenceNotFound, "referenced appointment does not exist")
			}
			return nil, apperror.Internal(err)
		}
	}
	if req.DiagnosisCode != nil {
		if err := s.diagnosisExists(ctx, *req.DiagnosisCode); err != nil {
			return nil, err
		}
	}

	note := &model.ClinicalNote{
		PatientID:      req.PatientID,
		DoctorID:       actor.ID,
		AppointmentID:  req.AppointmentID,
		DiagnosisCode:  req.DiagnosisCode,
		ChiefComplaint: req.ChiefComplaint,
		Findings:       req.Findings,
		Plan:           req.Plan,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "clinical_note", note.ID, map[string]interface{}{
		"patient_id": note.PatientID,
	})
	return note, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return note, nil
}

func (s *Service) List(ctx context.Context, filters *model.ClinicalNoteFilters) ([]*model.ClinicalNote, error) {
	notes, err := s.notes.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notes, nil
}

// Update is restricted to the authoring doctor. The restriction is strict:
// a super user who did not author the note is refused too.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateClinicalNoteRequest) (*model.ClinicalNote, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if note.DoctorID != actor.ID {
		return nil, apperror.New(apperror.KindNotOwner, "only the authoring doctor may modify this note")
	}

	if req.DiagnosisCode != nil {
		if err := s.diagnosisExists(ctx, *req.DiagnosisCode); err != nil {
			return nil, err
		}
		note.DiagnosisCode = req.DiagnosisCode
	}
	if req.ChiefComplaint != nil {
		note.ChiefComplaint = *req.ChiefComplaint
	}
	if req.Findings != nil {
		note.Findings = *req.Findings
	}
	if req.Plan != nil {
		note.Plan = *req.Plan
	}

	if err := s.notes.Update(ctx, note); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "clinical_note", note.ID, nil)
	return note, nil
}

// Delete has no ownership restriction of its own: route authorization
// already limits it to the super user.
func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "clinical_note", id, nil)
	return nil
}

func (s *Service) diagnosisExists(ctx context.Context, code string) error {
	if _, err := s.diagnoses.GetByCode(ctx, code); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.Newf(apperror.KindReferenceNotFound, "diagnosis code %s does not exist", code)
		}
		return apperror.Internal(err)
	}
	return nil
}
