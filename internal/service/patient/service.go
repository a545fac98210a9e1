package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	patients repository.PatientRepository
	auditor  *audit.Service
}

func NewService(patients repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{patients: patients, auditor: auditor}
}

// Create registers a patient. The (identification type, identification
// number) pair must be unique; the unique index backstops the
// check-then-write race.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreatePatientRequest) (*model.Patient, error) {
	exists, err := s.patients.IdentificationExists(ctx, req.IdentificationType, req.IdentificationNumber, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Newf(apperror.KindDuplicateIdentity,
			"a patient with identification %s %s already exists",
			req.IdentificationType, req.IdentificationNumber)
	}

	p := &model.Patient{
		IdentificationType:   req.IdentificationType,
		IdentificationNumber: req.IdentificationNumber,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		BirthDate:            req.BirthDate,
		Gender:               req.Gender,
		Phone:                req.Phone,
		Email:                req.Email,
		Address:              req.Address,
		InsuranceProvider:    req.InsuranceProvider,
		Active:               true,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "patient", p.ID, map[string]interface{}{
		"identification_type":   p.IdentificationType,
		"identification_number": p.IdentificationNumber,
	})
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, err := s.patients.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.patients.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return patients, nil
}

func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	idType := p.IdentificationType
	idNumber := p.IdentificationNumber
	if req.IdentificationType != nil {
		idType = *req.IdentificationType
	}
	if req.IdentificationNumber != nil {
		idNumber = *req.IdentificationNumber
	}
	if idType != p.IdentificationType || idNumber != p.IdentificationNumber {
		exists, err := s.patients.IdentificationExists(ctx, idType, idNumber, &id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if exists {
			return nil, apperror.Newf(apperror.KindDuplicateIdentity,
				"a patient with identification %s %s already exists", idType, idNumber)
		}
	}
	p.IdentificationType = idType
	p.IdentificationNumber = idNumber

	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.InsuranceProvider != nil {
		p.InsuranceProvider = *req.InsuranceProvider
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.patients.Update(ctx, p); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "patient", p.ID, nil)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "patient", id, nil)
	return nil
}
