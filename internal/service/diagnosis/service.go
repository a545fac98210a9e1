package diagnosis

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	diagnoses repository.DiagnosisRepository
	auditor   *audit.Service
}

func NewService(diagnoses repository.DiagnosisRepository, auditor *audit.Service) *Service {
	return &Service{diagnoses: diagnoses, auditor: auditor}
}

// Create adds a catalog entry. Codes are unique and immutable once created.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateDiagnosisRequest) (*model.Diagnosis, error) {
	exists, err := s.diagnoses.CodeExists(ctx, req.Code, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Newf(apperror.KindDuplicateCode, "diagnosis code %s already exists", req.Code)
	}

	d := &model.Diagnosis{
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.diagnoses.Create(ctx, d); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "diagnosis", d.ID, map[string]interface{}{"code": d.Code})
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Diagnosis, error) {
	d, err := s.diagnoses.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, search string) ([]*model.Diagnosis, error) {
	diagnoses, err := s.diagnoses.List(ctx, search)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return diagnoses, nil
}

// Update changes the description only; the code is the stable key other
// records reference.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateDiagnosisRequest) (*model.Diagnosis, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		d.Description = *req.Description
	}

	if err := s.diagnoses.Update(ctx, d); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "diagnosis", d.ID, nil)
	return d, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.diagnoses.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "diagnosis", id, nil)
	return nil
}
