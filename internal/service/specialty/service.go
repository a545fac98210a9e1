package specialty

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	specialties repository.SpecialtyRepository
	auditor     *audit.Service
}

func NewService(specialties repository.SpecialtyRepository, auditor *audit.Service) *Service {
	return &Service{specialties: specialties, auditor: auditor}
}

// Create adds a specialty. Names are unique case-insensitively.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateSpecialtyRequest) (*model.Specialty, error) {
	exists, err := s.specialties.NameExists(ctx, req.Name, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Newf(apperror.KindDuplicateName, "specialty %q already exists", req.Name)
	}

	sp := &model.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.specialties.Create(ctx, sp); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "specialty", sp.ID, map[string]interface{}{"name": sp.Name})
	return sp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	sp, err := s.specialties.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return sp, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Specialty, error) {
	specialties, err := s.specialties.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return specialties, nil
}

func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateSpecialtyRequest) (*model.Specialty, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != sp.Name {
		exists, err := s.specialties.NameExists(ctx, *req.Name, &id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if exists {
			return nil, apperror.Newf(apperror.KindDuplicateName, "specialty %q already exists", *req.Name)
		}
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}

	if err := s.specialties.Update(ctx, sp); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "specialty", sp.ID, nil)
	return sp, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.specialties.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "specialty", id, nil)
	return nil
}
