package evolution

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type Service struct {
	evolutions repository.EvolutionRepository
	notes      repository.ClinicalNoteRepository
	auditor    *audit.Service
}

func NewService(evolutions repository.EvolutionRepository, notes repository.ClinicalNoteRepository, auditor *audit.Service) *Service {
	return &Service{evolutions: evolutions, notes: notes, auditor: auditor}
}

// Create attaches a follow-up entry to an existing clinical note, authored
// by the caller.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateEvolutionRequest) (*model.Evolution, error) {
	if _, err := s.notes.Get(ctx, req.ClinicalNoteID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindReferenceNotFound, "referenced clinical note does not exist")
		}
		return nil, apperror.Internal(err)
	}

	ev := &model.Evolution{
		ClinicalNoteID: req.ClinicalNoteID,
		DoctorID:       actor.ID,
		Description:    req.Description,
		Treatment:      req.Treatment,
	}
	if err := s.evolutions.Create(ctx, ev); err != nil {
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "evolution", ev.ID, map[string]interface{}{
		"clinical_note_id": ev.ClinicalNoteID,
	})
	return ev, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Evolution, error) {
	ev, err := s.evolutions.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return ev, nil
}

func (s *Service) ListByClinicalNote(ctx context.Context, noteID uuid.UUID) ([]*model.Evolution, error) {
	if _, err := s.notes.Get(ctx, noteID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	evolutions, err := s.evolutions.ListByClinicalNote(ctx, noteID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return evolutions, nil
}

// Update follows the same strict authorship rule as clinical notes.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateEvolutionRequest) (*model.Evolution, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if ev.DoctorID != actor.ID {
		return nil, apperror.New(apperror.KindNotOwner, "only the authoring doctor may modify this evolution")
	}

	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Treatment != nil {
		ev.Treatment = *req.Treatment
	}

	if err := s.evolutions.Update(ctx, ev); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "evolution", ev.ID, nil)
	return ev, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.evolutions.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deleted", "evolution", id, nil)
	return nil
}
