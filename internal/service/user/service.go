package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
	"github.com/RogansDev/romedicals-api/pkg/security"
)

type Service struct {
	users       repository.UserRepository
	specialties repository.SpecialtyRepository
	hasher      security.PasswordHasher
	auditor     *audit.Service
}

func NewService(users repository.UserRepository, specialties repository.SpecialtyRepository, hasher security.PasswordHasher, auditor *audit.Service) *Service {
	return &Service{
		users:       users,
		specialties: specialties,
		hasher:      hasher,
		auditor:     auditor,
	}
}

// Create provisions an account. Email must be unique, and a referenced
// specialty must exist. The unique index on email backstops the
// check-then-write race.
func (s *Service) Create(ctx context.Context, actor *model.Identity, req *model.CreateUserRequest) (*model.User, error) {
	exists, err := s.users.EmailExists(ctx, req.Email, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.New(apperror.KindDuplicateIdentity, "a user with this email already exists")
	}

	if req.Role == authz.RoleMedicalUser && req.SpecialtyID == nil {
		return nil, apperror.New(apperror.KindValidation, "a medical user requires a specialty")
	}
	if req.SpecialtyID != nil {
		if err := s.specialtyExists(ctx, *req.SpecialtyID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid password", err)
	}

	u := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Active:       true,
		SpecialtyID:  req.SpecialtyID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "created", "user", u.ID, map[string]interface{}{"email": u.Email, "role": u.Role})
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	users, err := s.users.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

// Update replaces the supplied fields. The role is swapped wholesale; there
// is no role-transition model.
func (s *Service) Update(ctx context.Context, actor *model.Identity, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.users.EmailExists(ctx, *req.Email, &id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if exists {
			return nil, apperror.New(apperror.KindDuplicateIdentity, "a user with this email already exists")
		}
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.SpecialtyID != nil {
		if err := s.specialtyExists(ctx, *req.SpecialtyID); err != nil {
			return nil, err
		}
		u.SpecialtyID = req.SpecialtyID
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if u.Role == authz.RoleMedicalUser && u.SpecialtyID == nil {
		return nil, apperror.New(apperror.KindValidation, "a medical user requires a specialty")
	}

	if err := s.users.Update(ctx, u); err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}

	s.auditor.Record(ctx, actor, "updated", "user", u.ID, nil)
	return u, nil
}

// Deactivate disables the account. Users are never deleted so authored
// clinical records keep a valid reference.
func (s *Service) Deactivate(ctx context.Context, actor *model.Identity, id uuid.UUID) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return err
		}
		return apperror.Internal(err)
	}
	s.auditor.Record(ctx, actor, "deactivated", "user", id, nil)
	return nil
}

// Doctors lists active users holding a clinical role.
func (s *Service) Doctors(ctx context.Context) ([]*model.User, error) {
	active := true
	users, err := s.users.List(ctx, &model.UserFilters{Role: authz.RoleMedicalUser, Active: &active})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *Service) specialtyExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.specialties.Get(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.New(apperror.KindReferenceNotFound, "referenced specialty does not exist")
		}
		return apperror.Internal(err)
	}
	return nil
}
