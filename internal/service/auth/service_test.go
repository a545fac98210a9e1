package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/internal/service/user"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
	"github.com/RogansDev/romedicals-api/pkg/security"
	"github.com/RogansDev/romedicals-api/pkg/token"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "user not found")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.New(apperror.KindNotFound, "user not found")
}

func (f *fakeUserRepo) List(_ context.Context, _ *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "user not found")
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "user not found")
	}
	u.Active = false
	return nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	for _, u := range f.users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "user not found")
	}
	u.LastLoginAt = &at
	return nil
}

type fakeSpecialtyRepo struct {
	ids map[uuid.UUID]bool
}

func (f *fakeSpecialtyRepo) Create(_ context.Context, _ *model.Specialty) error { return nil }
func (f *fakeSpecialtyRepo) Get(_ context.Context, id uuid.UUID) (*model.Specialty, error) {
	if !f.ids[id] {
		return nil, apperror.New(apperror.KindNotFound, "specialty not found")
	}
	return &model.Specialty{Base: model.Base{ID: id}}, nil
}
func (f *fakeSpecialtyRepo) List(_ context.Context) ([]*model.Specialty, error) { return nil, nil }
func (f *fakeSpecialtyRepo) Update(_ context.Context, _ *model.Specialty) error { return nil }
func (f *fakeSpecialtyRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }
func (f *fakeSpecialtyRepo) NameExists(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
	return false, nil
}

type fakeOutboxRepo struct{}

func (f *fakeOutboxRepo) Enqueue(_ context.Context, _ *model.OutboxEvent) error { return nil }
func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

type fixture struct {
	svc    *Service
	repo   *fakeUserRepo
	hasher security.PasswordHasher
	tokens *token.Service
}

func newFixture() *fixture {
	repo := newFakeUserRepo()
	hasher := security.NewBcryptHasher(4)
	auditor := audit.NewService(&fakeOutboxRepo{})
	tokens := token.NewService("test-secret", time.Hour)
	userSvc := user.NewService(repo, &fakeSpecialtyRepo{ids: map[uuid.UUID]bool{}}, hasher, auditor)
	return &fixture{
		svc:    NewService(repo, userSvc, hasher, tokens, time.Hour, auditor),
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (fx *fixture) seedUser(t *testing.T, email, password string, active bool) *model.User {
	t.Helper()
	hash, err := fx.hasher.Hash(password)
	require.NoError(t, err)
	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Carlos",
		LastName:     "Mora",
		Role:         authz.RoleAdministrative,
		Active:       active,
	}
	require.NoError(t, fx.repo.Create(context.Background(), u))
	return u
}

func TestLoginSuccess(t *testing.T) {
	fx := newFixture()
	u := fx.seedUser(t, "carlos@clinic.co", "s3cret-pass", true)

	resp, err := fx.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carlos@clinic.co",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.NotNil(t, fx.repo.users[u.ID].LastLoginAt)

	claims, err := fx.tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	fx := newFixture()
	fx.seedUser(t, "carlos@clinic.co", "s3cret-pass", true)

	_, err := fx.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carlos@clinic.co",
		Password: "wrong-pass",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidCredential, apperror.KindOf(err))
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	fx := newFixture()
	fx.seedUser(t, "carlos@clinic.co", "s3cret-pass", true)

	_, errUnknown := fx.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.co",
		Password: "s3cret-pass",
	})
	_, errWrong := fx.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carlos@clinic.co",
		Password: "wrong-pass",
	})
	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	// the response must not reveal whether the account exists
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	assert.Equal(t, apperror.KindInvalidCredential, apperror.KindOf(errUnknown))
}

func TestLoginDisabledAccount(t *testing.T) {
	fx := newFixture()
	fx.seedUser(t, "carlos@clinic.co", "s3cret-pass", false)

	_, err := fx.svc.Login(context.Background(), &model.LoginRequest{
		Email:    "carlos@clinic.co",
		Password: "s3cret-pass",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindAccountDisabled, apperror.KindOf(err))
}

func TestRegisterIssuesToken(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "nueva@clinic.co",
		Password:  "s3cret-pass",
		FirstName: "Nueva",
		LastName:  "Cuenta",
		Role:      authz.RoleNursing,
	})
	require.NoError(t, err)
	assert.True(t, resp.User.Active)

	claims, err := fx.tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newFixture()
	fx.seedUser(t, "carlos@clinic.co", "s3cret-pass", true)

	_, err := fx.svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "carlos@clinic.co",
		Password:  "s3cret-pass",
		FirstName: "Otro",
		LastName:  "Carlos",
		Role:      authz.RoleNursing,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindDuplicateIdentity, apperror.KindOf(err))
}

func TestRegisterMedicalUserNeedsSpecialty(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "doc@clinic.co",
		Password:  "s3cret-pass",
		FirstName: "Doc",
		LastName:  "Tora",
		Role:      authz.RoleMedicalUser,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
