package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = uuid.New()
	clone := *p
	f.patients[p.ID] = &clone
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "patient not found")
	}
	clone := *p
	return &clone, nil
}

func (f *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := f.patients[p.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "patient not found")
	}
	clone := *p
	f.patients[p.ID] = &clone
	return nil
}

func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.patients[id]; !ok {
		return apperror.New(apperror.KindNotFound, "patient not found")
	}
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) IdentificationExists(_ context.Context, idType, idNumber string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range f.patients {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.IdentificationType == idType && p.IdentificationNumber == idNumber {
			return true, nil
		}
	}
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

var actor = &model.Identity{ID: uuid.New(), Role: authz.RoleAdministrative}

func newService() (*Service, *fakePatientRepo) {
	repo := newFakePatientRepo()
	return NewService(repo, audit.NewService(&fakeOutboxRepo{})), repo
}

func TestCreateDuplicateIdentification(t *testing.T) {
	svc, repo := newService()

	first, err := svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "123456",
		FirstName:            "Ana",
		LastName:             "García",
	})
	require.NoError(t, err)
	assert.True(t, first.Active)

	_, err = svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "123456",
		FirstName:            "Otra",
		LastName:             "Persona",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindDuplicateIdentity, apperror.KindOf(err))
	assert.Len(t, repo.patients, 1, "rejected create must not write")
}

func TestCreateSameNumberDifferentType(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "123456",
		FirstName:            "Ana",
		LastName:             "García",
	})
	require.NoError(t, err)

	// identity is the (type, number) pair, so TI/123456 is a new patient
	_, err = svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationTI,
		IdentificationNumber: "123456",
		FirstName:            "Luis",
		LastName:             "García",
	})
	require.NoError(t, err)
	assert.Len(t, repo.patients, 2)
}

func TestUpdateKeepingOwnIdentification(t *testing.T) {
	svc, _ := newService()

	p, err := svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "123456",
		FirstName:            "Ana",
		LastName:             "García",
	})
	require.NoError(t, err)

	// unchanged identification must not collide with itself
	phone := "3001234567"
	updated, err := svc.Update(context.Background(), actor, p.ID, &model.UpdatePatientRequest{
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
}

func TestUpdateToTakenIdentification(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "123456",
		FirstName:            "Ana",
		LastName:             "García",
	})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), actor, &model.CreatePatientRequest{
		IdentificationType:   model.IdentificationCC,
		IdentificationNumber: "654321",
		FirstName:            "Luis",
		LastName:             "Pérez",
	})
	require.NoError(t, err)

	taken := "123456"
	_, err = svc.Update(context.Background(), actor, second.ID, &model.UpdatePatientRequest{
		IdentificationNumber: &taken,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindDuplicateIdentity, apperror.KindOf(err))
}

func TestDeleteUnknown(t *testing.T) {
	svc, _ := newService()

	err := svc.Delete(context.Background(), actor, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
