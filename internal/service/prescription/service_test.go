package prescription

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

type fakePrescriptionRepo struct {
	prescriptions map[uuid.UUID]*model.Prescription
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{prescriptions: make(map[uuid.UUID]*model.Prescription)}
}

func (f *fakePrescriptionRepo) Create(_ context.Context, p *model.Prescription) error {
	p.ID = uuid.New()
	clone := *p
	f.prescriptions[p.ID] = &clone
	return nil
}

func (f *fakePrescriptionRepo) Get(_ context.Context, id uuid.UUID) (*model.Prescription, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "prescription not found")
	}
	clone := *p
	return &clone, nil
}

func (f *fakePrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Prescription, error) {
	var out []*model.Prescription
	for _, p := range f.prescriptions {
		if p.PatientID == patientID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) Update(_ context.Context, p *model.Prescription) error {
	if _, ok := f.prescriptions[p.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "prescription not found")
	}
	clone := *p
	f.prescriptions[p.ID] = &clone
	return nil
}

func (f *fakePrescriptionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.PrescriptionStatus) error {
	p, ok := f.prescriptions[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "prescription not found")
	}
	p.Status = status
	return nil
}

func (f *fakePrescriptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.prescriptions[id]; !ok {
		return apperror.New(apperror.KindNotFound, "prescription not found")
	}
	delete(f.prescriptions, id)
	return nil
}

type fakePatientRepo struct {
	ids map[uuid.UUID]bool
}

func (f *fakePatientRepo) Create(_ context.Context, _ *model.Patient) error { return nil }
func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	if !f.ids[id] {
		return nil, apperror.New(apperror.KindNotFound, "patient not found")
	}
	return &model.Patient{Base: model.Base{ID: id}}, nil
}
func (f *fakePatientRepo) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }
func (f *fakePatientRepo) IdentificationExists(_ context.Context, _, _ string, _ *uuid.UUID) (bool, error) {
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
	svc       *Service
	repo      *fakePrescriptionRepo
	patientID uuid.UUID
	doctor    *model.Identity
}

func newFixture() *fixture {
	patientID := uuid.New()
	repo := newFakePrescriptionRepo()
	svc := NewService(
		repo,
		&fakePatientRepo{ids: map[uuid.UUID]bool{patientID: true}},
		audit.NewService(&fakeOutboxRepo{}),
	)
	return &fixture{
		svc:       svc,
		repo:      repo,
		patientID: patientID,
		doctor:    &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser},
	}
}

func (fx *fixture) prescribe(t *testing.T) *model.Prescription {
	t.Helper()
	p, err := fx.svc.Create(context.Background(), fx.doctor, &model.CreatePrescriptionRequest{
		PatientID:    fx.patientID,
		Medication:   "amoxicillin 500mg",
		Dosage:       "1 capsule",
		Frequency:    "every 8 hours",
		DurationDays: 7,
	})
	require.NoError(t, err)
	return p
}

func TestCreateStartsActiveWithAuthor(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)
	assert.Equal(t, model.PrescriptionStatusActive, p.Status)
	assert.Equal(t, fx.doctor.ID, p.DoctorID)
}

func TestCreateUnknownPatient(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), fx.doctor, &model.CreatePrescriptionRequest{
		PatientID:    uuid.New(),
		Medication:   "amoxicillin 500mg",
		Dosage:       "1 capsule",
		Frequency:    "every 8 hours",
		DurationDays: 7,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
}

func TestUpdateByPrescriber(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)

	dosage := "2 capsules"
	updated, err := fx.svc.Update(context.Background(), fx.doctor, p.ID, &model.UpdatePrescriptionRequest{
		Dosage: &dosage,
	})
	require.NoError(t, err)
	assert.Equal(t, dosage, updated.Dosage)
}

func TestUpdateByOtherDoctorRefused(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)

	other := &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser}
	dosage := "2 capsules"
	_, err := fx.svc.Update(context.Background(), other, p.ID, &model.UpdatePrescriptionRequest{
		Dosage: &dosage,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
	assert.Equal(t, "1 capsule", fx.repo.prescriptions[p.ID].Dosage, "rejected update must not write")
}

func TestUpdateCompletedRefused(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)
	fx.repo.prescriptions[p.ID].Status = model.PrescriptionStatusCompleted

	dosage := "2 capsules"
	_, err := fx.svc.Update(context.Background(), fx.doctor, p.ID, &model.UpdatePrescriptionRequest{
		Dosage: &dosage,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindRecordLocked, apperror.KindOf(err))
}

func TestStatusChangeByPrescriber(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)

	// the status endpoint carries no lock guard, so an active
	// prescription can still be completed or cancelled
	updated, err := fx.svc.UpdateStatus(context.Background(), fx.doctor, p.ID, model.PrescriptionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionStatusCompleted, updated.Status)
}

func TestStatusChangeByOtherDoctorRefused(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)

	other := &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser}
	_, err := fx.svc.UpdateStatus(context.Background(), other, p.ID, model.PrescriptionStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
	assert.Equal(t, model.PrescriptionStatusActive, fx.repo.prescriptions[p.ID].Status)
}

func TestStatusChangeInvalidValue(t *testing.T) {
	fx := newFixture()
	p := fx.prescribe(t)

	_, err := fx.svc.UpdateStatus(context.Background(), fx.doctor, p.ID, model.PrescriptionStatus("suspended"))
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestListByPatient(t *testing.T) {
	fx := newFixture()
	fx.prescribe(t)
	fx.prescribe(t)

	prescriptions, err := fx.svc.ListByPatient(context.Background(), fx.patientID)
	require.NoError(t, err)
	assert.Len(t, prescriptions, 2)
}
