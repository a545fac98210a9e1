package rips

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

type fakeRIPSRepo struct {
	records map[uuid.UUID]*model.RIPS
}

func newFakeRIPSRepo() *fakeRIPSRepo {
	return &fakeRIPSRepo{records: make(map[uuid.UUID]*model.RIPS)}
}

func (f *fakeRIPSRepo) Create(_ context.Context, r *model.RIPS) error {
	r.ID = uuid.New()
	clone := *r
	f.records[r.ID] = &clone
	return nil
}

func (f *fakeRIPSRepo) Get(_ context.Context, id uuid.UUID) (*model.RIPS, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "billing record not found")
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRIPSRepo) List(_ context.Context, _ *model.RIPSFilters) ([]*model.RIPS, error) {
	return nil, nil
}

func (f *fakeRIPSRepo) Update(_ context.Context, r *model.RIPS) error {
	if _, ok := f.records[r.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "billing record not found")
	}
	clone := *r
	f.records[r.ID] = &clone
	return nil
}

func (f *fakeRIPSRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.RIPSStatus) error {
	r, ok := f.records[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "billing record not found")
	}
	r.Status = status
	return nil
}

func (f *fakeRIPSRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return apperror.New(apperror.KindNotFound, "billing record not found")
	}
	delete(f.records, id)
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

type fakeAppointmentRepo struct{}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
	return nil, apperror.New(apperror.KindNotFound, "appointment not found")
}
func (f *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListForConflictCheck(_ context.Context, _ uuid.UUID, _ string, _ *uuid.UUID) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Update(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.AppointmentStatus) error {
	return nil
}
func (f *fakeAppointmentRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeOutboxRepo struct{}

func (f *fakeOutboxRepo) Enqueue(_ context.Context, _ *model.OutboxEvent) error { return nil }
func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

var actor = &model.Identity{ID: uuid.New(), Role: authz.RoleAdministrative}

func newFixture() (*Service, *fakeRIPSRepo, uuid.UUID) {
	patientID := uuid.New()
	repo := newFakeRIPSRepo()
	svc := NewService(
		repo,
		&fakePatientRepo{ids: map[uuid.UUID]bool{patientID: true}},
		&fakeAppointmentRepo{},
		audit.NewService(&fakeOutboxRepo{}),
	)
	return svc, repo, patientID
}

func file(t *testing.T, svc *Service, patientID uuid.UUID) *model.RIPS {
	t.Helper()
	r, err := svc.Create(context.Background(), actor, &model.CreateRIPSRequest{
		PatientID:     patientID,
		ServiceCode:   "890201",
		InvoiceNumber: "FV-1001",
		ServiceValue:  85000,
	})
	require.NoError(t, err)
	return r
}

func TestCreateStartsPending(t *testing.T) {
	svc, _, patientID := newFixture()
	r := file(t, svc, patientID)
	assert.Equal(t, model.RIPSStatusPending, r.Status)
}

func TestUpdatePendingAllowed(t *testing.T) {
	svc, _, patientID := newFixture()
	r := file(t, svc, patientID)

	value := int64(92000)
	updated, err := svc.Update(context.Background(), actor, r.ID, &model.UpdateRIPSRequest{
		ServiceValue: &value,
	})
	require.NoError(t, err)
	assert.Equal(t, value, updated.ServiceValue)
}

func TestUpdatePaidRejected(t *testing.T) {
	svc, repo, patientID := newFixture()
	r := file(t, svc, patientID)
	repo.records[r.ID].Status = model.RIPSStatusPaid

	value := int64(1)
	_, err := svc.Update(context.Background(), actor, r.ID, &model.UpdateRIPSRequest{
		ServiceValue: &value,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindRecordLocked, apperror.KindOf(err))
	assert.Equal(t, int64(85000), repo.records[r.ID].ServiceValue, "rejected update must not write")
}

func TestDeletePaidRejected(t *testing.T) {
	svc, repo, patientID := newFixture()
	r := file(t, svc, patientID)
	repo.records[r.ID].Status = model.RIPSStatusPaid

	err := svc.Delete(context.Background(), actor, r.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindRecordLocked, apperror.KindOf(err))
	assert.Len(t, repo.records, 1)
}

func TestDeletePendingAllowed(t *testing.T) {
	svc, repo, patientID := newFixture()
	r := file(t, svc, patientID)

	require.NoError(t, svc.Delete(context.Background(), actor, r.ID))
	assert.Empty(t, repo.records)
}

func TestStatusFlowToPaidThenLocked(t *testing.T) {
	svc, _, patientID := newFixture()
	r := file(t, svc, patientID)

	_, err := svc.UpdateStatus(context.Background(), actor, r.ID, model.RIPSStatusApproved)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), actor, r.ID, model.RIPSStatusPaid)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), actor, r.ID, model.RIPSStatusPending)
	require.Error(t, err)
	assert.Equal(t, apperror.KindRecordLocked, apperror.KindOf(err))
}

func TestCreateUnknownAppointmentReference(t *testing.T) {
	svc, _, patientID := newFixture()
	aptID := uuid.New()

	_, err := svc.Create(context.Background(), actor, &model.CreateRIPSRequest{
		PatientID:     patientID,
		AppointmentID: &aptID,
		ServiceCode:   "890201",
		InvoiceNumber: "FV-1002",
		ServiceValue:  85000,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
}
