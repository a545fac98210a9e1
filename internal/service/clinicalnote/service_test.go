package clinicalnote

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

type fakeNoteRepo struct {
	notes map[uuid.UUID]*model.ClinicalNote
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*model.ClinicalNote)}
}

func (f *fakeNoteRepo) Create(_ context.Context, note *model.ClinicalNote) error {
	note.ID = uuid.New()
	clone := *note
	f.notes[note.ID] = &clone
	return nil
}

func (f *fakeNoteRepo) Get(_ context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	clone := *note
	return &clone, nil
}

func (f *fakeNoteRepo) List(_ context.Context, _ *model.ClinicalNoteFilters) ([]*model.ClinicalNote, error) {
	return nil, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *model.ClinicalNote) error {
	if _, ok := f.notes[note.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	clone := *note
	f.notes[note.ID] = &clone
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.notes[id]; !ok {
		return apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	delete(f.notes, id)
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

type fakeAppointmentRepo struct {
	ids map[uuid.UUID]bool
}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	if !f.ids[id] {
		return nil, apperror.New(apperror.KindNotFound, "appointment not found")
	}
	return &model.Appointment{Base: model.Base{ID: id}}, nil
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

type fakeDiagnosisRepo struct {
	codes map[string]bool
}

func (f *fakeDiagnosisRepo) Create(_ context.Context, _ *model.Diagnosis) error { return nil }
func (f *fakeDiagnosisRepo) Get(_ context.Context, _ uuid.UUID) (*model.Diagnosis, error) {
	return nil, apperror.New(apperror.KindNotFound, "diagnosis not found")
}
func (f *fakeDiagnosisRepo) GetByCode(_ context.Context, code string) (*model.Diagnosis, error) {
	if !f.codes[code] {
		return nil, apperror.New(apperror.KindNotFound, "diagnosis not found")
	}
	return &model.Diagnosis{Code: code}, nil
}
func (f *fakeDiagnosisRepo) List(_ context.Context, _ string) ([]*model.Diagnosis, error) {
	return nil, nil
}
func (f *fakeDiagnosisRepo) Update(_ context.Context, _ *model.Diagnosis) error { return nil }
func (f *fakeDiagnosisRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }
func (f *fakeDiagnosisRepo) CodeExists(_ context.Context, _ string, _ *uuid.UUID) (bool, error) {
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
	repo      *fakeNoteRepo
	patientID uuid.UUID
	author    *model.Identity
}

func newFixture() *fixture {
	patientID := uuid.New()
	repo := newFakeNoteRepo()
	svc := NewService(
		repo,
		&fakePatientRepo{ids: map[uuid.UUID]bool{patientID: true}},
		&fakeAppointmentRepo{ids: map[uuid.UUID]bool{}},
		&fakeDiagnosisRepo{codes: map[string]bool{"J00": true}},
		audit.NewService(&fakeOutboxRepo{}),
	)
	return &fixture{
		svc:       svc,
		repo:      repo,
		patientID: patientID,
		author:    &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser},
	}
}

func (fx *fixture) create(t *testing.T) *model.ClinicalNote {
	t.Helper()
	note, err := fx.svc.Create(context.Background(), fx.author, &model.CreateClinicalNoteRequest{
		PatientID:      fx.patientID,
		ChiefComplaint: "headache for three days",
	})
	require.NoError(t, err)
	return note
}

func TestCreateSetsAuthorFromIdentity(t *testing.T) {
	fx := newFixture()
	note := fx.create(t)
	assert.Equal(t, fx.author.ID, note.DoctorID)
}

func TestCreateUnknownPatient(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), fx.author, &model.CreateClinicalNoteRequest{
		PatientID:      uuid.New(),
		ChiefComplaint: "headache",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
}

func TestCreateUnknownAppointment(t *testing.T) {
	fx := newFixture()
	aptID := uuid.New()

	_, err := fx.svc.Create(context.Background(), fx.author, &model.CreateClinicalNoteRequest{
		PatientID:      fx.patientID,
		AppointmentID:  &aptID,
		ChiefComplaint: "headache",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
}

func TestCreateUnknownDiagnosisCode(t *testing.T) {
	fx := newFixture()
	code := "Z99"

	_, err := fx.svc.Create(context.Background(), fx.author, &model.CreateClinicalNoteRequest{
		PatientID:      fx.patientID,
		DiagnosisCode:  &code,
		ChiefComplaint: "headache",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
}

func TestUpdateByAuthor(t *testing.T) {
	fx := newFixture()
	note := fx.create(t)

	findings := "mild fever, congestion"
	updated, err := fx.svc.Update(context.Background(), fx.author, note.ID, &model.UpdateClinicalNoteRequest{
		Findings: &findings,
	})
	require.NoError(t, err)
	assert.Equal(t, findings, updated.Findings)
}

func TestUpdateByOtherDoctorRefused(t *testing.T) {
	fx := newFixture()
	note := fx.create(t)

	other := &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser}
	findings := "rewritten"
	_, err := fx.svc.Update(context.Background(), other, note.ID, &model.UpdateClinicalNoteRequest{
		Findings: &findings,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
	assert.Empty(t, fx.repo.notes[note.ID].Findings, "rejected update must not write")
}

func TestUpdateBySuperUserRefusedToo(t *testing.T) {
	fx := newFixture()
	note := fx.create(t)

	// authorship is strict: even the super user cannot edit another
	// doctor's note
	super := &model.Identity{ID: uuid.New(), Role: authz.RoleSuperUser}
	findings := "override"
	_, err := fx.svc.Update(context.Background(), super, note.ID, &model.UpdateClinicalNoteRequest{
		Findings: &findings,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
}

func TestDeleteRemovesNote(t *testing.T) {
	fx := newFixture()
	note := fx.create(t)

	super := &model.Identity{ID: uuid.New(), Role: authz.RoleSuperUser}
	require.NoError(t, fx.svc.Delete(context.Background(), super, note.ID))
	assert.Empty(t, fx.repo.notes)
}
