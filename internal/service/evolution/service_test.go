package evolution

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

type fakeEvolutionRepo struct {
	evolutions map[uuid.UUID]*model.Evolution
}

func newFakeEvolutionRepo() *fakeEvolutionRepo {
	return &fakeEvolutionRepo{evolutions: make(map[uuid.UUID]*model.Evolution)}
}

func (f *fakeEvolutionRepo) Create(_ context.Context, ev *model.Evolution) error {
	ev.ID = uuid.New()
	clone := *ev
	f.evolutions[ev.ID] = &clone
	return nil
}

func (f *fakeEvolutionRepo) Get(_ context.Context, id uuid.UUID) (*model.Evolution, error) {
	ev, ok := f.evolutions[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "evolution not found")
	}
	clone := *ev
	return &clone, nil
}

func (f *fakeEvolutionRepo) ListByClinicalNote(_ context.Context, noteID uuid.UUID) ([]*model.Evolution, error) {
	var out []*model.Evolution
	for _, ev := range f.evolutions {
		if ev.ClinicalNoteID == noteID {
			clone := *ev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeEvolutionRepo) Update(_ context.Context, ev *model.Evolution) error {
	if _, ok := f.evolutions[ev.ID]; !ok {
		return apperror.New(apperror.KindNotFound, "evolution not found")
	}
	clone := *ev
	f.evolutions[ev.ID] = &clone
	return nil
}

func (f *fakeEvolutionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.evolutions[id]; !ok {
		return apperror.New(apperror.KindNotFound, "evolution not found")
	}
	delete(f.evolutions, id)
	return nil
}

type fakeNoteRepo struct {
	ids map[uuid.UUID]bool
}

func (f *fakeNoteRepo) Create(_ context.Context, _ *model.ClinicalNote) error { return nil }
func (f *fakeNoteRepo) Get(_ context.Context, id uuid.UUID) (*model.ClinicalNote, error) {
	if !f.ids[id] {
		return nil, apperror.New(apperror.KindNotFound, "clinical note not found")
	}
	return &model.ClinicalNote{Base: model.Base{ID: id}}, nil
}
func (f *fakeNoteRepo) List(_ context.Context, _ *model.ClinicalNoteFilters) ([]*model.ClinicalNote, error) {
	return nil, nil
}
func (f *fakeNoteRepo) Update(_ context.Context, _ *model.ClinicalNote) error { return nil }
func (f *fakeNoteRepo) Delete(_ context.Context, _ uuid.UUID) error           { return nil }

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
	repo   *fakeEvolutionRepo
	noteID uuid.UUID
	author *model.Identity
}

func newFixture() *fixture {
	noteID := uuid.New()
	repo := newFakeEvolutionRepo()
	svc := NewService(
		repo,
		&fakeNoteRepo{ids: map[uuid.UUID]bool{noteID: true}},
		audit.NewService(&fakeOutboxRepo{}),
	)
	return &fixture{
		svc:    svc,
		repo:   repo,
		noteID: noteID,
		author: &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser},
	}
}

func (fx *fixture) record(t *testing.T) *model.Evolution {
	t.Helper()
	ev, err := fx.svc.Create(context.Background(), fx.author, &model.CreateEvolutionRequest{
		ClinicalNoteID: fx.noteID,
		Description:    "fever subsiding, continuing antibiotics",
	})
	require.NoError(t, err)
	return ev
}

func TestCreateSetsAuthorFromIdentity(t *testing.T) {
	fx := newFixture()
	ev := fx.record(t)
	assert.Equal(t, fx.author.ID, ev.DoctorID)
}

func TestCreateUnknownClinicalNote(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), fx.author, &model.CreateEvolutionRequest{
		ClinicalNoteID: uuid.New(),
		Description:    "orphan entry",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindReferenceNotFound, apperror.KindOf(err))
	assert.Empty(t, fx.repo.evolutions, "rejected create must not write")
}

func TestUpdateByAuthor(t *testing.T) {
	fx := newFixture()
	ev := fx.record(t)

	treatment := "switch to oral antibiotics"
	updated, err := fx.svc.Update(context.Background(), fx.author, ev.ID, &model.UpdateEvolutionRequest{
		Treatment: &treatment,
	})
	require.NoError(t, err)
	assert.Equal(t, treatment, updated.Treatment)
}

func TestUpdateByOtherDoctorRefused(t *testing.T) {
	fx := newFixture()
	ev := fx.record(t)

	other := &model.Identity{ID: uuid.New(), Role: authz.RoleMedicalUser}
	description := "rewritten"
	_, err := fx.svc.Update(context.Background(), other, ev.ID, &model.UpdateEvolutionRequest{
		Description: &description,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
	assert.NotEqual(t, description, fx.repo.evolutions[ev.ID].Description, "rejected update must not write")
}

func TestUpdateBySuperUserRefusedToo(t *testing.T) {
	fx := newFixture()
	ev := fx.record(t)

	super := &model.Identity{ID: uuid.New(), Role: authz.RoleSuperUser}
	description := "override"
	_, err := fx.svc.Update(context.Background(), super, ev.ID, &model.UpdateEvolutionRequest{
		Description: &description,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotOwner, apperror.KindOf(err))
}

func TestListByClinicalNoteUnknownNote(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.ListByClinicalNote(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListByClinicalNote(t *testing.T) {
	fx := newFixture()
	fx.record(t)
	fx.record(t)

	evolutions, err := fx.svc.ListByClinicalNote(context.Background(), fx.noteID)
	require.NoError(t, err)
	assert.Len(t, evolutions, 2)
}

func TestDeleteRemovesEvolution(t *testing.T) {
	fx := newFixture()
	ev := fx.record(t)

	super := &model.Identity{ID: uuid.New(), Role: authz.RoleSuperUser}
	require.NoError(t, fx.svc.Delete(context.Background(), super, ev.ID))
	assert.Empty(t, fx.repo.evolutions)
}
