package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/dto"
	"github.com/haierkeys/noteful-service/pkg/code"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"
	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

var errStore = errors.New("connection reset")

type mockFolderRepo struct {
	domain.FolderRepository
	folders   map[string]*domain.Folder
	createErr error
	deleteErr error
	calls     atomic.Int32
}

func (m *mockFolderRepo) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	m.calls.Add(1)
	if f, ok := m.folders[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFolderRepo) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	m.calls.Add(1)
	if m.createErr != nil {
		return nil, m.createErr
	}
	folder.ID = util.NewID()
	return folder, nil
}

func (m *mockFolderRepo) Rename(ctx context.Context, id, name string) (*domain.Folder, error) {
	m.calls.Add(1)
	return nil, gorm.ErrDuplicatedKey
}

func (m *mockFolderRepo) Delete(ctx context.Context, id string) error {
	m.calls.Add(1)
	return m.deleteErr
}

func (m *mockFolderRepo) ExistIDs(ctx context.Context, ids []string) ([]string, error) {
	var found []string
	for _, id := range ids {
		if _, ok := m.folders[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

type mockTagRepo struct {
	domain.TagRepository
	tags map[string]bool
}

func (m *mockTagRepo) ExistIDs(ctx context.Context, ids []string) ([]string, error) {
	var found []string
	for _, id := range ids {
		if m.tags[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

type mockNoteRepo struct {
	domain.NoteRepository
	unsetErr   error
	unsetCalls atomic.Int32
	created    *domain.Note
	update     *domain.NoteUpdate
	sweeps     atomic.Int32
}

func (m *mockNoteRepo) UnsetFolder(ctx context.Context, folderID string) (int64, error) {
	m.unsetCalls.Add(1)
	return 2, m.unsetErr
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m.created = note
	note.ID = util.NewID()
	return note, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	m.update = update
	n := &domain.Note{ID: id, Title: "kept"}
	update.Apply(n)
	return n, nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoteRepo) SweepDanglingReferences(ctx context.Context) (*domain.SweepResult, error) {
	m.sweeps.Add(1)
	return &domain.SweepResult{FolderRefs: 1}, nil
}

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		kind entityKind
		err  error
		want *code.Code
	}{
		{"folder duplicate", kindFolder, gorm.ErrDuplicatedKey, code.ErrorFolderNameExists},
		{"tag duplicate", kindTag, errors.New("UNIQUE constraint failed: tag.name"), code.ErrorTagNameExists},
		{"note duplicate is a store failure", kindNote, gorm.ErrDuplicatedKey, code.ErrorStoreFailure},
		{"not found", kindNote, gorm.ErrRecordNotFound, code.ErrorNoteNotFound},
		{"other", kindFolder, errStore, code.ErrorStoreFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStoreError(tt.kind, tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.NoError(t, mapStoreError(kindFolder, nil))
}

func TestFolderService_InvalidIDSkipsStore(t *testing.T) {
	ctx := context.Background()
	repo := &mockFolderRepo{}
	notes := &mockNoteRepo{}
	svc := NewFolderService(repo, notes, NewCascadeCoordinator(nil, nil))

	name := "x"
	for _, id := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", util.NewID() + "0"} {
		_, err := svc.Get(ctx, id)
		assert.ErrorIs(t, err, code.ErrorInvalidID)
		_, err = svc.Update(ctx, id, &dto.FolderUpdateRequest{Name: &name})
		assert.ErrorIs(t, err, code.ErrorInvalidID)
		assert.ErrorIs(t, svc.Delete(ctx, id), code.ErrorInvalidID)
	}
	assert.Zero(t, repo.calls.Load())
	assert.Zero(t, notes.unsetCalls.Load())
}

func TestFolderService_Errors(t *testing.T) {
	ctx := context.Background()
	repo := &mockFolderRepo{createErr: gorm.ErrDuplicatedKey}
	svc := NewFolderService(repo, &mockNoteRepo{}, NewCascadeCoordinator(nil, nil))

	_, err := svc.Create(ctx, &dto.FolderCreateRequest{Name: "Work"})
	assert.ErrorIs(t, err, code.ErrorFolderNameExists)

	name := "Work"
	_, err = svc.Update(ctx, util.NewID(), &dto.FolderUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, code.ErrorFolderNameExists)

	_, err = svc.Get(ctx, util.NewID())
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
	assert.Equal(t, 404, apperrors.CodeOf(err).StatusCode())

	// 未提供 name 时返回原文档
	id := util.NewID()
	repo.folders = map[string]*domain.Folder{id: {ID: id, Name: "Home"}}
	got, err := svc.Update(ctx, id, &dto.FolderUpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Name)
}

func TestFolderService_DeleteCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("both succeed", func(t *testing.T) {
		notes := &mockNoteRepo{}
		svc := NewFolderService(&mockFolderRepo{}, notes, NewCascadeCoordinator(nil, nil))
		assert.NoError(t, svc.Delete(ctx, util.NewID()))
		assert.Equal(t, int32(1), notes.unsetCalls.Load())
	})

	t.Run("clear fails after delete", func(t *testing.T) {
		repo := &mockFolderRepo{}
		notes := &mockNoteRepo{unsetErr: errStore}
		svc := NewFolderService(repo, notes, NewCascadeCoordinator(nil, nil))
		err := svc.Delete(ctx, util.NewID())
		assert.ErrorIs(t, err, code.ErrorStoreFailure)
		// 删除仍然执行过
		assert.Equal(t, int32(1), repo.calls.Load())
	})
}

func TestCascadeCoordinator_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCascadeCoordinator(nil, reg)

	rapid.Check(t, func(t *rapid.T) {
		removeFails := rapid.Bool().Draw(t, "removeFails")
		clearFails := rapid.Bool().Draw(t, "clearFails")

		var removed, cleared atomic.Bool
		err := c.Run(context.Background(), CascadeTag, util.NewID(),
			func(ctx context.Context, id string) error {
				removed.Store(true)
				if removeFails {
					return errStore
				}
				return nil
			},
			func(ctx context.Context, id string) (int64, error) {
				cleared.Store(true)
				if clearFails {
					return 0, errStore
				}
				return 1, nil
			},
		)

		// 一方失败不会阻止另一方执行
		if !removed.Load() || !cleared.Load() {
			t.Fatalf("both operations must run: removed=%v cleared=%v", removed.Load(), cleared.Load())
		}
		if (removeFails || clearFails) != (err != nil) {
			t.Fatalf("removeFails=%v clearFails=%v err=%v", removeFails, clearFails, err)
		}
		if err != nil && !errors.Is(err, code.ErrorStoreFailure) {
			t.Fatalf("expected store failure, got %v", err)
		}
	})

	ok := testutil.ToFloat64(c.counter.WithLabelValues(string(CascadeTag), cascadeOutcomeOK))
	failed := testutil.ToFloat64(c.counter.WithLabelValues(string(CascadeTag), cascadeOutcomeFailed))
	assert.Positive(t, ok+failed)

	// 重复注册时复用已有计数器
	again := NewCascadeCoordinator(nil, reg)
	assert.Same(t, c.counter, again.counter)
}

func TestNoteService_References(t *testing.T) {
	ctx := context.Background()
	folderID, t1, t2 := util.NewID(), util.NewID(), util.NewID()
	notes := &mockNoteRepo{}
	svc := NewNoteService(notes,
		&mockFolderRepo{folders: map[string]*domain.Folder{folderID: {ID: folderID}}},
		&mockTagRepo{tags: map[string]bool{t1: true, t2: true}},
	)

	created, err := svc.Create(ctx, &dto.NoteCreateRequest{Title: "T", FolderID: folderID, Tags: []string{t1, t2, t1}})
	require.NoError(t, err)
	assert.Equal(t, []string{t1, t2}, created.Tags)
	assert.Equal(t, folderID, created.FolderID)

	_, err = svc.Create(ctx, &dto.NoteCreateRequest{Title: "T", FolderID: util.NewID()})
	assert.ErrorIs(t, err, code.ErrorReferenceMissing)

	_, err = svc.Create(ctx, &dto.NoteCreateRequest{Title: "T", Tags: []string{t1, util.NewID()}})
	assert.ErrorIs(t, err, code.ErrorReferenceMissing)
	assert.Equal(t, code.NameInvalidIdentifier, apperrors.CodeOf(err).Name())
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	notes := &mockNoteRepo{}
	svc := NewNoteService(notes, &mockFolderRepo{}, &mockTagRepo{})

	content := "only content"
	got, err := svc.Update(ctx, util.NewID(), &dto.NoteUpdateRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
	assert.Nil(t, notes.update.FolderID)
	assert.Nil(t, notes.update.Tags)

	_, err = svc.Update(ctx, util.NewID(), &dto.NoteUpdateRequest{
		FolderID: dto.Optional[string]{Set: true, Null: true},
		Tags:     dto.Optional[[]string]{Set: true, Null: true},
	})
	require.NoError(t, err)
	require.NotNil(t, notes.update.FolderID)
	assert.Empty(t, *notes.update.FolderID)
	require.NotNil(t, notes.update.Tags)
	assert.Empty(t, *notes.update.Tags)

	// 空更新返回原文档，不存在时为 404
	_, err = svc.Update(ctx, util.NewID(), &dto.NoteUpdateRequest{})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_SweepReferences(t *testing.T) {
	notes := &mockNoteRepo{}
	svc := NewNoteService(notes, &mockFolderRepo{}, &mockTagRepo{})

	res, err := svc.SweepReferences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FolderRefs)
	assert.Equal(t, int32(1), notes.sweeps.Load())
}
