package dao

import (
	"context"
	"sort"
	"testing"

	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/model"
	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// 任意插入顺序下列表都按名称升序
func TestFolderRepository_ListSortedProperty(t *testing.T) {
	d := newTestDao(t)
	repo := NewFolderRepository(d)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Za-z0-9 ]{1,12}`), 1, 8, rapid.ID[string]).Draw(rt, "names")
		for _, name := range names {
			if _, err := repo.Create(ctx, &domain.Folder{Name: name}); err != nil {
				rt.Fatalf("create %q: %v", name, err)
			}
		}

		list, err := repo.List(ctx)
		if err != nil {
			rt.Fatalf("list: %v", err)
		}
		got := make([]string, 0, len(list))
		for _, f := range list {
			got = append(got, f.Name)
		}
		want := append([]string{}, names...)
		sort.Strings(want)
		if len(got) != len(want) {
			rt.Fatalf("got %v want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("got %v want %v", got, want)
			}
		}

		for _, f := range list {
			if err := repo.Delete(ctx, f.ID); err != nil {
				rt.Fatalf("delete: %v", err)
			}
		}
	})
}

// PullTag 只移除目标标签，其余标签保持原有顺序
func TestNoteRepository_PullTagProperty(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	pool := make([]string, 5)
	for i := range pool {
		pool[i] = util.NewID()
	}

	rapid.Check(t, func(rt *rapid.T) {
		tags := rapid.SliceOfDistinct(rapid.SampledFrom(pool), rapid.ID[string]).Draw(rt, "tags")
		target := rapid.SampledFrom(pool).Draw(rt, "target")

		note, err := repo.Create(ctx, &domain.Note{Title: "p", Tags: tags})
		if err != nil {
			rt.Fatalf("create: %v", err)
		}
		if _, err := repo.PullTag(ctx, target); err != nil {
			rt.Fatalf("pull: %v", err)
		}
		got, err := repo.GetByID(ctx, note.ID)
		if err != nil {
			rt.Fatalf("get: %v", err)
		}

		var want []string
		for _, tag := range tags {
			if tag != target {
				want = append(want, tag)
			}
		}
		if len(got.Tags) != len(want) {
			rt.Fatalf("got %v want %v", got.Tags, want)
		}
		for i := range want {
			if got.Tags[i] != want[i] {
				rt.Fatalf("got %v want %v", got.Tags, want)
			}
		}

		if err := repo.Delete(ctx, note.ID); err != nil {
			rt.Fatalf("delete: %v", err)
		}
	})

	var count int64
	require.NoError(t, d.Db.Model(&model.NoteTag{}).Count(&count).Error)
	require.Zero(t, count)
}
