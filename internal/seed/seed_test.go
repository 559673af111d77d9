package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, data.Folders)
	require.NotEmpty(t, data.Tags)
	require.NotEmpty(t, data.Notes)

	folders := map[string]bool{}
	for _, f := range data.Folders {
		assert.True(t, util.IsValidID(f.ID), f.ID)
		folders[f.ID] = true
	}
	tags := map[string]bool{}
	for _, tag := range data.Tags {
		assert.True(t, util.IsValidID(tag.ID), tag.ID)
		tags[tag.ID] = true
	}
	// 示例数据中不存在悬空引用
	for _, n := range data.Notes {
		assert.True(t, util.IsValidID(n.ID), n.ID)
		if n.FolderID != "" {
			assert.True(t, folders[n.FolderID], n.FolderID)
		}
		for _, id := range n.Tags {
			assert.True(t, tags[id], id)
		}
	}
}

func TestRun_Twice(t *testing.T) {
	ctx := context.Background()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "seed.sqlite3"),
	}, nil)
	require.NoError(t, err)

	data, err := Load()
	require.NoError(t, err)

	// 重复执行会先清空旧数据
	for i := 0; i < 2; i++ {
		res, err := Run(ctx, db, data, nil)
		require.NoError(t, err)
		assert.Equal(t, len(data.Notes), res.Notes)
	}

	notes, err := dao.NewNoteRepository(dao.New(db)).List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, len(data.Notes))

	res, err := dao.NewNoteRepository(dao.New(db)).SweepDanglingReferences(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.FolderRefs)
	assert.Zero(t, res.TagRefs)
}
