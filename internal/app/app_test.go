package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/noteful-service/internal/dao"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewApp(t *testing.T) {
	_, err := NewApp(nil, zap.NewNop(), nil)
	assert.Error(t, err)

	cfg := &AppConfig{Database: DatabaseConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "app.sqlite3"), AutoMigrate: true}}
	db, err := dao.NewDBEngineWithConfig(cfg.Database.DaoConfig("release"), nil)
	require.NoError(t, err)

	a, err := NewApp(cfg, zap.NewNop(), db, WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	assert.NotNil(t, a.FolderService)
	assert.NotNil(t, a.TagService)
	assert.NotNil(t, a.NoteService)
	assert.Equal(t, Version, a.Version().Version)

	done := a.TrackOperation()
	done()

	assert.False(t, a.IsShuttingDown())
	require.NoError(t, a.Shutdown(context.Background()))
	assert.True(t, a.IsShuttingDown())
	// 重复关闭直接返回
	assert.NoError(t, a.Shutdown(context.Background()))
}
