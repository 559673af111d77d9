package task

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/pkg/safe_close"
	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTask struct {
	runs     atomic.Int32
	interval time.Duration
	cron     string
	startup  bool
	panics   bool
}

func (t *countingTask) Name() string                { return "counting" }
func (t *countingTask) LoopInterval() time.Duration { return t.interval }
func (t *countingTask) IsStartupRun() bool          { return t.startup }
func (t *countingTask) CronSpec() string            { return t.cron }

func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	return errors.New("always fails")
}

func TestScheduler_RunsAndStops(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{interval: time.Second, startup: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_PanicRecovered(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{startup: true, panics: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
}

func TestScheduler_InvalidCronSkipped(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{cron: "not a cron", startup: true}
	s.AddTask(task)
	s.Start()

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())
	assert.Zero(t, task.runs.Load())
}

func newTestApp(t *testing.T, sweep string) *app.App {
	t.Helper()
	cfg := &app.AppConfig{
		Database: app.DatabaseConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "task.sqlite3"), AutoMigrate: true},
		App:      app.AppSettings{ReferenceSweep: sweep},
	}
	db, err := dao.NewDBEngineWithConfig(cfg.Database.DaoConfig("release"), nil)
	require.NoError(t, err)
	a, err := app.NewApp(cfg, zap.NewNop(), db, app.WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestReferenceSweepTask(t *testing.T) {
	a := newTestApp(t, "@every 1h")

	task, err := NewReferenceSweepTask(a)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "@every 1h", task.(CronTask).CronSpec())

	ctx := context.Background()
	note, err := a.NoteRepo.Create(ctx, &domain.Note{Title: "x", FolderID: util.NewID(), Tags: []string{util.NewID()}})
	require.NoError(t, err)

	require.NoError(t, task.Run(ctx))

	got, err := a.NoteRepo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, got.HasFolder())
	assert.Empty(t, got.Tags)

	// 关闭后数据库已关闭，任务直接跳过
	require.NoError(t, a.Shutdown(ctx))
	assert.True(t, a.IsShuttingDown())
	require.NoError(t, task.Run(ctx))
}

func TestManager_RegisterTasks(t *testing.T) {
	disabled := newTestApp(t, "0")
	m := NewManager(disabled, safe_close.NewSafeClose())
	require.NoError(t, m.RegisterTasks())
	assert.Empty(t, m.Scheduler().Tasks())

	enabled := newTestApp(t, "10m")
	m = NewManager(enabled, safe_close.NewSafeClose())
	require.NoError(t, m.RegisterTasks())
	require.Len(t, m.Scheduler().Tasks(), 1)
	assert.Equal(t, 10*time.Minute, m.Scheduler().Tasks()[0].LoopInterval())
}
