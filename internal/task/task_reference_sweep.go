package task

import (
	"context"
	"time"

	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/service"
	"github.com/haierkeys/noteful-service/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	Register(NewReferenceSweepTask)
}

// ReferenceSweepTask 清除笔记中指向已删除文件夹或标签的引用
// 级联删除失败或与笔记更新并发时可能遗留这类引用
type ReferenceSweepTask struct {
	app      *app.App
	notes    service.NoteService
	logger   *zap.Logger
	schedule app.SweepSchedule
}

// Name 返回任务名称
func (t *ReferenceSweepTask) Name() string {
	return "ReferenceSweep"
}

// LoopInterval 返回执行间隔
func (t *ReferenceSweepTask) LoopInterval() time.Duration {
	return t.schedule.Every
}

// CronSpec 返回 cron 表达式
func (t *ReferenceSweepTask) CronSpec() string {
	return t.schedule.Cron
}

// IsStartupRun 是否立即执行一次
func (t *ReferenceSweepTask) IsStartupRun() bool {
	return true
}

// Run 执行清理
// 应用关闭期间不再启动新的清理，已开始的清理会被关闭流程等待
func (t *ReferenceSweepTask) Run(ctx context.Context) error {
	if t.app.IsShuttingDown() {
		return nil
	}
	done := t.app.TrackOperation()
	defer done()

	start := time.Now()
	res, err := t.notes.SweepReferences(ctx)
	if err != nil {
		return err
	}

	t.logger.Info("task log",
		zap.String("task", t.Name()),
		zap.Int64("folderRefs", res.FolderRefs),
		zap.Int64("tagRefs", res.TagRefs),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}

// NewReferenceSweepTask 创建清理任务，配置关闭时返回 nil
func NewReferenceSweepTask(appContainer *app.App) (Task, error) {
	schedule, err := appContainer.Config().GetReferenceSweep()
	if err != nil {
		return nil, err
	}
	if schedule.Disabled() {
		appContainer.Logger().Info("reference sweep task is disabled")
		return nil, nil
	}
	return &ReferenceSweepTask{
		app:      appContainer,
		notes:    appContainer.NoteService,
		logger:   appContainer.Logger(),
		schedule: schedule,
	}, nil
}
