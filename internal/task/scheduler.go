package task

import (
	"context"
	"time"

	"github.com/haierkeys/noteful-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// CronTask 按 cron 表达式执行的任务，CronSpec 非空时忽略 LoopInterval
type CronTask interface {
	Task
	CronSpec() string
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Tasks 已添加的任务
func (s *Scheduler) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting ", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// schedule 返回任务的下一次执行时间计算方式，nil 表示不循环执行
func (s *Scheduler) schedule(task Task) (cron.Schedule, error) {
	if ct, ok := task.(CronTask); ok && ct.CronSpec() != "" {
		return cron.ParseStandard(ct.CronSpec())
	}
	if task.LoopInterval() <= 0 {
		return nil, nil
	}
	return cron.Every(task.LoopInterval()), nil
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {
	schedule, err := s.schedule(task)
	if err != nil {
		s.logger.Error("task schedule invalid", zap.String("name", task.Name()), zap.Error(err))
		return
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		// 如果任务需要立即执行
		if task.IsStartupRun() {
			go s.runOnce(task, "startupRun")
		}

		if schedule == nil {
			return
		}

		for {
			timer := time.NewTimer(time.Until(schedule.Next(time.Now())))
			select {
			case <-timer.C:
				s.runOnce(task, "loopRun")
			case <-closeSignal:
				timer.Stop()
				s.logger.Info("task stopped", zap.String("name", task.Name()), zap.Bool("loopRun", true))
				return
			}
		}
	})
}

func (s *Scheduler) runOnce(task Task, mode string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task "+mode+" panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool(mode, true))
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Bool(mode, true),
			zap.Error(err))
	}
}
