package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/noteful-service/internal/dao"
	"github.com/haierkeys/noteful-service/internal/domain"
	"github.com/haierkeys/noteful-service/internal/service"
	pkgapp "github.com/haierkeys/noteful-service/pkg/app"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
// 数据库句柄只在这里持有，通过依赖注入传给仓储与服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	FolderRepo domain.FolderRepository
	TagRepo    domain.TagRepository
	NoteRepo   domain.NoteRepository

	// Service 层
	Cascade       *service.CascadeCoordinator
	FolderService service.FolderService
	TagService    service.TagService
	NoteService   service.NoteService

	// 关闭控制
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	wg           sync.WaitGroup
}

// Option App 配置选项
type Option func(*appOptions)

type appOptions struct {
	registerer prometheus.Registerer
}

// WithRegisterer 指定指标注册器，默认 prometheus.DefaultRegisterer
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *appOptions) {
		o.registerer = reg
	}
}

// NewApp 创建应用容器实例
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	o := &appOptions{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	dbConfig := cfg.Database.DaoConfig(cfg.Server.RunMode)
	a.Dao = dao.New(db,
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
	)

	// 初始化 Repository 层
	a.FolderRepo = dao.NewFolderRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.Cascade = service.NewCascadeCoordinator(logger, o.registerer)
	a.FolderService = service.NewFolderService(a.FolderRepo, a.NoteRepo, a.Cascade)
	a.TagService = service.NewTagService(a.TagRepo, a.NoteRepo, a.Cascade)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.FolderRepo, a.TagRepo)

	logger.Info("App container initialized successfully",
		zap.String("database", cfg.Database.Type))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 等待后台操作完成后关闭数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	first := false
	a.shutdownOnce.Do(func() {
		first = true
		close(a.shutdownCh)
	})
	if !first {
		return nil
	}

	a.logger.Info("App container shutting down...")

	var errs []error

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
