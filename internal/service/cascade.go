package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/noteful-service/pkg/code"
	apperrors "github.com/haierkeys/noteful-service/pkg/errors"
	"github.com/haierkeys/noteful-service/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CascadeKind 级联删除的实体类型
type CascadeKind string

const (
	CascadeFolder CascadeKind = "folder"
	CascadeTag    CascadeKind = "tag"
)

const (
	cascadeOutcomeOK     = "ok"
	cascadeOutcomeFailed = "failed"
)

// CascadeCoordinator 删除文件夹或标签时清理笔记中的引用
// 删除与清理是两个独立操作，没有共享事务，两者都完成后才返回
type CascadeCoordinator struct {
	logger  *zap.Logger
	counter *prometheus.CounterVec
}

// NewCascadeCoordinator reg 为 nil 时计数器不注册
func NewCascadeCoordinator(lg *zap.Logger, reg prometheus.Registerer) *CascadeCoordinator {
	if lg == nil {
		lg = zap.NewNop()
	}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noteful",
		Name:      "cascade_total",
		Help:      "Cascading folder and tag deletions by outcome.",
	}, []string{"kind", "outcome"})

	if reg != nil {
		if err := reg.Register(counter); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					counter = existing
				}
			} else {
				lg.Warn("cascade metrics register failed", zap.Error(err))
			}
		}
	}

	return &CascadeCoordinator{logger: lg, counter: counter}
}

// Run 并发执行 remove 与 clear，不会因一方失败取消另一方
// 任意一方失败时返回 StoreFailure，另一方可能已经生效
func (c *CascadeCoordinator) Run(
	ctx context.Context,
	kind CascadeKind,
	id string,
	remove func(ctx context.Context, id string) error,
	clear func(ctx context.Context, id string) (int64, error),
) error {
	start := time.Now()

	var (
		removeErr, clearErr error
		cleared             int64
		g                   errgroup.Group
	)
	g.Go(func() error {
		removeErr = remove(ctx, id)
		return removeErr
	})
	g.Go(func() error {
		cleared, clearErr = clear(ctx, id)
		return clearErr
	})
	err := g.Wait()

	fields := []zap.Field{
		zap.String(logger.FieldKind, string(kind)),
		zap.String(logger.FieldID, id),
		zap.Duration(logger.FieldDuration, time.Since(start)),
	}
	if removeErr != nil {
		c.logger.Error("cascade remove failed", append(fields, zap.String(logger.FieldAction, "remove"), zap.Error(removeErr))...)
	}
	if clearErr != nil {
		c.logger.Error("cascade clear references failed", append(fields, zap.String(logger.FieldAction, "clear"), zap.Error(clearErr))...)
	}

	if err != nil {
		c.counter.WithLabelValues(string(kind), cascadeOutcomeFailed).Inc()
		return apperrors.Wrap(code.ErrorStoreFailure, errors.Join(removeErr, clearErr))
	}

	c.counter.WithLabelValues(string(kind), cascadeOutcomeOK).Inc()
	c.logger.Debug("cascade done", append(fields, zap.Int64(logger.FieldCount, cleared))...)
	return nil
}
