package routers

import (
	"embed"
	"net/http"

	"github.com/haierkeys/noteful-service/internal/app"
	"github.com/haierkeys/noteful-service/internal/middleware"
	"github.com/haierkeys/noteful-service/internal/routers/api_router"
	"github.com/haierkeys/noteful-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterOption 路由配置选项
type RouterOption func(*routerOptions)

type routerOptions struct {
	registerer prometheus.Registerer
}

// WithMetricsRegisterer 指定 HTTP 指标注册器，默认 prometheus.DefaultRegisterer
func WithMetricsRegisterer(reg prometheus.Registerer) RouterOption {
	return func(o *routerOptions) {
		o.registerer = reg
	}
}

// NewRouter 创建公开路由
// 资源路由同时挂载在 /api 下与根路径下
func NewRouter(frontendFiles embed.FS, appContainer *app.App, uni *ut.UniversalTranslator, opts ...RouterOption) *gin.Engine {
	o := &routerOptions{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(o)
	}

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	frontendIndexContent, _ := frontendFiles.ReadFile("frontend/index.html")

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.Cors(cfg.App.CorsAllowOrigins...))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", frontendIndexContent)
	})

	chain := []gin.HandlerFunc{
		middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version),
		middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header), // Trace ID 中间件
		middleware.Metrics(o.registerer),
		middleware.AccessLogWithLogger(lg),
		middleware.RateLimiter(limiter.NewIPLimiter(cfg.App.RateLimit, cfg.App.RateLimitBurst)),
		middleware.RateLimiter(routeLimiter(cfg.App.RouteLimits)),
		middleware.ContextTimeout(cfg.GetContextTimeout()),
		middleware.LangWithTranslator(uni),
	}

	// 创建 Handlers（注入 App Container）
	folderHandler := api_router.NewFolderHandler(appContainer)
	tagHandler := api_router.NewTagHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)
	versionHandler := api_router.NewVersionHandler(appContainer)

	api := r.Group("/api", chain...)
	{
		api.GET("/version", versionHandler.ServerVersion)
	}

	for _, g := range []*gin.RouterGroup{api, r.Group("", chain...)} {
		g.GET("/folders", folderHandler.List)
		g.GET("/folders/:id", folderHandler.Get)
		g.POST("/folders", folderHandler.Create)
		g.PUT("/folders/:id", folderHandler.Update)
		g.DELETE("/folders/:id", folderHandler.Delete)

		g.GET("/tags", tagHandler.List)
		g.GET("/tags/:id", tagHandler.Get)
		g.POST("/tags", tagHandler.Create)
		g.PUT("/tags/:id", tagHandler.Update)
		g.DELETE("/tags/:id", tagHandler.Delete)

		g.GET("/notes", noteHandler.List)
		g.GET("/notes/:id", noteHandler.Get)
		g.POST("/notes", noteHandler.Create)
		g.PUT("/notes/:id", noteHandler.Update)
		g.DELETE("/notes/:id", noteHandler.Delete)
	}

	r.NoRoute(
		middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header),
		middleware.LangWithTranslator(uni),
		middleware.NoFound(),
	)

	return r
}

// routeLimiter 按路径前缀创建限流器，没有规则时返回 nil
func routeLimiter(rules []app.RouteLimit) limiter.Face {
	if len(rules) == 0 {
		return nil
	}
	buckets := make([]limiter.BucketRule, 0, len(rules))
	for _, rl := range rules {
		buckets = append(buckets, limiter.RateRule(rl.Path, rl.Rate, rl.Burst))
	}
	return limiter.NewMethodLimiter().AddBuckets(buckets...)
}
