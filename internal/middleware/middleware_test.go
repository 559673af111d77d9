package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haierkeys/noteful-service/pkg/app"
	"github.com/haierkeys/noteful-service/pkg/code"
	"github.com/haierkeys/noteful-service/pkg/limiter"
	"github.com/haierkeys/noteful-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRes(t *testing.T, w *httptest.ResponseRecorder) app.Res {
	t.Helper()
	var res app.Res
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestNoFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NoFound())

	w := serve(r, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, code.NameNotFound, decodeRes(t, w).Error)
}

func TestRecoveryWithLogger_HidesPanic(t *testing.T) {
	r := gin.New()
	r.Use(RecoveryWithLogger(zap.NewNop()))
	r.GET("/panic", func(c *gin.Context) { panic("secret detail") })

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(limiter.NewIPLimiter(1, 1)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// 未配置限流
	r = gin.New()
	r.Use(RateLimiter(limiter.NewIPLimiter(0, 0)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	}
}

func TestTraceMiddlewareWithConfig(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, ""))
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, app.GetTraceID(c), GetTraceID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(DefaultTraceIDHeader), 36)

	w = serve(r, http.MethodGet, "/", map[string]string{DefaultTraceIDHeader: "abc"})
	assert.Equal(t, "abc", w.Header().Get(DefaultTraceIDHeader))

	r = gin.New()
	r.Use(TraceMiddlewareWithConfig(false, "X-Request-ID"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Empty(t, serve(r, http.MethodGet, "/", nil).Header().Get("X-Request-ID"))
}

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(Cors("https://app.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLangWithTranslator(t *testing.T) {
	uni, err := validator.Setup()
	require.NoError(t, err)

	r := gin.New()
	r.Use(LangWithTranslator(uni))
	r.GET("/", func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorFolderNameExists)
	})

	assert.Equal(t, "文件夹名称已存在", decodeRes(t, serve(r, http.MethodGet, "/?lang=zh-CN", nil)).Message)
	assert.Equal(t, "文件夹名称已存在", decodeRes(t, serve(r, http.MethodGet, "/", map[string]string{"Accept-Language": "zh-CN,zh;q=0.9"})).Message)
	assert.Equal(t, "The folder name already exists", decodeRes(t, serve(r, http.MethodGet, "/", nil)).Message)
	// 请求语言不影响全局默认语言
	assert.Equal(t, code.FALLBACK_LNG, code.GetGlobalDefaultLang())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(reg))
	r.GET("/folders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/folders/a", nil)
	serve(r, http.MethodGet, "/folders/b", nil)

	n, err := testutil.GatherAndCount(reg, "noteful_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// 重复注册复用已有指标
	assert.NotPanics(t, func() { Metrics(reg) })
}

func TestContextTimeout(t *testing.T) {
	var deadline time.Time
	var has bool
	handler := func(c *gin.Context) {
		deadline, has = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	}

	r := gin.New()
	r.GET("/t", ContextTimeout(time.Minute), handler)
	r.GET("/none", ContextTimeout(0), handler)

	serve(r, http.MethodGet, "/t", nil)
	assert.True(t, has)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	serve(r, http.MethodGet, "/none", nil)
	assert.False(t, has)
}
