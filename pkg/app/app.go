package app

import (
	"net/http"
	"path"
	"time"

	"github.com/haierkeys/noteful-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// TraceIDKey gin.Context 中存储 Trace ID 的键
const TraceIDKey = "trace_id"

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// Res is the body of every non-document response: errors, 404 and rate limit rejections
// Res 非文档响应的统一结构：错误、404、限流等
type Res struct {
	Code      int       `json:"code"`
	Status    bool      `json:"status"`
	Error     string    `json:"error,omitempty"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	TraceID   string    `json:"traceId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	AccessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		AccessProto = "http" + "://"
	} else {
		AccessProto = proto + "://"
	}
	return AccessProto + c.Request.Host
}

// GetTraceID 从 gin.Context 获取 Trace ID
func GetTraceID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(TraceIDKey)
}

// GetLang 获取请求语言，由语言中间件写入
func GetLang(c *gin.Context) string {
	if lang := c.GetString("lang"); lang != "" {
		return lang
	}
	return code.GetGlobalDefaultLang()
}

// ToResponse writes a code as a JSON body using the code's HTTP status
// ToResponse 输出 Code，HTTP 状态码取自 Code
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:      codeObj.Code(),
		Status:    codeObj.Status(),
		Error:     codeObj.Name(),
		Message:   codeObj.MsgLang(GetLang(r.Ctx)),
		TraceID:   GetTraceID(r.Ctx),
		Timestamp: time.Now().UTC(),
	}

	if codeObj.HaveDetails() {
		content.Details = codeObj.Details()
	}

	r.send(codeObj.StatusCode(), content)
}

// ToDocument writes a stored document (or a list of them) as the response body
// ToDocument 直接输出文档
func (r *Response) ToDocument(doc any) {
	r.Ctx.Set("status_code", http.StatusOK)
	r.send(http.StatusOK, doc)
}

// ToCreated writes 201 with a Location header of the request path plus the new id
// ToCreated 输出 201，Location 为请求路径加新 ID
func (r *Response) ToCreated(doc any, id string) {
	r.Ctx.Header("Location", path.Join(r.Ctx.Request.URL.Path, id))
	r.Ctx.Set("status_code", http.StatusCreated)
	r.send(http.StatusCreated, doc)
}

// ToNoContent writes 204 without a body
// ToNoContent 输出 204，无响应体
func (r *Response) ToNoContent() {
	r.Ctx.Set("status_code", http.StatusNoContent)
	r.Ctx.Status(http.StatusNoContent)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
