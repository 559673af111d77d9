// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/haierkeys/noteful-service/internal/app"
	pkgapp "github.com/haierkeys/noteful-service/pkg/app"
	"github.com/haierkeys/noteful-service/pkg/code"
	"github.com/haierkeys/noteful-service/pkg/util"
	"github.com/haierkeys/noteful-service/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// pathID 读取并校验路径中的 id，失败时已写入响应
// 必须在读取请求体之前调用，保证非法 id 不会进入存储层
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !util.IsValidID(id) {
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidID.WithArgs("id"))
		return "", false
	}
	return id, true
}

// bindParams 绑定并校验请求体，失败时已写入响应
func bindParams(c *gin.Context, params any) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if valid {
		return true
	}
	pkgapp.NewResponse(c).ToResponse(validErrorCode(errs))
	return false
}

// validErrorCode 将第一个校验错误转换为错误码
// required / min -> MissingField，objectid -> InvalidIdentifier，其余 -> InvalidParams
func validErrorCode(errs pkgapp.ValidErrors) *code.Code {
	first := errs.First()
	if first == nil {
		return code.ErrorInvalidParams
	}
	switch first.Tag {
	case "required", "min":
		return code.ErrorMissingField.WithArgs(first.Key).WithDetails(first.Message)
	case validator.TagObjectID:
		return code.ErrorInvalidID.WithArgs(first.Key).WithDetails(first.Message)
	}
	return code.ErrorInvalidParams.WithDetails(errs.Errors()...)
}
