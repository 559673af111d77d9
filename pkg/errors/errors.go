package errors

import (
	"errors"

	"github.com/haierkeys/noteful-service/pkg/app"
	"github.com/haierkeys/noteful-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含对客户端可见的错误码以及不会输出给客户端的原始错误
type AppError struct {
	// Code 对客户端可见的错误码
	Code *code.Code
	// Cause 原始错误（不输出给客户端）
	Cause error
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Code.Msg() + ": " + e.Cause.Error()
	}
	return e.Code.Msg()
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 使 errors.Is(err, code.ErrorStoreFailure) 可以匹配
func (e *AppError) Is(target error) bool {
	return e.Code.Is(target)
}

// Wrap 使用 Code 包装原始错误
func Wrap(c *code.Code, cause error) *AppError {
	return &AppError{Code: c, Cause: cause}
}

// CodeOf resolves the client-facing code of err.
// Errors that carry no code become ErrorServerInternal.
// CodeOf 解析错误对应的 Code，未知错误视为服务器内部错误
func CodeOf(err error) *code.Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// ErrorResponse 统一错误响应处理
// 只输出 Code 的消息，原始错误不会出现在响应中
func ErrorResponse(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	app.NewResponse(c).ToResponse(CodeOf(err))
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
