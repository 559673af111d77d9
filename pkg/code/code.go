package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// 是否成功
	status bool
	// HTTP 状态码
	httpStatus int
	// 错误分类名称，例如 InvalidIdentifier
	name string
	// 错误消息
	Lang lang
	// 消息格式化参数
	args []any
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code with its HTTP status and taxonomy name
// NewError 注册一个错误码，包含 HTTP 状态和错误分类名称
func NewError(code int, httpStatus int, name string, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()

	return &Code{code: code, status: false, httpStatus: httpStatus, name: name, Lang: l}
}

var sussCodes = map[int]string{}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Clone 创建一个新的 Code 副本
// 注册的错误码是包级共享变量，所有 With* 方法都在副本上修改
func (e *Code) Clone() *Code {
	c := *e
	c.args = append([]any(nil), e.args...)
	c.details = append([]string(nil), e.details...)
	return &c
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// Name returns the taxonomy name of the code
// Name 返回错误分类名称
func (e *Code) Name() string {
	return e.name
}

// Msg returns the message in the process default language
// Msg 返回默认语言的消息
func (e *Code) Msg() string {
	return e.MsgLang(GetGlobalDefaultLang())
}

// MsgLang returns the message in the given language, formatted with the code's arguments
// MsgLang 返回指定语言的消息，并使用参数格式化
func (e *Code) MsgLang(language string) string {
	msg := e.Lang.GetMessageLang(language)
	if len(e.args) > 0 {
		return fmt.Sprintf(msg, e.args...)
	}
	return msg
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithArgs 返回带消息格式化参数的副本
func (e *Code) WithArgs(args ...any) *Code {
	c := e.Clone()
	c.args = args
	return c
}

// WithDetails 返回带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

// Is reports whether target carries the same code number, so errors.Is works on copies
// Is 判断两个 Code 是否为同一错误码，使 errors.Is 可以匹配副本
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}

func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
