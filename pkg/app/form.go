package app

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	// Key 字段 json 名称，切片元素会去掉下标
	Key string
	// Tag 失败的校验规则
	Tag string
	// Message 翻译后的错误信息
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// First 返回第一个校验错误
func (v ValidErrors) First() *ValidError {
	if len(v) == 0 {
		return nil
	}
	return v[0]
}

// TagBody marks a body that could not be decoded at all
// TagBody 请求体无法解析
const TagBody = "body"

// BindAndValid binds the JSON body into obj and runs the binding validator.
// Decoding failures yield a single error with Tag "body".
// BindAndValid 绑定 JSON 请求体并校验
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		// 空请求体按空对象处理
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs = append(errs, &ValidError{
			Key:     TagBody,
			Tag:     TagBody,
			Message: err.Error(),
		})
		return false, errs
	}

	trans, _ := c.Value("trans").(ut.Translator)
	for _, fe := range validationErrors {
		message := fe.Error()
		if trans != nil {
			message = fe.Translate(trans)
		}
		errs = append(errs, &ValidError{
			Key:     fieldKey(fe.Field()),
			Tag:     fe.Tag(),
			Message: message,
		})
	}
	return false, errs
}

// fieldKey strips a slice index: tags[1] -> tags
func fieldKey(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}
