// Package validator 提供 gin 绑定使用的参数校验引擎
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// TagObjectID 校验字符串是否为合法的 ObjectID
const TagObjectID = "objectid"

// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	Validate *validator.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体，指针、切片与数组会被展开
func (v *CustomValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}

	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		v.lazyinit()
		return v.Validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.Validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.Validate = validator.New(validator.WithRequiredStructEnabled())
		v.Validate.SetTagName("binding")

		// 错误中的字段名使用 json 名称
		v.Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.Validate.RegisterValidation(TagObjectID, func(fl validator.FieldLevel) bool {
			return util.IsValidID(fl.Field().String())
		})
	})
}

// Setup installs a CustomValidator as gin's binding validator, applies the extra
// registrations and returns a translator with en and zh messages
// Setup 安装自定义校验器并返回带中英文翻译的 UniversalTranslator
func Setup(registrations ...func(v *validator.Validate)) (*ut.UniversalTranslator, error) {
	customValidator := NewCustomValidator()
	validate := customValidator.Engine().(*validator.Validate)

	for _, register := range registrations {
		register(validate)
	}

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}
	if err := registerObjectIDTranslation(validate, enTran, "{0} must be a 24 character hex identifier"); err != nil {
		return nil, err
	}
	if err := registerObjectIDTranslation(validate, zhTran, "{0} 必须是 24 位十六进制标识"); err != nil {
		return nil, err
	}

	binding.Validator = customValidator
	return uni, nil
}

func registerObjectIDTranslation(validate *validator.Validate, trans ut.Translator, text string) error {
	return validate.RegisterTranslation(TagObjectID, trans,
		func(ut ut.Translator) error {
			return ut.Add(TagObjectID, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(TagObjectID, fe.Field())
			return t
		},
	)
}
