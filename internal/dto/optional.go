package dto

import (
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Optional 区分请求体中未提供、显式 null 与具体值三种情况
type Optional[T any] struct {
	// Set 请求体中出现了该字段
	Set bool
	// Null 字段值为 null
	Null bool
	// Value 字段值，Null 时为零值
	Value T
}

// UnmarshalJSON 只在字段出现时被调用
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON 未设置或 null 时输出 null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present 字段出现且不为 null
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Some 构造一个已设置的值
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// RegisterValidation 让校验器按 Optional 中的值进行校验
// 未设置或 null 时返回 nil，配合 omitempty 跳过校验
func RegisterValidation(v *validator.Validate) {
	v.RegisterCustomTypeFunc(optionalValue,
		Optional[string]{},
		Optional[[]string]{},
	)
}

func optionalValue(field reflect.Value) any {
	switch o := field.Interface().(type) {
	case Optional[string]:
		if o.Present() {
			return o.Value
		}
	case Optional[[]string]:
		if o.Present() {
			return o.Value
		}
	}
	return nil
}
