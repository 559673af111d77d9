// Package timex 提供毫秒精度的 UTC 时间类型，用于模型存储和 JSON 输出
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the JSON wire layout: ISO 8601 in UTC with millisecond precision
// Layout JSON 输出格式：UTC 毫秒精度的 ISO 8601
const Layout = "2006-01-02T15:04:05.000Z07:00"

// Time 毫秒精度的 UTC 时间
type Time time.Time

// Now 返回截断到毫秒的当前 UTC 时间
func Now() Time {
	return Time(time.Now().UTC().Truncate(time.Millisecond))
}

// Next returns a timestamp strictly later than prev, normally Now()
// Next 返回严格晚于 prev 的时间，通常就是 Now()
func Next(prev Time) Time {
	now := Now()
	if !now.After(prev) {
		return Time(time.Time(prev).Add(time.Millisecond))
	}
	return now
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) After(u Time) bool {
	return time.Time(t).After(time.Time(u))
}

func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

func (t Time) Equal(u Time) bool {
	return time.Time(t).Equal(time.Time(u))
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).UTC().Format(Layout)
}

// MarshalJSON 输出为带引号的 ISO 8601 字符串
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON 解析 ISO 8601 字符串，null 解析为零值
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timex: invalid time %s", s)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*t = Time(parsed.UTC().Truncate(time.Millisecond))
	return nil
}

// Value 实现 driver.Valuer，写入数据库时统一为 UTC
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t).UTC(), nil
}

// Scan 实现 sql.Scanner，兼容驱动返回 time.Time 或字符串的情况
func (t *Time) Scan(v any) error {
	switch value := v.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = Time(value.UTC().Truncate(time.Millisecond))
	case string:
		return t.scanString(value)
	case []byte:
		return t.scanString(string(value))
	default:
		return fmt.Errorf("timex: can not convert %v to timestamp", v)
	}
	return nil
}

var scanLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Time) scanString(s string) error {
	for _, layout := range scanLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Time(parsed.UTC().Truncate(time.Millisecond))
			return nil
		}
	}
	return fmt.Errorf("timex: can not parse %q as timestamp", s)
}
