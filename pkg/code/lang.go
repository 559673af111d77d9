package code

import (
	"errors"
	"strings"
	"sync/atomic"
)

// lang type, used to store English and Chinese text
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const FALLBACK_LNG = "en"

var supportedLanguages = []string{"en", "zh_cn"}

// Default language is English // 默认语言为英文
// Codes are built during package variable initialization, before any Store, so an empty value reads as FALLBACK_LNG
// 错误码在包变量初始化阶段构造，此时尚未写入，空值按 FALLBACK_LNG 处理
var lng atomic.Value

// GetMessage returns the message in the process default language
// GetMessage 返回默认语言的消息
func (l lang) GetMessage() string {
	return l.GetMessageLang(GetGlobalDefaultLang())
}

// GetMessageLang returns the message for the given language, falling back to English
// GetMessageLang 根据传入的语言返回相应的消息，无效时回退到英文
func (l lang) GetMessageLang(language string) string {
	switch NormalizeLang(language) {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	return l.en
}

// NormalizeLang maps request language tags (zh, zh-CN, en-US) onto supported languages
// NormalizeLang 将请求中的语言标识映射为支持的语言
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(language, "-", "_"))
	switch {
	case strings.HasPrefix(language, "zh"):
		return "zh_cn"
	case strings.HasPrefix(language, "en"):
		return "en"
	}
	return FALLBACK_LNG
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 返回支持的所有语言
func GetSupportedLanguages() []string {
	return append([]string(nil), supportedLanguages...)
}

// SetGlobalDefaultLang sets the global default language
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range supportedLanguages {
		if language == l {
			lng.Store(language)
			return nil
		}
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang gets the global default language
// 获取全局默认语言
func GetGlobalDefaultLang() string {
	return loadLang(&lng)
}

func loadLang(v *atomic.Value) string {
	if language, ok := v.Load().(string); ok {
		return language
	}
	return FALLBACK_LNG
}
