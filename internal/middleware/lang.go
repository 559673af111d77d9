package middleware

import (
	"strings"

	"github.com/haierkeys/noteful-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 语言来自 lang 查询参数、lang 请求头或 Accept-Language，只对当前请求生效
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = strings.SplitN(strings.SplitN(s, ",", 2)[0], ";", 2)[0]
		}

		if lang == "" {
			lang = code.GetGlobalDefaultLang()
		} else {
			lang = code.NormalizeLang(lang)
		}

		// 翻译器使用 zh / en
		transKey := "en"
		if lang == "zh_cn" {
			transKey = "zh"
		}
		if trans, found := uni.GetTranslator(transKey); found {
			c.Set("trans", trans)
		} else {
			trans, _ := uni.GetTranslator("en")
			c.Set("trans", trans)
		}

		c.Set("lang", lang)

		c.Next()
	}
}
