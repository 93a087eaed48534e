package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	DefaultLocale = LocaleEN
)

// ResolveLocale 按 query lang > X-Locale > Accept-Language 解析请求语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	candidates := []string{
		c.Query("lang"),
		c.GetHeader("X-Locale"),
	}
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		for _, part := range strings.Split(accept, ",") {
			candidates = append(candidates, strings.SplitN(part, ";", 2)[0])
		}
	}
	for _, candidate := range candidates {
		if locale := NormalizeLocale(candidate); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// NormalizeLocale 归一化语言标识，未知语言返回空串
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "":
		return ""
	case strings.HasPrefix(value, "zh"):
		return LocaleZH
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	default:
		return ""
	}
}

// T 翻译消息键，找不到时回退默认语言，再回退为键本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	if msg, ok := lookup(DefaultLocale, key); ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func lookup(locale, key string) (string, bool) {
	table, ok := messages[NormalizeLocale(locale)]
	if !ok {
		return "", false
	}
	msg, ok := table[key]
	return msg, ok
}
