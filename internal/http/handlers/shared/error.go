package shared

import (
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := response.RequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 按 Accept-Language 翻译 key 后写出错误信封
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 写出错误信封，err 非空时记录原始错误
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error", "code", code, "message", msg, "path", c.FullPath(), "error", err)
	}
	response.Error(c, code, msg)
}
