package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/gemdesk/internal/http/handlers/shared"
	"github.com/gemdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.RequireUserID(c)
}

func currentUserID(c *gin.Context) uint {
	return handlershared.ActorFrom(c).UserID
}

func currentUserType(c *gin.Context) string {
	return handlershared.ActorFrom(c).UserType
}

func currentRequestID(c *gin.Context) string {
	return response.RequestID(c)
}

// parseIDParam 解析路径中的正整数 ID，失败时直接写出错误响应
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePage(c)
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return response.NewPagination(page, pageSize, total)
}

func parseBoolQuery(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseUintQuery(c *gin.Context, key string) uint {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if day, dayErr := time.ParseInLocation("2006-01-02", raw, time.Local); dayErr == nil {
			return &day, nil
		}
		return nil, err
	}
	return &parsed, nil
}
