package shared

import (
	"strconv"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 分页上限
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Actor 鉴权中间件写入上下文的当前操作人
type Actor struct {
	UserID    uint
	Email     string
	UserType  string
	RequestID string
}

// IsAdmin 是否为管理员
func (a Actor) IsAdmin() bool {
	return a.UserType == constants.UserTypeAdmin
}

// ActorFrom 读取当前操作人，未登录时 UserID 为 0
func ActorFrom(c *gin.Context) Actor {
	return Actor{
		UserID:    c.GetUint("user_id"),
		Email:     c.GetString("user_email"),
		UserType:  c.GetString("user_type"),
		RequestID: response.RequestID(c),
	}
}

// RequireUserID 读取登录用户 ID，缺失时写出 401
func RequireUserID(c *gin.Context) (uint, bool) {
	id := c.GetUint("user_id")
	if id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}

// ParsePage 解析 page 与 page_size，非法值回落到默认
func ParsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
