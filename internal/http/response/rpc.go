package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RPCResponse doAll 响应结构，业务失败同样返回 HTTP 200
type RPCResponse struct {
	Success   bool        `json:"success"`              // 是否成功
	Data      interface{} `json:"data,omitempty"`       // get 返回的行
	InsertID  uint        `json:"insertId,omitempty"`   // insert 生成的主键
	Affected  *int64      `json:"affected,omitempty"`   // 写操作影响行数
	Message   string      `json:"message,omitempty"`    // 失败原因
	RequestID string      `json:"request_id,omitempty"` // 请求 ID
}

// RPCSuccess doAll 成功响应
func RPCSuccess(c *gin.Context, data interface{}, insertID uint, affected *int64) {
	c.JSON(http.StatusOK, RPCResponse{
		Success:  true,
		Data:     data,
		InsertID: insertID,
		Affected: affected,
	})
}

// RPCError doAll 失败响应
func RPCError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, RPCResponse{
		Success:   false,
		Message:   message,
		RequestID: RequestID(c),
	})
}

// RPCUnauthorized 未登录或 Token 失效，返回 HTTP 401 以便客户端清除 Token
func RPCUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, RPCResponse{
		Success:   false,
		Message:   message,
		RequestID: RequestID(c),
	})
}
