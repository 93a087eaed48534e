package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response REST 接口统一信封，HTTP 状态固定为 200
type Response struct {
	StatusCode int         `json:"status_code"` // 0 成功，否则为 Code* 常量
	Msg        string      `json:"msg"`         // 已本地化的提示
	Data       interface{} `json:"data"`        // 业务数据
}

// PageResponse 列表接口信封
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 根据总数计算页数
func NewPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return p
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: pagination,
	})
}

// Error 失败响应，data 中带回 request_id 便于排查
func Error(c *gin.Context, statusCode int, msg string) {
	var data interface{}
	if id := RequestID(c); id != "" {
		data = gin.H{"request_id": id}
	}
	c.JSON(http.StatusOK, Response{StatusCode: statusCode, Msg: msg, Data: data})
}

// Unauthorized 中止请求并返回 401 信封
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
	c.Abort()
}

// Forbidden 中止请求并返回 403 信封
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
	c.Abort()
}

// RequestID 读取请求 ID 中间件写入的值
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString("request_id")
}
