package admin

import (
	"strings"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

type loginLogQuery struct {
	UserID      uint   `form:"user_id"`
	Email       string `form:"email"`
	Status      string `form:"status" binding:"omitempty,oneof=success failed"`
	ClientIP    string `form:"client_ip" binding:"omitempty,ip"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
}

func (q loginLogQuery) filter(page, pageSize int) (repository.LoginLogListFilter, error) {
	from, err := parseTimeNullable(strings.TrimSpace(q.CreatedFrom))
	if err != nil {
		return repository.LoginLogListFilter{}, err
	}
	to, err := parseTimeNullable(strings.TrimSpace(q.CreatedTo))
	if err != nil {
		return repository.LoginLogListFilter{}, err
	}
	return repository.LoginLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      q.UserID,
		Email:       q.Email,
		Status:      q.Status,
		ClientIP:    q.ClientIP,
		CreatedFrom: from,
		CreatedTo:   to,
	}, nil
}

// GetUserLoginLogs 管理员与供应商的登录记录，时间支持 RFC3339 或 YYYY-MM-DD
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	var query loginLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	filter, err := query.filter(page, pageSize)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logs, total, err := h.LoginLogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.login_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, buildPagination(page, pageSize, total))
}
