package admin

import (
	"strings"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListRPCAuditLogs 获取 doAll 审计日志列表
func (h *Handler) ListRPCAuditLogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	allowed, err := parseBoolQuery(c, "allowed")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	logs, total, err := h.RPCAuditService.List(repository.RPCAuditListFilter{
		Page:     page,
		PageSize: pageSize,
		ActorID:  parseUintQuery(c, "actor_id"),
		Target:   strings.TrimSpace(c.Query("table")),
		Action:   strings.TrimSpace(c.Query("action")),
		Allowed:  allowed,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, buildPagination(page, pageSize, total))
}
