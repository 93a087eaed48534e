package admin

import (
	"strings"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type dashboardQuery struct {
	Range        string `form:"range"`
	From         string `form:"from"`
	To           string `form:"to"`
	Timezone     string `form:"tz"`
	ForceRefresh bool   `form:"force_refresh"`
}

func (q dashboardQuery) toInput() (service.DashboardQueryInput, error) {
	input := service.DashboardQueryInput{
		Range:        strings.TrimSpace(q.Range),
		Timezone:     strings.TrimSpace(q.Timezone),
		ForceRefresh: q.ForceRefresh,
	}
	if input.Range == "" {
		input.Range = "7d"
	}
	var err error
	if input.From, err = parseTimeNullable(strings.TrimSpace(q.From)); err != nil {
		return input, err
	}
	if input.To, err = parseTimeNullable(strings.TrimSpace(q.To)); err != nil {
		return input, err
	}
	return input, nil
}

func bindDashboardQuery(c *gin.Context) (service.DashboardQueryInput, bool) {
	var q dashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return service.DashboardQueryInput{}, false
	}
	input, err := q.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return input, false
	}
	return input, true
}

// GetDashboardOverview 仪表盘总览，force_refresh=true 时跳过缓存
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	input, ok := bindDashboardQuery(c)
	if !ok {
		return
	}
	data, err := h.DashboardService.GetOverview(c.Request.Context(), input.ForceRefresh)
	if err != nil {
		respondServiceError(c, err, "error.dashboard_fetch_failed", settingErrorRules)
		return
	}
	response.Success(c, data)
}

// GetDashboardTrends 按 range 或 from/to 统计的日趋势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	input, ok := bindDashboardQuery(c)
	if !ok {
		return
	}
	data, err := h.DashboardService.GetTrends(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "error.dashboard_fetch_failed", settingErrorRules)
		return
	}
	response.Success(c, data)
}
