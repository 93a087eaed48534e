package admin

import (
	"bytes"
	"strings"
	"time"

	"github.com/gemdesk/internal/export"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

// orderFilterFromQuery 解析订单列表与导出共用的过滤条件
func orderFilterFromQuery(c *gin.Context) (repository.OrderListFilter, error) {
	page, pageSize := parsePagination(c)
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		return repository.OrderListFilter{}, err
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		return repository.OrderListFilter{}, err
	}
	return repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		Search:      strings.TrimSpace(c.Query("search")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		OrderBy:     strings.TrimSpace(c.Query("order_by")),
	}, nil
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondServiceError(c, err, "error.order_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(filter.Page, filter.PageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.order_fetch_failed", contentErrorRules)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 推进订单状态，状态变化后异步通知客户
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err, "error.order_update_failed", contentErrorRules)
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"status", order.Status,
		"actor_id", currentUserID(c),
	)
	response.Success(c, order)
}

// AdminOrderStatusCounts 各状态订单数量
func (h *Handler) AdminOrderStatusCounts(c *gin.Context) {
	counts, err := h.OrderService.CountByStatus()
	if err != nil {
		respondServiceError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, counts)
}

// AdminExportOrders 导出订单 XLSX
func (h *Handler) AdminExportOrders(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var buf bytes.Buffer
	if err := h.OrderService.Export(&buf, filter); err != nil {
		respondServiceError(c, err, "error.export_failed", contentErrorRules)
		return
	}
	writeWorkbook(c, export.FileName("orders", time.Now()), buf.Bytes())
}
