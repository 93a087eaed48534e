package admin

import (
	"strings"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminVendors 供应商列表
func (h *Handler) GetAdminVendors(c *gin.Context) {
	page, pageSize := parsePagination(c)
	verified, err := parseBoolQuery(c, "is_verified")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	vendors, total, err := h.VendorService.List(repository.VendorListFilter{
		Page:         page,
		PageSize:     pageSize,
		VendorStatus: strings.TrimSpace(c.Query("vendor_status")),
		IsVerified:   verified,
		Search:       strings.TrimSpace(c.Query("search")),
		OrderBy:      strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondServiceError(c, err, "error.vendor_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, vendors, buildPagination(page, pageSize, total))
}

// ApproveVendor 审核通过供应商
func (h *Handler) ApproveVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vendor, err := h.VendorService.Approve(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err, "error.vendor_review_failed", contentErrorRules)
		return
	}
	response.Success(c, vendor)
}

// RejectVendorRequest 拒绝供应商请求
type RejectVendorRequest struct {
	Reason string `json:"reason"`
}

// RejectVendor 拒绝供应商，必须提供原因
func (h *Handler) RejectVendor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req RejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	vendor, err := h.VendorService.Reject(c.Request.Context(), currentUserID(c), id, req.Reason)
	if err != nil {
		respondServiceError(c, err, "error.vendor_review_failed", contentErrorRules)
		return
	}
	response.Success(c, vendor)
}
