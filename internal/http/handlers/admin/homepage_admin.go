package admin

import (
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// HomepageSectionDetail 首页区块详情（含分类精选关联）
type HomepageSectionDetail struct {
	models.HomepageSection
	CollectionCategories []models.CollectionCategory `json:"collection_categories"`
}

// GetHomepageSections 按排序位置获取首页区块
func (h *Handler) GetHomepageSections(c *gin.Context) {
	sections, err := h.HomepageService.List()
	if err != nil {
		respondServiceError(c, err, "error.homepage_fetch_failed", contentErrorRules)
		return
	}
	response.Success(c, sections)
}

// GetHomepageSection 获取单个区块
func (h *Handler) GetHomepageSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	section, err := h.HomepageService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.homepage_fetch_failed", contentErrorRules)
		return
	}
	categories, err := h.HomepageService.ListCollectionCategories(id)
	if err != nil {
		respondServiceError(c, err, "error.homepage_fetch_failed", contentErrorRules)
		return
	}
	response.Success(c, HomepageSectionDetail{HomepageSection: *section, CollectionCategories: categories})
}

// HomepageSectionRequest 区块创建/更新请求
type HomepageSectionRequest struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Enabled     *bool              `json:"enabled"`
	SectionData models.SectionData `json:"section_data"`
}

func (r HomepageSectionRequest) toInput() service.HomepageSectionInput {
	return service.HomepageSectionInput{
		Name:        r.Name,
		Type:        r.Type,
		Enabled:     r.Enabled,
		SectionData: r.SectionData,
	}
}

// CreateHomepageSection 创建区块并追加到末尾
func (h *Handler) CreateHomepageSection(c *gin.Context) {
	var req HomepageSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	section, err := h.HomepageService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.homepage_save_failed", contentErrorRules)
		return
	}
	response.Success(c, section)
}

// UpdateHomepageSection 更新区块
func (h *Handler) UpdateHomepageSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req HomepageSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	section, err := h.HomepageService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.homepage_save_failed", contentErrorRules)
		return
	}
	response.Success(c, section)
}

// ToggleRequest 启用/显示开关请求
type ToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetHomepageSectionEnabled 启用或停用区块
func (h *Handler) SetHomepageSectionEnabled(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.HomepageService.SetEnabled(c.Request.Context(), id, *req.Enabled); err != nil {
		respondServiceError(c, err, "error.homepage_save_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"enabled": *req.Enabled})
}

// ReorderRequest 区块排序请求
type ReorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ReorderHomepageSections 按给定顺序重写全部区块位置
func (h *Handler) ReorderHomepageSections(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.HomepageService.Reorder(c.Request.Context(), req.IDs); err != nil {
		respondServiceError(c, err, "error.homepage_save_failed", contentErrorRules)
		return
	}
	sections, err := h.HomepageService.List()
	if err != nil {
		respondServiceError(c, err, "error.homepage_fetch_failed", contentErrorRules)
		return
	}
	response.Success(c, sections)
}

// DeleteHomepageSection 软删除区块
func (h *Handler) DeleteHomepageSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.HomepageService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.homepage_delete_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
