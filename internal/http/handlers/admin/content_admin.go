package admin

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gemdesk/internal/export"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetAdminBlogs 博客列表
func (h *Handler) GetAdminBlogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	published, err := parseBoolQuery(c, "is_published")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	blogs, total, err := h.BlogService.List(repository.BlogListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      strings.TrimSpace(c.Query("search")),
		IsPublished: published,
		OrderBy:     strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondServiceError(c, err, "error.blog_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, blogs, buildPagination(page, pageSize, total))
}

// GetAdminBlog 博客详情
func (h *Handler) GetAdminBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	blog, err := h.BlogService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.blog_fetch_failed", contentErrorRules)
		return
	}
	response.Success(c, blog)
}

// BlogRequest 博客请求
type BlogRequest struct {
	Title       string   `json:"title" binding:"required"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

func (r BlogRequest) toInput() service.BlogInput {
	return service.BlogInput{
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		CoverImage:  r.CoverImage,
		Author:      r.Author,
		Tags:        r.Tags,
		IsPublished: r.IsPublished,
	}
}

// CreateBlog 创建博客
func (h *Handler) CreateBlog(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	blog, err := h.BlogService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.blog_save_failed", contentErrorRules)
		return
	}
	response.Success(c, blog)
}

// UpdateBlog 更新博客
func (h *Handler) UpdateBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	blog, err := h.BlogService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.blog_save_failed", contentErrorRules)
		return
	}
	response.Success(c, blog)
}

// PublishRequest 发布开关请求
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// PublishBlog 发布或撤回博客
func (h *Handler) PublishBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	blog, err := h.BlogService.SetPublished(id, *req.Published)
	if err != nil {
		respondServiceError(c, err, "error.blog_save_failed", contentErrorRules)
		return
	}
	response.Success(c, blog)
}

// DeleteBlog 软删除博客
func (h *Handler) DeleteBlog(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.BlogService.Delete(id); err != nil {
		respondServiceError(c, err, "error.blog_delete_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminFAQs FAQ 列表
func (h *Handler) GetAdminFAQs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	active, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	faqs, total, err := h.FAQService.List(repository.FAQListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		IsActive: active,
		OrderBy:  strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondServiceError(c, err, "error.faq_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, faqs, buildPagination(page, pageSize, total))
}

// FAQRequest FAQ 请求
type FAQRequest struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

func (r FAQRequest) toInput() service.FAQInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.FAQInput{
		Question:  r.Question,
		Answer:    r.Answer,
		Category:  r.Category,
		SortOrder: r.SortOrder,
		IsActive:  active,
	}
}

// CreateFAQ 创建 FAQ
func (h *Handler) CreateFAQ(c *gin.Context) {
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	faq, err := h.FAQService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.faq_save_failed", contentErrorRules)
		return
	}
	response.Success(c, faq)
}

// UpdateFAQ 更新 FAQ
func (h *Handler) UpdateFAQ(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	faq, err := h.FAQService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.faq_save_failed", contentErrorRules)
		return
	}
	response.Success(c, faq)
}

// DeleteFAQ 软删除 FAQ
func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.FAQService.Delete(id); err != nil {
		respondServiceError(c, err, "error.faq_delete_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminReviews 评价列表
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, pageSize := parsePagination(c)
	hidden, err := parseBoolQuery(c, "is_hidden")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	reviews, total, err := h.ReviewService.List(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: parseUintQuery(c, "product_id"),
		IsHidden:  hidden,
		Search:    strings.TrimSpace(c.Query("search")),
		OrderBy:   strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondServiceError(c, err, "error.review_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, reviews, buildPagination(page, pageSize, total))
}

// HideRequest 评价隐藏请求
type HideRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// SetReviewHidden 隐藏或恢复评价
func (h *Handler) SetReviewHidden(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req HideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	review, err := h.ReviewService.SetHidden(id, *req.Hidden)
	if err != nil {
		respondServiceError(c, err, "error.review_save_failed", contentErrorRules)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		respondServiceError(c, err, "error.review_delete_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func enquiryFilterFromQuery(c *gin.Context) repository.EnquiryListFilter {
	page, pageSize := parsePagination(c)
	return repository.EnquiryListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
		OrderBy:  strings.TrimSpace(c.Query("order_by")),
	}
}

// GetAdminEnquiries 询价列表
func (h *Handler) GetAdminEnquiries(c *gin.Context) {
	filter := enquiryFilterFromQuery(c)
	enquiries, total, err := h.EnquiryService.List(filter)
	if err != nil {
		respondServiceError(c, err, "error.enquiry_fetch_failed", contentErrorRules)
		return
	}
	response.SuccessWithPage(c, enquiries, buildPagination(filter.Page, filter.PageSize, total))
}

// StatusRequest 状态变更请求
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateEnquiryStatus 更新询价状态
func (h *Handler) UpdateEnquiryStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	enquiry, err := h.EnquiryService.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err, "error.enquiry_save_failed", contentErrorRules)
		return
	}
	response.Success(c, enquiry)
}

// DeleteEnquiry 软删除询价
func (h *Handler) DeleteEnquiry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.EnquiryService.Delete(id); err != nil {
		respondServiceError(c, err, "error.enquiry_delete_failed", contentErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ExportEnquiries 导出询价 XLSX
func (h *Handler) ExportEnquiries(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.EnquiryService.Export(&buf, enquiryFilterFromQuery(c)); err != nil {
		respondServiceError(c, err, "error.export_failed", contentErrorRules)
		return
	}
	writeWorkbook(c, export.FileName("enquiries", time.Now()), buf.Bytes())
}

func writeWorkbook(c *gin.Context, filename string, content []byte) {
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, xlsxContentType, content)
}
