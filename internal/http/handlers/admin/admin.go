package admin

import (
	"strings"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetAttributeCatalog 获取金属、钻石、尺寸三类属性及选项
func (h *Handler) GetAttributeCatalog(c *gin.Context) {
	catalog, err := h.AttributeService.Catalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "error.attribute_fetch_failed", catalogErrorRules)
		return
	}
	response.Success(c, catalog)
}

// AttributeOptionRequest 属性选项请求
type AttributeOptionRequest struct {
	Type   string           `json:"type"`
	Name   string           `json:"option_name" binding:"required"`
	SizeMM *decimal.Decimal `json:"size_mm"`
}

// CreateAttributeOption 新增属性选项
func (h *Handler) CreateAttributeOption(c *gin.Context) {
	var req AttributeOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	option, err := h.AttributeService.AddOption(c.Request.Context(), service.AttributeOptionInput{
		Type:   req.Type,
		Name:   req.Name,
		SizeMM: req.SizeMM,
	})
	if err != nil {
		respondServiceError(c, err, "error.attribute_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, option)
}

// UpdateAttributeOption 修改属性选项名称或尺寸
func (h *Handler) UpdateAttributeOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AttributeOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	option, err := h.AttributeService.UpdateOption(c.Request.Context(), id, req.Name, req.SizeMM)
	if err != nil {
		respondServiceError(c, err, "error.attribute_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, option)
}

// DeleteAttributeOption 删除属性选项
func (h *Handler) DeleteAttributeOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AttributeService.DeleteOption(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.attribute_delete_failed", catalogErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminCategories 获取分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.TaxonomyService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "error.category_fetch_failed", catalogErrorRules)
		return
	}
	response.Success(c, categories)
}

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Name: r.Name, Image: r.Image, SortOrder: r.SortOrder}
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.TaxonomyService.CreateCategory(req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.TaxonomyService.UpdateCategory(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（仍被商品引用时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "error.category_delete_failed", catalogErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetCategoryBundle 获取分类的款式、金属宝石与全局属性
func (h *Handler) GetCategoryBundle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bundle, err := h.TaxonomyService.CategoryBundle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "error.category_fetch_failed", catalogErrorRules)
		return
	}
	response.Success(c, bundle)
}

// DimensionRequest 款式/金属宝石名称请求
type DimensionRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategoryStyle 新增分类款式
func (h *Handler) CreateCategoryStyle(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	style, err := h.TaxonomyService.CreateStyle(categoryID, req.Name)
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, style)
}

// UpdateCategoryStyle 重命名款式
func (h *Handler) UpdateCategoryStyle(c *gin.Context) {
	id, ok := parseIDParam(c, "style_id")
	if !ok {
		return
	}
	var req DimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	style, err := h.TaxonomyService.RenameStyle(id, req.Name)
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, style)
}

// DeleteCategoryStyle 删除款式
func (h *Handler) DeleteCategoryStyle(c *gin.Context) {
	id, ok := parseIDParam(c, "style_id")
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteStyle(id); err != nil {
		respondServiceError(c, err, "error.category_delete_failed", catalogErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateCategoryMetal 新增分类金属宝石
func (h *Handler) CreateCategoryMetal(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	metal, err := h.TaxonomyService.CreateMetal(categoryID, req.Name)
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, metal)
}

// UpdateCategoryMetal 重命名金属宝石
func (h *Handler) UpdateCategoryMetal(c *gin.Context) {
	id, ok := parseIDParam(c, "metal_id")
	if !ok {
		return
	}
	var req DimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	metal, err := h.TaxonomyService.RenameMetal(id, req.Name)
	if err != nil {
		respondServiceError(c, err, "error.category_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, metal)
}

// DeleteCategoryMetal 删除金属宝石
func (h *Handler) DeleteCategoryMetal(c *gin.Context) {
	id, ok := parseIDParam(c, "metal_id")
	if !ok {
		return
	}
	if err := h.TaxonomyService.DeleteMetal(id); err != nil {
		respondServiceError(c, err, "error.category_delete_failed", catalogErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminProducts 获取商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: parseUintQuery(c, "category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		OrderBy:    strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondServiceError(c, err, "error.product_fetch_failed", catalogErrorRules)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情（含变体）
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondServiceError(c, err, "error.product_fetch_failed", catalogErrorRules)
		return
	}
	response.Success(c, product)
}

// VariantRequest 变体请求
type VariantRequest struct {
	MetalOptionID      *uint            `json:"metal_option_id"`
	DiamondOptionID    *uint            `json:"diamond_option_id"`
	SizeOptionID       uint             `json:"size_option_id"`
	OriginalPrice      models.Money     `json:"original_price"`
	DiscountPrice      *models.Money    `json:"discount_price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	FileTypes          []string         `json:"file_types"`
}

// CreateProductRequest 创建商品请求（商品与变体一次提交）
type CreateProductRequest struct {
	CategoryID    uint             `json:"category_id" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Price         models.Money     `json:"price"`
	OriginalPrice models.Money     `json:"originalPrice"`
	Discount      decimal.Decimal  `json:"discount"`
	StyleID       *uint            `json:"style_id"`
	MetalID       *uint            `json:"metal_id"`
	Featured      []string         `json:"featured"`
	Gender        []string         `json:"gender"`
	Images        []string         `json:"images"`
	Variants      []VariantRequest `json:"variants"`
}

// CreateProduct 在同一事务中创建商品与变体
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	variants := make([]service.VariantInput, 0, len(req.Variants))
	for _, item := range req.Variants {
		variants = append(variants, service.VariantInput{
			MetalOptionID:      item.MetalOptionID,
			DiamondOptionID:    item.DiamondOptionID,
			SizeOptionID:       item.SizeOptionID,
			OriginalPrice:      item.OriginalPrice,
			DiscountPrice:      item.DiscountPrice,
			DiscountPercentage: item.DiscountPercentage,
			FileTypes:          item.FileTypes,
		})
	}
	product, err := h.ProductService.CreateWithVariants(c.Request.Context(), service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		StyleID:       req.StyleID,
		MetalID:       req.MetalID,
		Featured:      req.Featured,
		Gender:        req.Gender,
		Images:        req.Images,
	}, variants)
	if err != nil {
		respondServiceError(c, err, "error.product_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, product)
}

// UpdateProductRequest 商品详情编辑请求
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Price         *models.Money    `json:"price"`
	OriginalPrice *models.Money    `json:"originalPrice"`
	Discount      *decimal.Decimal `json:"discount"`
	Featured      *[]string        `json:"featured"`
	Gender        *[]string        `json:"gender"`
}

// UpdateProduct 更新商品详情（变体只读）
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.UpdateDetails(c.Request.Context(), id, service.ProductDetailsPatch{
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		Featured:      req.Featured,
		Gender:        req.Gender,
	})
	if err != nil {
		respondServiceError(c, err, "error.product_save_failed", catalogErrorRules)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品及全部变体
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "error.product_delete_failed", catalogErrorRules)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
