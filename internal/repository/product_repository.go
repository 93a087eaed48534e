package repository

import (
	"fmt"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var productSortColumns = []string{"id", "name", "created_at", "updated_at"}

// ProductRepository 商品与变体数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	Count() (int64, error)
	ListVariants(productID uint) ([]models.ProductVariant, error)
	CreateVariants(variants []models.ProductVariant) error
	DeleteVariants(productID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	query = applySearch(query, filter.Search, []string{"name", "slug"}, map[string][]string{
		"product_details": {"description"},
	})

	return findPage[models.Product](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: productSortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// GetByID 根据 ID 获取商品（含变体）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return firstOrNil[models.Product](r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}), id)
}

// Create 创建商品（不级联变体）
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit("Variants").Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Variants").Save(product).Error
}

// Delete 物理删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Product{}, id).Error
}

// Count 统计未删除商品数
func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListVariants 商品变体列表
func (r *GormProductRepository) ListVariants(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateVariants 逐条写入变体，组合已存在时拒绝
func (r *GormProductRepository) CreateVariants(variants []models.ProductVariant) error {
	for i := range variants {
		if err := ensureVariantComboFree(r.db, &variants[i]); err != nil {
			return err
		}
		if err := r.db.Create(&variants[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteVariants 删除商品全部变体
func (r *GormProductRepository) DeleteVariants(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error
}

// variantComboQuery 按 (product, metal, diamond, size) 匹配，空维度用 IS NULL 比较
func variantComboQuery(db *gorm.DB, variant *models.ProductVariant) *gorm.DB {
	query := db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND size_option_id = ?", variant.ProductID, variant.SizeOptionID)
	query = whereOptionalID(query, "metal_option_id", variant.MetalOptionID)
	return whereOptionalID(query, "diamond_option_id", variant.DiamondOptionID)
}

func whereOptionalID(query *gorm.DB, column string, id *uint) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *id)
}

// ensureVariantComboFree 唯一索引对 NULL 不生效，写入前显式检查
func ensureVariantComboFree(db *gorm.DB, variant *models.ProductVariant) error {
	var count int64
	if err := variantComboQuery(db, variant).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: product %d %s", ErrVariantComboExists, variant.ProductID, variant.Key())
	}
	return nil
}
