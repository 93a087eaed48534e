package repository

import (
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类及其款式、金属维度
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountProducts(categoryID uint) (int64, error)

	ListStyles(categoryID uint) ([]models.CategoryStyle, error)
	GetStyleByID(id uint) (*models.CategoryStyle, error)
	CreateStyle(style *models.CategoryStyle) error
	UpdateStyle(style *models.CategoryStyle) error
	DeleteStyle(id uint) error

	ListMetals(categoryID uint) ([]models.CategoryMetal, error)
	GetMetalByID(id uint) (*models.CategoryMetal, error)
	CreateMetal(metal *models.CategoryMetal) error
	UpdateMetal(metal *models.CategoryMetal) error
	DeleteMetal(id uint) error

	DeleteDimensions(categoryID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CategoryRepository
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

func (r *GormCategoryRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 排序权重高的在前，同权重按创建顺序
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	return findAll[models.Category](r.db.Order("sort_order DESC, id ASC"))
}

func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	return firstOrNil[models.Category](r.db, id)
}

func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountBySlug excludeID 用于更新时排除自身
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	return count(query)
}

// CountProducts 软删除的商品不计入
func (r *GormCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	return count(r.db.Model(&models.Product{}).Where("category_id = ?", categoryID))
}

func (r *GormCategoryRepository) byCategory(categoryID uint) *gorm.DB {
	return r.db.Where("category_id = ?", categoryID).Order("id ASC")
}

func (r *GormCategoryRepository) ListStyles(categoryID uint) ([]models.CategoryStyle, error) {
	return findAll[models.CategoryStyle](r.byCategory(categoryID))
}

func (r *GormCategoryRepository) GetStyleByID(id uint) (*models.CategoryStyle, error) {
	return firstOrNil[models.CategoryStyle](r.db, id)
}

func (r *GormCategoryRepository) CreateStyle(style *models.CategoryStyle) error {
	return r.db.Create(style).Error
}

func (r *GormCategoryRepository) UpdateStyle(style *models.CategoryStyle) error {
	return r.db.Save(style).Error
}

func (r *GormCategoryRepository) DeleteStyle(id uint) error {
	return r.db.Delete(&models.CategoryStyle{}, id).Error
}

func (r *GormCategoryRepository) ListMetals(categoryID uint) ([]models.CategoryMetal, error) {
	return findAll[models.CategoryMetal](r.byCategory(categoryID))
}

func (r *GormCategoryRepository) GetMetalByID(id uint) (*models.CategoryMetal, error) {
	return firstOrNil[models.CategoryMetal](r.db, id)
}

func (r *GormCategoryRepository) CreateMetal(metal *models.CategoryMetal) error {
	return r.db.Create(metal).Error
}

func (r *GormCategoryRepository) UpdateMetal(metal *models.CategoryMetal) error {
	return r.db.Save(metal).Error
}

func (r *GormCategoryRepository) DeleteMetal(id uint) error {
	return r.db.Delete(&models.CategoryMetal{}, id).Error
}

// DeleteDimensions 删除分类前清理款式与金属，需在同一事务内调用
func (r *GormCategoryRepository) DeleteDimensions(categoryID uint) error {
	for _, model := range []interface{}{&models.CategoryStyle{}, &models.CategoryMetal{}} {
		if err := r.db.Where("category_id = ?", categoryID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
