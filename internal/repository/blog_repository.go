package repository

import (
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var blogSortColumns = []string{"id", "title", "created_at", "published_at"}

// BlogRepository 博客数据访问接口
type BlogRepository interface {
	List(filter BlogListFilter) ([]models.Blog, int64, error)
	GetByID(id uint) (*models.Blog, error)
	Create(blog *models.Blog) error
	Update(blog *models.Blog) error
	SoftDelete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
}

// GormBlogRepository GORM 实现
type GormBlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository 创建博客仓库
func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// List 博客列表
func (r *GormBlogRepository) List(filter BlogListFilter) ([]models.Blog, int64, error) {
	query := r.db.Model(&models.Blog{})
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}
	query = applySearch(query, filter.Search, []string{"title", "excerpt", "author"}, nil)

	return findPage[models.Blog](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: blogSortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// GetByID 根据 ID 获取博客
func (r *GormBlogRepository) GetByID(id uint) (*models.Blog, error) {
	return firstOrNil[models.Blog](r.db, id)
}

// Create 创建博客
func (r *GormBlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update 更新博客
func (r *GormBlogRepository) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// SoftDelete 软删除博客
func (r *GormBlogRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.Blog{}, id).Error
}

// CountBySlug 统计 slug 数量（含已软删除，保证唯一索引不冲突）
func (r *GormBlogRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Blog{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
