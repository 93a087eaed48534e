package repository

import (
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// HomepageRepository 首页区块数据访问接口
type HomepageRepository interface {
	List() ([]models.HomepageSection, error)
	GetByID(id uint) (*models.HomepageSection, error)
	Count() (int64, error)
	CountEnabled() (int64, error)
	Create(section *models.HomepageSection) error
	Update(section *models.HomepageSection) error
	SetEnabled(id uint, enabled bool) error
	UpdateOrderPosition(id uint, position int) error
	SoftDelete(id uint) error
	ListCollectionCategories(sectionID uint) ([]models.CollectionCategory, error)
	SoftDeleteCollectionCategories(sectionID uint) error
	CreateCollectionCategories(rows []models.CollectionCategory) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) HomepageRepository
}

// GormHomepageRepository GORM 实现
type GormHomepageRepository struct {
	db *gorm.DB
}

// NewHomepageRepository 创建首页区块仓库
func NewHomepageRepository(db *gorm.DB) *GormHomepageRepository {
	return &GormHomepageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormHomepageRepository) WithTx(tx *gorm.DB) HomepageRepository {
	if tx == nil {
		return r
	}
	return &GormHomepageRepository{db: tx}
}

// Transaction 执行事务
func (r *GormHomepageRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 按 order_position 排序的区块列表
func (r *GormHomepageRepository) List() ([]models.HomepageSection, error) {
	var sections []models.HomepageSection
	if err := r.db.Order("order_position ASC, id ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetByID 根据 ID 获取区块
func (r *GormHomepageRepository) GetByID(id uint) (*models.HomepageSection, error) {
	return firstOrNil[models.HomepageSection](r.db, id)
}

// Count 统计未删除区块数
func (r *GormHomepageRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.HomepageSection{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountEnabled 统计启用中的区块数
func (r *GormHomepageRepository) CountEnabled() (int64, error) {
	var count int64
	if err := r.db.Model(&models.HomepageSection{}).Where("enabled = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建区块
func (r *GormHomepageRepository) Create(section *models.HomepageSection) error {
	return r.db.Create(section).Error
}

// Update 更新区块
func (r *GormHomepageRepository) Update(section *models.HomepageSection) error {
	return r.db.Save(section).Error
}

// SetEnabled 更新启用状态
func (r *GormHomepageRepository) SetEnabled(id uint, enabled bool) error {
	return r.db.Model(&models.HomepageSection{}).Where("id = ?", id).Update("enabled", enabled).Error
}

// UpdateOrderPosition 更新单个区块排序位置
func (r *GormHomepageRepository) UpdateOrderPosition(id uint, position int) error {
	return r.db.Model(&models.HomepageSection{}).Where("id = ?", id).Update("order_position", position).Error
}

// SoftDelete 软删除区块
func (r *GormHomepageRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.HomepageSection{}, id).Error
}

// ListCollectionCategories 区块关联分类（未删除）
func (r *GormHomepageRepository) ListCollectionCategories(sectionID uint) ([]models.CollectionCategory, error) {
	var rows []models.CollectionCategory
	if err := r.db.Where("section_id = ?", sectionID).Order("item_index ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SoftDeleteCollectionCategories 软删除区块全部关联分类
func (r *GormHomepageRepository) SoftDeleteCollectionCategories(sectionID uint) error {
	return r.db.Where("section_id = ?", sectionID).Delete(&models.CollectionCategory{}).Error
}

// CreateCollectionCategories 逐条写入关联分类
func (r *GormHomepageRepository) CreateCollectionCategories(rows []models.CollectionCategory) error {
	for i := range rows {
		if err := r.db.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
