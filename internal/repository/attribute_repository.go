package repository

import (
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// AttributeRepository 属性与属性选项数据访问接口
type AttributeRepository interface {
	ListAttributes() ([]models.Attribute, error)
	GetAttributeByType(attrType string) (*models.Attribute, error)
	GetAttributeByID(id uint) (*models.Attribute, error)
	CreateAttribute(attribute *models.Attribute) error
	ListOptions() ([]models.AttributeOption, error)
	GetOptionByID(id uint) (*models.AttributeOption, error)
	ListOptionsByIDs(ids []uint) ([]models.AttributeOption, error)
	CreateOption(option *models.AttributeOption) error
	UpdateOption(option *models.AttributeOption) error
	DeleteOption(id uint) error
	CountVariantsUsingOption(optionID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AttributeRepository
}

// GormAttributeRepository GORM 实现
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository 创建属性仓库
func NewAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAttributeRepository) WithTx(tx *gorm.DB) AttributeRepository {
	if tx == nil {
		return r
	}
	return &GormAttributeRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAttributeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListAttributes 属性族列表
func (r *GormAttributeRepository) ListAttributes() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := r.db.Order("id ASC").Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// GetAttributeByType 根据类型获取属性族
func (r *GormAttributeRepository) GetAttributeByType(attrType string) (*models.Attribute, error) {
	return firstOrNil[models.Attribute](r.db.Where("type = ?", attrType))
}

// GetAttributeByID 根据 ID 获取属性族
func (r *GormAttributeRepository) GetAttributeByID(id uint) (*models.Attribute, error) {
	return firstOrNil[models.Attribute](r.db, id)
}

// CreateAttribute 创建属性族
func (r *GormAttributeRepository) CreateAttribute(attribute *models.Attribute) error {
	return r.db.Create(attribute).Error
}

// ListOptions 全部属性选项（按 ID 排序）
func (r *GormAttributeRepository) ListOptions() ([]models.AttributeOption, error) {
	var options []models.AttributeOption
	if err := r.db.Order("id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// GetOptionByID 根据 ID 获取选项
func (r *GormAttributeRepository) GetOptionByID(id uint) (*models.AttributeOption, error) {
	return firstOrNil[models.AttributeOption](r.db, id)
}

// ListOptionsByIDs 批量获取选项
func (r *GormAttributeRepository) ListOptionsByIDs(ids []uint) ([]models.AttributeOption, error) {
	if len(ids) == 0 {
		return []models.AttributeOption{}, nil
	}
	var options []models.AttributeOption
	if err := r.db.Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// CreateOption 创建选项
func (r *GormAttributeRepository) CreateOption(option *models.AttributeOption) error {
	return r.db.Create(option).Error
}

// UpdateOption 更新选项
func (r *GormAttributeRepository) UpdateOption(option *models.AttributeOption) error {
	return r.db.Save(option).Error
}

// DeleteOption 删除选项
func (r *GormAttributeRepository) DeleteOption(id uint) error {
	return r.db.Delete(&models.AttributeOption{}, id).Error
}

// CountVariantsUsingOption 统计引用该选项的变体数
func (r *GormAttributeRepository) CountVariantsUsingOption(optionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ProductVariant{}).
		Where("metal_option_id = ? OR diamond_option_id = ? OR size_option_id = ?", optionID, optionID, optionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
