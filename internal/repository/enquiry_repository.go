package repository

import (
	"strings"

	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var enquirySortColumns = []string{"id", "name", "status", "created_at"}

// EnquiryRepository 询价数据访问接口
type EnquiryRepository interface {
	List(filter EnquiryListFilter) ([]models.Enquiry, int64, error)
	GetByID(id uint) (*models.Enquiry, error)
	UpdateStatus(id uint, status string) error
	SoftDelete(id uint) error
	CountByStatus(status string) (int64, error)
}

// GormEnquiryRepository GORM 实现
type GormEnquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository 创建询价仓库
func NewEnquiryRepository(db *gorm.DB) *GormEnquiryRepository {
	return &GormEnquiryRepository{db: db}
}

// List 询价列表
func (r *GormEnquiryRepository) List(filter EnquiryListFilter) ([]models.Enquiry, int64, error) {
	query := r.db.Model(&models.Enquiry{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applySearch(query, filter.Search, []string{"name", "email", "phone", "message"}, nil)

	return findPage[models.Enquiry](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: enquirySortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// GetByID 根据 ID 获取询价
func (r *GormEnquiryRepository) GetByID(id uint) (*models.Enquiry, error) {
	return firstOrNil[models.Enquiry](r.db, id)
}

// UpdateStatus 更新处理状态
func (r *GormEnquiryRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Enquiry{}).Where("id = ?", id).Update("status", status).Error
}

// SoftDelete 软删除询价
func (r *GormEnquiryRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.Enquiry{}, id).Error
}

// CountByStatus 按状态统计
func (r *GormEnquiryRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Enquiry{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
