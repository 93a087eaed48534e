package repository

import (
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

var vendorSortColumns = []string{"id", "name", "business_name", "created_at"}

// UserRepository 后台用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	ListVendors(filter VendorListFilter) ([]models.User, int64, error)
	CountVendorsByStatus(status string) (int64, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))))
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListVendors 供应商列表
func (r *GormUserRepository) ListVendors(filter VendorListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Where("user_type = ?", constants.UserTypeVendor)
	if status := strings.TrimSpace(filter.VendorStatus); status != "" {
		query = query.Where("vendor_status = ?", status)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	query = applySearch(query, filter.Search, []string{"name", "email", "business_name", "gst_number"}, nil)

	return findPage[models.User](query, listSpec{
		page:     filter.Page,
		pageSize: filter.PageSize,
		orderBy:  filter.OrderBy,
		sortable: vendorSortColumns,
		fallback: "created_at DESC, id DESC",
	})
}

// CountVendorsByStatus 按审核状态统计供应商
func (r *GormUserRepository) CountVendorsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("user_type = ? AND vendor_status = ?", constants.UserTypeVendor, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
