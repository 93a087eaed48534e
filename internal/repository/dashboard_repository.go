package repository

import (
	"fmt"
	"time"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	Products         int64
	Categories       int64
	LiveSections     int64
	EnabledSections  int64
	PendingVendors   int64
	NewEnquiries     int64
	OrdersByStatus   map[string]int64
	DeliveredRevenue float64
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day    string
	Total  int64
	Amount float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{OrdersByStatus: map[string]int64{}}

	if err := r.db.Model(&models.Product{}).Count(&result.Products).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Category{}).Count(&result.Categories).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.HomepageSection{}).Count(&result.LiveSections).Error; err != nil {
		return result, err
	}
	enabled, err := NewHomepageRepository(r.db).CountEnabled()
	if err != nil {
		return result, err
	}
	result.EnabledSections = enabled
	if err := r.db.Model(&models.User{}).
		Where("user_type = ? AND vendor_status = ?", constants.UserTypeVendor, constants.VendorStatusPending).
		Count(&result.PendingVendors).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Enquiry{}).
		Where("status = ?", constants.EnquiryStatusNew).
		Count(&result.NewEnquiries).Error; err != nil {
		return result, err
	}

	var rows []OrderStatusCountRow
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		result.OrdersByStatus[row.Status] = row.Total
	}

	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.DeliveredRevenue).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetOrderTrends 获取订单按天趋势
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	dayExpr := dialectOf(r.db).day("created_at")
	var rows []DashboardOrderTrendRow
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s AS day, COUNT(*) AS total, COALESCE(SUM(total_amount), 0) AS amount", dayExpr)).
		Where("created_at >= ? AND created_at < ? AND status <> ?", startAt, endAt, constants.OrderStatusCancelled).
		Group(dayExpr).
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
