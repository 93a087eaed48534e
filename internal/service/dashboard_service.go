package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardCacheTTL      = 45 * time.Second
	dashboardCustomMaxDays = 90
	dashboardDayLayout     = "2006-01-02"
)

// 预设区间包含的自然日数（含今天）
var dashboardPresetDays = map[string]int{
	"today": 1,
	"7d":    7,
	"30d":   30,
}

// DashboardService 后台首页的目录、订单与审核统计
type DashboardService struct {
	repo     repository.DashboardRepository
	settings *SettingService
}

func NewDashboardService(repo repository.DashboardRepository, settingService *SettingService) *DashboardService {
	return &DashboardService{repo: repo, settings: settingService}
}

// DashboardQueryInput 趋势查询参数，Range 取 today / 7d / 30d / custom
type DashboardQueryInput struct {
	Range        string
	From         *time.Time
	To           *time.Time
	Timezone     string
	ForceRefresh bool
}

type DashboardOverviewResponse struct {
	Catalog        DashboardCatalog     `json:"catalog"`
	OrdersByStatus map[string]int64     `json:"orders_by_status"`
	Revenue        string               `json:"delivered_revenue"`
	PendingVendors int64                `json:"pending_vendors"`
	NewEnquiries   int64                `json:"new_enquiries"`
	Alerts         []DashboardAlertItem `json:"alerts"`
}

type DashboardCatalog struct {
	Products        int64 `json:"products"`
	Categories      int64 `json:"categories"`
	LiveSections    int64 `json:"live_sections"`
	EnabledSections int64 `json:"enabled_sections"`
}

// DashboardAlertItem 超过阈值的待办项
type DashboardAlertItem struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Value int64  `json:"value"`
}

type DashboardTrendResponse struct {
	Range    string                `json:"range"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Timezone string                `json:"timezone"`
	Points   []DashboardTrendPoint `json:"points"`
}

type DashboardTrendPoint struct {
	Date        string `json:"date"`
	OrdersTotal int64  `json:"orders_total"`
	Amount      string `json:"amount"`
}

// dashboardWindow 左闭右开的统计区间
type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
	timezone string
}

func (w dashboardWindow) cacheKey() string {
	return fmt.Sprintf("dashboard:trends:%s:%d:%d:%s", w.rangeKey, w.startAt.Unix(), w.endAt.Unix(), w.timezone)
}

// rememberDashboard 统一处理强制刷新与缓存读写
func rememberDashboard[T any](ctx context.Context, key string, refresh bool, load func() (T, error)) (T, error) {
	if refresh {
		_ = cache.Del(ctx, key)
	}
	return cache.Remember(ctx, key, dashboardCacheTTL, load)
}

// GetOverview 阈值参与缓存键，修改告警设置后立即生效
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}
	alert := s.currentSetting().Alert
	key := fmt.Sprintf("dashboard:overview:%d:%d:%d",
		alert.PendingVendorsThreshold, alert.NewEnquiriesThreshold, alert.PendingOrdersThreshold)

	return rememberDashboard(ctx, key, forceRefresh, func() (*DashboardOverviewResponse, error) {
		row, err := s.repo.GetOverview()
		if err != nil {
			return nil, err
		}
		if row.OrdersByStatus == nil {
			row.OrdersByStatus = map[string]int64{}
		}
		return &DashboardOverviewResponse{
			Catalog: DashboardCatalog{
				Products:        row.Products,
				Categories:      row.Categories,
				LiveSections:    row.LiveSections,
				EnabledSections: row.EnabledSections,
			},
			OrdersByStatus: row.OrdersByStatus,
			Revenue:        formatMoneyValue(row.DeliveredRevenue),
			PendingVendors: row.PendingVendors,
			NewEnquiries:   row.NewEnquiries,
			Alerts:         buildDashboardAlerts(row, alert),
		}, nil
	})
}

// GetTrends 按天汇总订单量与金额，无订单的日期补零
func (s *DashboardService) GetTrends(ctx context.Context, input DashboardQueryInput) (*DashboardTrendResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardTrendResponse{}, nil
	}
	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}
	return rememberDashboard(ctx, window.cacheKey(), input.ForceRefresh, func() (*DashboardTrendResponse, error) {
		rows, err := s.repo.GetOrderTrends(window.startAt, window.endAt)
		if err != nil {
			return nil, err
		}
		return &DashboardTrendResponse{
			Range:    window.rangeKey,
			From:     window.startAt.Format(time.RFC3339),
			To:       window.endAt.Add(-time.Second).Format(time.RFC3339),
			Timezone: window.timezone,
			Points:   fillTrendPoints(window, rows),
		}, nil
	})
}

func (s *DashboardService) currentSetting() DashboardSetting {
	if s.settings == nil {
		return DashboardDefaultSetting()
	}
	setting, err := s.settings.GetDashboardSetting()
	if err != nil {
		return DashboardDefaultSetting()
	}
	return NormalizeDashboardSetting(setting)
}

func fillTrendPoints(window dashboardWindow, rows []repository.DashboardOrderTrendRow) []DashboardTrendPoint {
	byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	y, m, d := window.startAt.Date()
	cursor := time.Date(y, m, d, 0, 0, 0, 0, window.startAt.Location())

	points := make([]DashboardTrendPoint, 0)
	for ; cursor.Before(window.endAt); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Format(dashboardDayLayout)
		row := byDay[day]
		points = append(points, DashboardTrendPoint{Date: day, OrdersTotal: row.Total, Amount: formatMoneyValue(row.Amount)})
	}
	return points
}

// dashboardLocation 无法识别的时区回退到服务器本地时区
func dashboardLocation(name string) (*time.Location, string) {
	name = strings.TrimSpace(name)
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, name
		}
	}
	return time.Local, time.Local.String()
}

func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "7d"
	}
	loc, tz := dashboardLocation(input.Timezone)
	window := dashboardWindow{rangeKey: rangeKey, timezone: tz}

	if days, ok := dashboardPresetDays[rangeKey]; ok {
		y, m, d := now.In(loc).Date()
		tomorrow := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		window.startAt = tomorrow.AddDate(0, 0, -days)
		window.endAt = tomorrow
		return window, nil
	}
	if rangeKey != "custom" || input.From == nil || input.To == nil {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}

	window.startAt = input.From.In(loc)
	last := input.To.In(loc)
	span := last.Sub(window.startAt)
	if span < 0 || span > dashboardCustomMaxDays*24*time.Hour {
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	window.endAt = last.Add(time.Second)
	return window, nil
}

func formatMoneyValue(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

func buildDashboardAlerts(row repository.DashboardOverviewRow, alert DashboardAlertSetting) []DashboardAlertItem {
	checks := []struct {
		kind      string
		level     string
		value     int64
		threshold int64
	}{
		{"pending_vendors", "warning", row.PendingVendors, alert.PendingVendorsThreshold},
		{"new_enquiries", "info", row.NewEnquiries, alert.NewEnquiriesThreshold},
		{"pending_orders", "warning", row.OrdersByStatus[constants.OrderStatusPending], alert.PendingOrdersThreshold},
	}
	alerts := make([]DashboardAlertItem, 0, len(checks))
	for _, check := range checks {
		if check.value >= check.threshold {
			alerts = append(alerts, DashboardAlertItem{Type: check.kind, Level: check.level, Value: check.value})
		}
	}
	return alerts
}
