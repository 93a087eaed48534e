package service

import (
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
)

// DashboardAlertSetting 待办数量达到阈值时在首页提示
type DashboardAlertSetting struct {
	PendingVendorsThreshold int64 `json:"pending_vendors_threshold"`
	NewEnquiriesThreshold   int64 `json:"new_enquiries_threshold"`
	PendingOrdersThreshold  int64 `json:"pending_orders_threshold"`
}

type DashboardSetting struct {
	Alert DashboardAlertSetting `json:"alert"`
}

// dashboardThreshold 单个阈值的存储键、默认值与上限，越界回到默认值
type dashboardThreshold struct {
	key      string
	fallback int64
	max      int64
	field    func(*DashboardAlertSetting) *int64
}

var dashboardThresholds = []dashboardThreshold{
	{"pending_vendors_threshold", 1, 10000, func(a *DashboardAlertSetting) *int64 { return &a.PendingVendorsThreshold }},
	{"new_enquiries_threshold", 10, 100000, func(a *DashboardAlertSetting) *int64 { return &a.NewEnquiriesThreshold }},
	{"pending_orders_threshold", 20, 100000, func(a *DashboardAlertSetting) *int64 { return &a.PendingOrdersThreshold }},
}

func DashboardDefaultSetting() DashboardSetting {
	var setting DashboardSetting
	for _, rule := range dashboardThresholds {
		*rule.field(&setting.Alert) = rule.fallback
	}
	return setting
}

func NormalizeDashboardSetting(setting DashboardSetting) DashboardSetting {
	for _, rule := range dashboardThresholds {
		if v := rule.field(&setting.Alert); *v < 1 || *v > rule.max {
			*v = rule.fallback
		}
	}
	return setting
}

// DashboardSettingToMap settings 表中保存的结构
func DashboardSettingToMap(setting DashboardSetting) map[string]interface{} {
	normalized := NormalizeDashboardSetting(setting)
	alert := make(map[string]interface{}, len(dashboardThresholds))
	for _, rule := range dashboardThresholds {
		alert[rule.key] = *rule.field(&normalized.Alert)
	}
	return map[string]interface{}{"alert": alert}
}

func dashboardSettingFromJSON(raw models.JSON, fallback DashboardSetting) DashboardSetting {
	result := fallback
	if alert := toStringAnyMap(raw["alert"]); alert != nil {
		for _, rule := range dashboardThresholds {
			v := rule.field(&result.Alert)
			*v = int64(readInt(alert, rule.key, int(*v)))
		}
	}
	return NormalizeDashboardSetting(result)
}

// GetDashboardSetting 未保存过时返回默认阈值
func (s *SettingService) GetDashboardSetting() (DashboardSetting, error) {
	fallback := DashboardDefaultSetting()
	if s == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyDashboardConfig)
	if err != nil || value == nil {
		return fallback, err
	}
	return dashboardSettingFromJSON(value, fallback), nil
}
