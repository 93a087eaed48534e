package service

import (
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"github.com/spf13/cast"
)

// SettingService settings 表的读写，按键做取值归一化
type SettingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey 未保存过的键返回 nil
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 覆盖整个键的值，已知键先归一化再入库
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, normalizeSettingValueByKey(key, value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

func normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	switch key {
	case constants.SettingKeyInvoice:
		return models.JSON(InvoiceSettingToMap(invoiceSettingFromJSON(models.JSON(value), InvoiceDefaultSetting())))
	case constants.SettingKeyDashboardConfig:
		return models.JSON(DashboardSettingToMap(dashboardSettingFromJSON(models.JSON(value), DashboardDefaultSetting())))
	default:
		return models.JSON(value)
	}
}

func toStringAnyMap(value interface{}) map[string]interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return v
	case models.JSON:
		return map[string]interface{}(v)
	default:
		return nil
	}
}

func readString(source map[string]interface{}, key, fallback string) string {
	if v, ok := source[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

// readBool 除 strconv 认可的写法外还接受 yes/no/on/off
func readBool(source map[string]interface{}, key string, fallback bool) bool {
	value, ok := source[key]
	if !ok || value == nil {
		return fallback
	}
	if text, isText := value.(string); isText {
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		}
		value = strings.TrimSpace(text)
	}
	parsed, err := cast.ToBoolE(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// readInt 小数按截断处理，空串与无法解析的值取 fallback
func readInt(source map[string]interface{}, key string, fallback int) int {
	value, ok := source[key]
	if !ok || value == nil {
		return fallback
	}
	if text, isText := value.(string); isText {
		value = strings.TrimSpace(text)
	}
	parsed, err := cast.ToIntE(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func readFloat(source map[string]interface{}, key string, fallback float64) float64 {
	value, ok := source[key]
	if !ok || value == nil {
		return fallback
	}
	if text, isText := value.(string); isText {
		value = strings.TrimSpace(text)
	}
	parsed, err := cast.ToFloat64E(value)
	if err != nil {
		return fallback
	}
	return parsed
}
