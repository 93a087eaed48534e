package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
)

// GSTIN：2 位州代码 + 10 位 PAN + 实体号 + Z + 校验位
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

const maxGSTRate = 28

// InvoiceSetting 发票与 GST 设置
type InvoiceSetting struct {
	CompanyName   string  `json:"company_name"`
	GSTIN         string  `json:"gstin"`
	Address       string  `json:"address"`
	StateCode     string  `json:"state_code"`
	GSTRate       float64 `json:"gst_rate"`
	InvoicePrefix string  `json:"invoice_prefix"`
	HSNCode       string  `json:"hsn_code"`
}

// InvoiceSettingPatch 发票设置补丁（支持部分更新）
type InvoiceSettingPatch struct {
	CompanyName   *string  `json:"company_name"`
	GSTIN         *string  `json:"gstin"`
	Address       *string  `json:"address"`
	StateCode     *string  `json:"state_code"`
	GSTRate       *float64 `json:"gst_rate"`
	InvoicePrefix *string  `json:"invoice_prefix"`
	HSNCode       *string  `json:"hsn_code"`
}

// InvoiceDefaultSetting 默认发票设置
func InvoiceDefaultSetting() InvoiceSetting {
	return InvoiceSetting{
		GSTRate:       3,
		InvoicePrefix: "INV",
		HSNCode:       "7113",
	}
}

// IsValidGSTIN 校验 GSTIN 格式
func IsValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(gstin)))
}

// NormalizeInvoiceSetting 归一化发票设置
func NormalizeInvoiceSetting(setting InvoiceSetting) InvoiceSetting {
	setting.CompanyName = strings.TrimSpace(setting.CompanyName)
	setting.GSTIN = strings.ToUpper(strings.TrimSpace(setting.GSTIN))
	setting.Address = strings.TrimSpace(setting.Address)
	setting.StateCode = strings.TrimSpace(setting.StateCode)
	setting.InvoicePrefix = strings.ToUpper(strings.TrimSpace(setting.InvoicePrefix))
	setting.HSNCode = strings.TrimSpace(setting.HSNCode)
	if setting.StateCode == "" && len(setting.GSTIN) >= 2 {
		setting.StateCode = setting.GSTIN[:2]
	}
	return setting
}

// ValidateInvoiceSetting 校验发票设置
func ValidateInvoiceSetting(setting InvoiceSetting) error {
	if setting.GSTIN != "" && !IsValidGSTIN(setting.GSTIN) {
		return ErrInvalidGSTIN
	}
	if setting.GSTRate < 0 || setting.GSTRate > maxGSTRate {
		return fmt.Errorf("%w: %v", ErrInvalidGSTRate, setting.GSTRate)
	}
	return nil
}

// InvoiceSettingToMap 转换为 settings 表结构
func InvoiceSettingToMap(setting InvoiceSetting) map[string]interface{} {
	normalized := NormalizeInvoiceSetting(setting)
	return map[string]interface{}{
		"company_name":   normalized.CompanyName,
		"gstin":          normalized.GSTIN,
		"address":        normalized.Address,
		"state_code":     normalized.StateCode,
		"gst_rate":       normalized.GSTRate,
		"invoice_prefix": normalized.InvoicePrefix,
		"hsn_code":       normalized.HSNCode,
	}
}

// GetInvoiceSetting 获取发票设置（空时回退默认值）
func (s *SettingService) GetInvoiceSetting() (InvoiceSetting, error) {
	fallback := InvoiceDefaultSetting()
	value, err := s.GetByKey(constants.SettingKeyInvoice)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return NormalizeInvoiceSetting(invoiceSettingFromJSON(value, fallback)), nil
}

// PatchInvoiceSetting 基于补丁更新发票设置
func (s *SettingService) PatchInvoiceSetting(patch InvoiceSettingPatch) (InvoiceSetting, error) {
	current, err := s.GetInvoiceSetting()
	if err != nil {
		return InvoiceSetting{}, err
	}

	next := current
	if patch.CompanyName != nil {
		next.CompanyName = *patch.CompanyName
	}
	if patch.GSTIN != nil {
		next.GSTIN = *patch.GSTIN
	}
	if patch.Address != nil {
		next.Address = *patch.Address
	}
	if patch.StateCode != nil {
		next.StateCode = *patch.StateCode
	}
	if patch.GSTRate != nil {
		next.GSTRate = *patch.GSTRate
	}
	if patch.InvoicePrefix != nil {
		next.InvoicePrefix = *patch.InvoicePrefix
	}
	if patch.HSNCode != nil {
		next.HSNCode = *patch.HSNCode
	}

	normalized := NormalizeInvoiceSetting(next)
	if err := ValidateInvoiceSetting(normalized); err != nil {
		return InvoiceSetting{}, err
	}
	if _, err := s.Update(constants.SettingKeyInvoice, InvoiceSettingToMap(normalized)); err != nil {
		return InvoiceSetting{}, err
	}
	return normalized, nil
}

func invoiceSettingFromJSON(raw models.JSON, fallback InvoiceSetting) InvoiceSetting {
	next := fallback
	if raw == nil {
		return next
	}
	next.CompanyName = readString(raw, "company_name", next.CompanyName)
	next.GSTIN = readString(raw, "gstin", next.GSTIN)
	next.Address = readString(raw, "address", next.Address)
	next.StateCode = readString(raw, "state_code", next.StateCode)
	next.GSTRate = readFloat(raw, "gst_rate", next.GSTRate)
	next.InvoicePrefix = readString(raw, "invoice_prefix", next.InvoicePrefix)
	next.HSNCode = readString(raw, "hsn_code", next.HSNCode)
	return next
}
