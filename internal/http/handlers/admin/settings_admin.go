package admin

import (
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// GetInvoiceSettings 获取发票与 GST 设置
func (h *Handler) GetInvoiceSettings(c *gin.Context) {
	setting, err := h.SettingService.GetInvoiceSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateInvoiceSettings 部分更新发票设置
func (h *Handler) UpdateInvoiceSettings(c *gin.Context) {
	var req service.InvoiceSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.PatchInvoiceSetting(req)
	if err != nil {
		respondServiceError(c, err, "error.settings_save_failed", settingErrorRules)
		return
	}
	response.Success(c, setting)
}

// GetDashboardSettings 获取仪表盘告警阈值
func (h *Handler) GetDashboardSettings(c *gin.Context) {
	setting, err := h.SettingService.GetDashboardSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateDashboardSettings 更新仪表盘告警阈值，越界值回退默认
func (h *Handler) UpdateDashboardSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	value, err := h.SettingService.Update(constants.SettingKeyDashboardConfig, req)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_save_failed", err)
		return
	}
	response.Success(c, value)
}
