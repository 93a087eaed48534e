package admin

import (
	"errors"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

var emailErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, key: "error.email_recipient_not_found"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeBadRequest, key: "error.email_service_not_configured"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeBadRequest, key: "error.email_service_not_configured"},
}

type smtpTestPayload struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GetSMTPSettings 密码脱敏后的 SMTP 配置
func (h *Handler) GetSMTPSettings(c *gin.Context) {
	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// UpdateSMTPSettings 保存后立即替换运行中的邮件配置
func (h *Handler) UpdateSMTPSettings(c *gin.Context) {
	var patch service.SMTPSettingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.PatchSMTPSetting(h.Config.Email, patch)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondErrorWithMsg(c, response.CodeBadRequest, err.Error(), nil)
		return
	case err != nil:
		respondError(c, response.CodeInternal, "error.settings_save_failed", err)
		return
	}

	h.Config.Email = service.SMTPSettingToConfig(setting)
	if h.EmailService != nil {
		h.EmailService.SetConfig(&h.Config.Email)
	}
	requestLog(c).Infow("smtp_settings_updated", "host", setting.Host, "enabled", setting.Enabled)
	response.Success(c, service.MaskSMTPSettingForAdmin(setting))
}

// TestSMTPSettings 用已保存的配置发一封测试邮件，无论开关是否打开
func (h *Handler) TestSMTPSettings(c *gin.Context) {
	var payload smtpTestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.CodeBadRequest, "error.email_invalid", err)
		return
	}
	setting, err := h.SettingService.GetSMTPSetting(h.Config.Email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	cfg := service.SMTPSettingToConfig(setting)
	cfg.Enabled = true

	if err := service.NewEmailService(&cfg).SendCustomEmail(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		respondServiceError(c, err, "error.email_send_failed", emailErrorRules)
		return
	}
	response.Success(c, gin.H{"sent": true, "to_email": payload.ToEmail})
}
