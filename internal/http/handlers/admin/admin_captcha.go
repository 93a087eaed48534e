package admin

import (
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCaptchaSettings(c *gin.Context) {
	setting, err := h.SettingService.GetCaptchaSetting(h.Config.Captcha)
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, service.CaptchaSettingToMap(setting))
}

// UpdateCaptchaSettings 保存后替换运行中的验证码配置，已发出的挑战不受影响
func (h *Handler) UpdateCaptchaSettings(c *gin.Context) {
	var patch service.CaptchaSettingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.PatchCaptchaSetting(h.Config.Captcha, patch)
	if err != nil {
		respondServiceError(c, err, "error.settings_save_failed", settingErrorRules)
		return
	}

	h.Config.Captcha = service.CaptchaSettingToConfig(setting)
	if h.CaptchaService != nil {
		h.CaptchaService.SetDefaultConfig(h.Config.Captcha)
	}
	requestLog(c).Infow("captcha_settings_updated", "provider", h.Config.Captcha.Provider, "login_scene", h.Config.Captcha.Scenes.Login)
	response.Success(c, service.CaptchaSettingToMap(setting))
}
