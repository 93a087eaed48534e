package public

import (
	"github.com/gemdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 获取登录验证码配置
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	response.Success(c, h.CaptchaService.GetPublicSetting())
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_generate_failed")
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
