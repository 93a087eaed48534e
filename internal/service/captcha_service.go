package service

import (
	"strings"
	"sync"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"github.com/mojocn/base64Captcha"
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 验证码服务
// 外部仅需要调用 Verify(scene, payload)，图片模式下调用 GenerateImageChallenge
type CaptchaService struct {
	mu         sync.RWMutex
	setting    CaptchaSetting
	imageStore base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(defaultConfig config.CaptchaConfig) *CaptchaService {
	s := &CaptchaService{}
	s.SetDefaultConfig(defaultConfig)
	return s
}

// SetDefaultConfig 更新配置并重建图片存储
func (s *CaptchaService) SetDefaultConfig(defaultConfig config.CaptchaConfig) {
	if s == nil {
		return
	}
	setting := CaptchaSettingFromConfig(defaultConfig)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setting = setting
	s.imageStore = base64Captcha.NewMemoryStore(setting.Image.MaxStore, time.Duration(setting.Image.ExpireSeconds)*time.Second)
}

// Setting 当前生效的验证码配置
func (s *CaptchaService) Setting() CaptchaSetting {
	return s.getSetting()
}

// GetPublicSetting 获取公开可下发配置
func (s *CaptchaService) GetPublicSetting() models.JSON {
	return PublicCaptchaSetting(s.getSetting())
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	setting := s.getSetting()
	if setting.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfig
	}

	driver := base64Captcha.NewDriverString(
		setting.Image.Height,
		setting.Image.Width,
		setting.Image.NoiseCount,
		setting.Image.ShowLine,
		setting.Image.Length,
		"23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，未启用的场景直接放行
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	setting := s.getSetting()
	if !setting.IsSceneEnabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.store().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) getSetting() CaptchaSetting {
	if s == nil {
		return CaptchaSettingFromConfig(config.CaptchaConfig{})
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setting
}

func (s *CaptchaService) store() base64Captcha.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageStore
}
