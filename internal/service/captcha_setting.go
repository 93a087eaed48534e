package service

import (
	"strings"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
)

// CaptchaImageSetting 图片验证码配置
type CaptchaImageSetting struct {
	Length        int `json:"length"`
	Width         int `json:"width"`
	Height        int `json:"height"`
	NoiseCount    int `json:"noise_count"`
	ShowLine      int `json:"show_line"`
	ExpireSeconds int `json:"expire_seconds"`
	MaxStore      int `json:"max_store"`
}

// CaptchaSetting 验证码配置实体
type CaptchaSetting struct {
	Provider string              `json:"provider"`
	Login    bool                `json:"login"`
	Image    CaptchaImageSetting `json:"image"`
}

// CaptchaSettingFromConfig 由配置文件生成验证码配置
func CaptchaSettingFromConfig(cfg config.CaptchaConfig) CaptchaSetting {
	return NormalizeCaptchaSetting(CaptchaSetting{
		Provider: cfg.Provider,
		Login:    cfg.Scenes.Login,
		Image: CaptchaImageSetting{
			Length:        cfg.Image.Length,
			Width:         cfg.Image.Width,
			Height:        cfg.Image.Height,
			NoiseCount:    cfg.Image.NoiseCount,
			ShowLine:      cfg.Image.ShowLine,
			ExpireSeconds: cfg.Image.ExpireSeconds,
			MaxStore:      cfg.Image.MaxStore,
		},
	})
}

// NormalizeCaptchaSetting 归一化验证码配置
func NormalizeCaptchaSetting(setting CaptchaSetting) CaptchaSetting {
	setting.Provider = strings.ToLower(strings.TrimSpace(setting.Provider))
	if setting.Provider != constants.CaptchaProviderImage {
		setting.Provider = constants.CaptchaProviderNone
	}
	if setting.Image.Length < 4 || setting.Image.Length > 8 {
		setting.Image.Length = 5
	}
	if setting.Image.Width < 100 || setting.Image.Width > 480 {
		setting.Image.Width = 240
	}
	if setting.Image.Height < 40 || setting.Image.Height > 160 {
		setting.Image.Height = 80
	}
	if setting.Image.NoiseCount < 0 || setting.Image.NoiseCount > 20 {
		setting.Image.NoiseCount = 2
	}
	if setting.Image.ShowLine < 0 || setting.Image.ShowLine > 20 {
		setting.Image.ShowLine = 2
	}
	if setting.Image.ExpireSeconds < 30 || setting.Image.ExpireSeconds > 3600 {
		setting.Image.ExpireSeconds = 300
	}
	if setting.Image.MaxStore < 100 || setting.Image.MaxStore > 100000 {
		setting.Image.MaxStore = 10240
	}
	return setting
}

// IsSceneEnabled 判断场景是否需要验证码
func (s CaptchaSetting) IsSceneEnabled(scene string) bool {
	if s.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scene)) {
	case constants.CaptchaSceneLogin:
		return s.Login
	default:
		return false
	}
}

// PublicCaptchaSetting 可下发给前端的验证码配置
func PublicCaptchaSetting(setting CaptchaSetting) models.JSON {
	return models.JSON{
		"provider": setting.Provider,
		"scenes": map[string]interface{}{
			"login": setting.Login,
		},
	}
}

// CaptchaSettingPatch 验证码配置补丁（支持部分更新）
type CaptchaSettingPatch struct {
	Provider *string              `json:"provider"`
	Login    *bool                `json:"login"`
	Image    *CaptchaImageSetting `json:"image"`
}

// CaptchaSettingToConfig 转换为运行时配置
func CaptchaSettingToConfig(setting CaptchaSetting) config.CaptchaConfig {
	normalized := NormalizeCaptchaSetting(setting)
	return config.CaptchaConfig{
		Provider: normalized.Provider,
		Scenes:   config.CaptchaSceneConfig{Login: normalized.Login},
		Image: config.CaptchaImageConfig{
			Length:        normalized.Image.Length,
			Width:         normalized.Image.Width,
			Height:        normalized.Image.Height,
			NoiseCount:    normalized.Image.NoiseCount,
			ShowLine:      normalized.Image.ShowLine,
			ExpireSeconds: normalized.Image.ExpireSeconds,
			MaxStore:      normalized.Image.MaxStore,
		},
	}
}

// CaptchaSettingToMap 转换为 settings 表结构
func CaptchaSettingToMap(setting CaptchaSetting) map[string]interface{} {
	normalized := NormalizeCaptchaSetting(setting)
	return map[string]interface{}{
		"provider": normalized.Provider,
		"login":    normalized.Login,
		"image": map[string]interface{}{
			"length":         normalized.Image.Length,
			"width":          normalized.Image.Width,
			"height":         normalized.Image.Height,
			"noise_count":    normalized.Image.NoiseCount,
			"show_line":      normalized.Image.ShowLine,
			"expire_seconds": normalized.Image.ExpireSeconds,
			"max_store":      normalized.Image.MaxStore,
		},
	}
}

// GetCaptchaSetting 获取验证码设置（优先 settings，空时回退配置文件）
func (s *SettingService) GetCaptchaSetting(defaultCfg config.CaptchaConfig) (CaptchaSetting, error) {
	fallback := CaptchaSettingFromConfig(defaultCfg)
	value, err := s.GetByKey(constants.SettingKeyCaptchaConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return captchaSettingFromJSON(value, fallback), nil
}

// PatchCaptchaSetting 基于补丁更新验证码设置
func (s *SettingService) PatchCaptchaSetting(defaultCfg config.CaptchaConfig, patch CaptchaSettingPatch) (CaptchaSetting, error) {
	current, err := s.GetCaptchaSetting(defaultCfg)
	if err != nil {
		return CaptchaSetting{}, err
	}
	next := current
	if patch.Provider != nil {
		provider := strings.ToLower(strings.TrimSpace(*patch.Provider))
		if provider != constants.CaptchaProviderNone && provider != constants.CaptchaProviderImage {
			return CaptchaSetting{}, ErrCaptchaConfig
		}
		next.Provider = provider
	}
	if patch.Login != nil {
		next.Login = *patch.Login
	}
	if patch.Image != nil {
		next.Image = *patch.Image
	}
	normalized := NormalizeCaptchaSetting(next)
	if _, err := s.Update(constants.SettingKeyCaptchaConfig, CaptchaSettingToMap(normalized)); err != nil {
		return CaptchaSetting{}, err
	}
	return normalized, nil
}

func captchaSettingFromJSON(raw models.JSON, fallback CaptchaSetting) CaptchaSetting {
	next := fallback
	next.Provider = readString(raw, "provider", next.Provider)
	next.Login = readBool(raw, "login", next.Login)
	if image := toStringAnyMap(raw["image"]); image != nil {
		next.Image.Length = readInt(image, "length", next.Image.Length)
		next.Image.Width = readInt(image, "width", next.Image.Width)
		next.Image.Height = readInt(image, "height", next.Image.Height)
		next.Image.NoiseCount = readInt(image, "noise_count", next.Image.NoiseCount)
		next.Image.ShowLine = readInt(image, "show_line", next.Image.ShowLine)
		next.Image.ExpireSeconds = readInt(image, "expire_seconds", next.Image.ExpireSeconds)
		next.Image.MaxStore = readInt(image, "max_store", next.Image.MaxStore)
	}
	return NormalizeCaptchaSetting(next)
}
