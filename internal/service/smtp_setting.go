package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

const defaultSMTPPort = 587

// SMTPSetting 后台保存的发信配置，字段与 config.EmailConfig 一一对应
type SMTPSetting struct {
	Enabled    bool   `json:"enabled"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	From       string `json:"from"`
	FromName   string `json:"from_name"`
	UseTLS     bool   `json:"use_tls"`
	UseSSL     bool   `json:"use_ssl"`
	AdminEmail string `json:"admin_email"`
}

// SMTPSettingPatch nil 字段保持原值；空密码也视为不修改
type SMTPSettingPatch struct {
	Enabled    *bool   `json:"enabled"`
	Host       *string `json:"host"`
	Port       *int    `json:"port"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	From       *string `json:"from"`
	FromName   *string `json:"from_name"`
	UseTLS     *bool   `json:"use_tls"`
	UseSSL     *bool   `json:"use_ssl"`
	AdminEmail *string `json:"admin_email"`
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (p SMTPSettingPatch) apply(current SMTPSetting) SMTPSetting {
	next := current
	assign(&next.Enabled, p.Enabled)
	assign(&next.Host, p.Host)
	assign(&next.Port, p.Port)
	assign(&next.Username, p.Username)
	assign(&next.From, p.From)
	assign(&next.FromName, p.FromName)
	assign(&next.UseTLS, p.UseTLS)
	assign(&next.UseSSL, p.UseSSL)
	assign(&next.AdminEmail, p.AdminEmail)
	if p.Password != nil && strings.TrimSpace(*p.Password) != "" {
		next.Password = *p.Password
	}
	return next
}

func SMTPDefaultSetting(cfg config.EmailConfig) SMTPSetting {
	return NormalizeSMTPSetting(SMTPSetting(cfg))
}

// NormalizeSMTPSetting 去除首尾空白，端口越界时取 587
func NormalizeSMTPSetting(setting SMTPSetting) SMTPSetting {
	for _, field := range []*string{&setting.Host, &setting.Username, &setting.Password, &setting.From, &setting.FromName, &setting.AdminEmail} {
		*field = strings.TrimSpace(*field)
	}
	if setting.Port <= 0 || setting.Port > 65535 {
		setting.Port = defaultSMTPPort
	}
	return setting
}

// ValidateSMTPSetting 关闭状态下只校验端口、加密方式与管理员邮箱
func ValidateSMTPSetting(setting SMTPSetting) error {
	invalid := func(reason string) error { return fmt.Errorf("%w: %s", ErrInvalidInput, reason) }
	switch {
	case setting.Port <= 0 || setting.Port > 65535:
		return invalid("smtp port must be within 1-65535")
	case setting.UseTLS && setting.UseSSL:
		return invalid("tls and ssl cannot both be enabled")
	case setting.AdminEmail != "" && !validAddress(setting.AdminEmail):
		return invalid("admin email invalid")
	case !setting.Enabled:
		return nil
	case setting.Host == "":
		return invalid("smtp host required")
	case !validAddress(setting.From):
		return invalid("sender address invalid")
	}
	return nil
}

func validAddress(raw string) bool {
	_, err := mail.ParseAddress(raw)
	return err == nil
}

func SMTPSettingToConfig(setting SMTPSetting) config.EmailConfig {
	return config.EmailConfig(NormalizeSMTPSetting(setting))
}

// SMTPSettingToMap settings 表中保存的结构，键名取 json 标签
func SMTPSettingToMap(setting SMTPSetting) map[string]interface{} {
	out := map[string]interface{}{}
	if err := decodeSettingValue(NormalizeSMTPSetting(setting), &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

// MaskSMTPSettingForAdmin 不回传密码，只告知是否已设置
func MaskSMTPSettingForAdmin(setting SMTPSetting) models.JSON {
	masked := models.JSON(SMTPSettingToMap(setting))
	masked["has_password"] = setting.Password != ""
	masked["password"] = ""
	return masked
}

// GetSMTPSetting 未保存过时以配置文件为准
func (s *SettingService) GetSMTPSetting(defaultCfg config.EmailConfig) (SMTPSetting, error) {
	fallback := SMTPDefaultSetting(defaultCfg)
	value, err := s.GetByKey(constants.SettingKeySMTPConfig)
	if err != nil || value == nil {
		return fallback, err
	}
	return NormalizeSMTPSetting(smtpSettingFromJSON(value, fallback)), nil
}

func (s *SettingService) PatchSMTPSetting(defaultCfg config.EmailConfig, patch SMTPSettingPatch) (SMTPSetting, error) {
	current, err := s.GetSMTPSetting(defaultCfg)
	if err != nil {
		return SMTPSetting{}, err
	}
	next := NormalizeSMTPSetting(patch.apply(current))
	if err := ValidateSMTPSetting(next); err != nil {
		return SMTPSetting{}, err
	}
	if _, err := s.Update(constants.SettingKeySMTPConfig, SMTPSettingToMap(next)); err != nil {
		return SMTPSetting{}, err
	}
	return next, nil
}

// smtpSettingFromJSON 存储值无法解析时整体回退
func smtpSettingFromJSON(raw models.JSON, fallback SMTPSetting) SMTPSetting {
	if raw == nil {
		return fallback
	}
	next := fallback
	if err := decodeSettingValue(map[string]interface{}(raw), &next); err != nil {
		return fallback
	}
	return next
}

// decodeSettingValue 按 json 标签在结构体与 map 之间转换，允许 "587"、"true" 这类宽松写法
func decodeSettingValue(input, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
