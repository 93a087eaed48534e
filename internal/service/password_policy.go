package service

import (
	"unicode"

	"github.com/gemdesk/internal/config"
)

// bcrypt 只使用前 72 字节，更长的密码直接拒绝
const passwordMaxBytes = 72

// PasswordPolicyError 违反密码策略，Key 为 i18n 消息键
type PasswordPolicyError struct {
	Key  string
	Args []interface{}
}

func (e *PasswordPolicyError) Error() string { return e.Key }

// Is 所有策略错误均视为 ErrWeakPassword
func (e *PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

type passwordClasses struct {
	upper, lower, number, special bool
}

func classifyPassword(password string) passwordClasses {
	var classes passwordClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes.upper = true
		case unicode.IsLower(r):
			classes.lower = true
		case unicode.IsDigit(r):
			classes.number = true
		default:
			classes.special = true
		}
	}
	return classes
}

// validatePassword 返回第一条不满足的规则
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if len(password) > passwordMaxBytes {
		return &PasswordPolicyError{Key: "error.password_too_long", Args: []interface{}{passwordMaxBytes}}
	}
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return &PasswordPolicyError{Key: "error.password_min_length", Args: []interface{}{policy.MinLength}}
	}
	classes := classifyPassword(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, classes.upper, "error.password_require_upper"},
		{policy.RequireLower, classes.lower, "error.password_require_lower"},
		{policy.RequireNumber, classes.number, "error.password_require_number"},
		{policy.RequireSpecial, classes.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return &PasswordPolicyError{Key: rule.key}
		}
	}
	return nil
}
