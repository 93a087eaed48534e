package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/gemdesk/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireNumber: true}
	cases := []struct {
		password string
		key      string
	}{
		{password: "Gold2024", key: ""},
		{password: "Gold1", key: "error.password_min_length"},
		{password: "gold2024", key: "error.password_require_upper"},
		{password: "GoldRing", key: "error.password_require_number"},
		{password: "G1" + strings.Repeat("x", 80), key: "error.password_too_long"},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.key == "" {
			if err != nil {
				t.Fatalf("%q should pass, got %v", tc.password, err)
			}
			continue
		}
		var perr *PasswordPolicyError
		if !errors.As(err, &perr) || perr.Key != tc.key {
			t.Fatalf("%q want %s got %v", tc.password, tc.key, err)
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("policy errors should match ErrWeakPassword")
		}
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "a"); err != nil {
		t.Fatalf("empty policy should accept short passwords, got %v", err)
	}
}
