package service

import (
	"errors"
	"testing"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestNormalizeSMTPSetting(t *testing.T) {
	setting := NormalizeSMTPSetting(SMTPSetting{Host: "  smtp.example.com "})
	if setting.Port != 587 {
		t.Fatalf("expected default port 587, got %d", setting.Port)
	}
	if setting.Host != "smtp.example.com" {
		t.Fatalf("expected trimmed host, got %q", setting.Host)
	}
}

func TestValidateSMTPSetting(t *testing.T) {
	invalid := NormalizeSMTPSetting(SMTPSetting{
		Enabled: true,
		Host:    "smtp.example.com",
		From:    "notify@example.com",
		UseTLS:  true,
		UseSSL:  true,
	})
	if err := ValidateSMTPSetting(invalid); err == nil {
		t.Fatal("expected tls/ssl conflict validation error")
	}

	valid := NormalizeSMTPSetting(SMTPSetting{
		Enabled:    true,
		Host:       "smtp.example.com",
		Port:       587,
		From:       "notify@example.com",
		UseTLS:     true,
		Password:   "secret",
		AdminEmail: "ops@example.com",
	})
	if err := ValidateSMTPSetting(valid); err != nil {
		t.Fatalf("expected valid smtp config, got error: %v", err)
	}
}

func TestPatchSMTPSettingKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	defaultCfg := config.EmailConfig{
		Enabled:  true,
		Host:     "smtp.default.com",
		Port:     587,
		Username: "default-user",
		Password: "default-secret",
		From:     "default@example.com",
		FromName: "Default",
		UseTLS:   true,
	}

	updated, err := svc.PatchSMTPSetting(defaultCfg, SMTPSettingPatch{
		Host:     ptrString("smtp.custom.com"),
		Password: ptrString(""),
	})
	if err != nil {
		t.Fatalf("patch smtp setting failed: %v", err)
	}
	if updated.Password != "default-secret" {
		t.Fatalf("expected password keep default-secret, got %q", updated.Password)
	}
	saved, ok := repo.store[constants.SettingKeySMTPConfig]
	if !ok {
		t.Fatalf("smtp setting was not saved")
	}
	if saved["password"] != "default-secret" || saved["host"] != "smtp.custom.com" {
		t.Fatalf("unexpected saved smtp setting: %+v", saved)
	}
}

func TestIsValidGSTIN(t *testing.T) {
	cases := map[string]bool{
		"27AAPFU0939F1ZV": true,
		"27aapfu0939f1zv": true,
		"27AAPFU0939F1Z":  false,
		"AAAPFU0939F1ZVX": false,
		"27AAPFU0939F0ZV": false,
		"":                false,
	}
	for input, want := range cases {
		if got := IsValidGSTIN(input); got != want {
			t.Fatalf("IsValidGSTIN(%q) want %v got %v", input, want, got)
		}
	}
}

func TestPatchInvoiceSetting(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	current, err := svc.GetInvoiceSetting()
	if err != nil {
		t.Fatalf("get default invoice setting failed: %v", err)
	}
	if current.GSTRate != 3 || current.InvoicePrefix != "INV" {
		t.Fatalf("unexpected defaults: %+v", current)
	}

	rate := 12.0
	updated, err := svc.PatchInvoiceSetting(InvoiceSettingPatch{
		CompanyName: ptrString(" Gem Desk Pvt Ltd "),
		GSTIN:       ptrString("27aapfu0939f1zv"),
		GSTRate:     &rate,
	})
	if err != nil {
		t.Fatalf("patch invoice setting failed: %v", err)
	}
	if updated.GSTIN != "27AAPFU0939F1ZV" || updated.StateCode != "27" || updated.CompanyName != "Gem Desk Pvt Ltd" {
		t.Fatalf("unexpected normalized setting: %+v", updated)
	}

	reloaded, err := svc.GetInvoiceSetting()
	if err != nil {
		t.Fatalf("reload invoice setting failed: %v", err)
	}
	if reloaded.GSTRate != 12 || reloaded.GSTIN != "27AAPFU0939F1ZV" {
		t.Fatalf("unexpected reloaded setting: %+v", reloaded)
	}
}

func TestPatchInvoiceSettingRejectsInvalidValues(t *testing.T) {
	svc := NewSettingService(newMockSettingRepo())

	if _, err := svc.PatchInvoiceSetting(InvoiceSettingPatch{GSTIN: ptrString("INVALID")}); !errors.Is(err, ErrInvalidGSTIN) {
		t.Fatalf("expected ErrInvalidGSTIN, got %v", err)
	}
	rate := 30.0
	if _, err := svc.PatchInvoiceSetting(InvoiceSettingPatch{GSTRate: &rate}); !errors.Is(err, ErrInvalidGSTRate) {
		t.Fatalf("expected ErrInvalidGSTRate, got %v", err)
	}
}

func ptrString(value string) *string {
	return &value
}

func TestSettingValueReaders(t *testing.T) {
	source := map[string]interface{}{
		"count":   " 42 ",
		"ratio":   "0.25",
		"float":   float64(7.9),
		"on":      "on",
		"numeric": "1",
		"null":    nil,
		"name":    "  gemdesk ",
	}
	if got := readInt(source, "count", -1); got != 42 {
		t.Fatalf("readInt trimmed string want 42 got %d", got)
	}
	if got := readInt(source, "float", -1); got != 7 {
		t.Fatalf("readInt float should truncate, got %d", got)
	}
	if got := readInt(source, "null", -1); got != -1 {
		t.Fatalf("readInt null should fall back, got %d", got)
	}
	if got := readInt(source, "name", -1); got != -1 {
		t.Fatalf("readInt text should fall back, got %d", got)
	}
	if got := readFloat(source, "ratio", 0); got != 0.25 {
		t.Fatalf("readFloat want 0.25 got %v", got)
	}
	if !readBool(source, "on", false) || !readBool(source, "numeric", false) || readBool(source, "null", false) {
		t.Fatalf("readBool conversions mismatch")
	}
	if got := readString(source, "name", ""); got != "gemdesk" {
		t.Fatalf("readString want trimmed value got %q", got)
	}
}

func TestSMTPSettingFromStoredJSON(t *testing.T) {
	fallback := SMTPDefaultSetting(config.EmailConfig{Host: "smtp.default.com", Port: 587, From: "a@example.com"})

	stored := models.JSON{"host": " smtp.stored.com ", "port": float64(2525), "use_ssl": "true", "from_name": "Gemdesk"}
	got := NormalizeSMTPSetting(smtpSettingFromJSON(stored, fallback))
	if got.Host != "smtp.stored.com" || got.Port != 2525 || !got.UseSSL || got.FromName != "Gemdesk" || got.From != "a@example.com" {
		t.Fatalf("unexpected decoded setting: %+v", got)
	}

	if broken := smtpSettingFromJSON(models.JSON{"port": "not-a-port"}, fallback); broken != fallback {
		t.Fatalf("undecodable value should fall back, got %+v", broken)
	}

	asMap := SMTPSettingToMap(got)
	if asMap["host"] != "smtp.stored.com" || asMap["port"] != 2525 || asMap["use_ssl"] != true {
		t.Fatalf("unexpected map: %+v", asMap)
	}
}
