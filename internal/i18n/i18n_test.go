package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query  string
		header string
		accept string
		want   string
	}{
		{"", "", "", LocaleEN},
		{"zh", "", "", LocaleZH},
		{"", "zh-CN", "", LocaleZH},
		{"", "", "fr-FR, zh-TW;q=0.8", LocaleZH},
		{"en", "zh-CN", "", LocaleEN},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		target := "/"
		if tc.query != "" {
			target += "?lang=" + tc.query
		}
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		if tc.header != "" {
			c.Request.Header.Set("X-Locale", tc.header)
		}
		if tc.accept != "" {
			c.Request.Header.Set("Accept-Language", tc.accept)
		}
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("query=%q header=%q accept=%q want %s got %s", tc.query, tc.header, tc.accept, tc.want, got)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleZH, "error.forbidden"); got != "无权限" {
		t.Fatalf("zh translation mismatch: %s", got)
	}
	if got := T("fr-FR", "error.forbidden"); got != "Permission denied" {
		t.Fatalf("unknown locale should fall back to en, got %s", got)
	}
	if got := T(LocaleEN, "error.nope"); got != "error.nope" {
		t.Fatalf("missing key should return key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.login_too_many", 30); got != "Too many login attempts, retry in 30 seconds" {
		t.Fatalf("sprintf mismatch: %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messages[LocaleEN] {
		if _, ok := messages[LocaleZH][key]; !ok {
			t.Fatalf("zh catalog missing %s", key)
		}
	}
	for key := range messages[LocaleZH] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Fatalf("en catalog missing %s", key)
		}
	}
}
