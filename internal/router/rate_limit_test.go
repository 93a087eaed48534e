package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gemdesk/internal/config"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":" Admin@Gemdesk.test ","password":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.8:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "admin@gemdesk.test|10.0.0.8" {
		t.Fatalf("unexpected key %q", key)
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read restored body failed: %v", err)
	}
	if !strings.Contains(string(body), "Admin@Gemdesk.test") {
		t.Fatalf("body should be restored, got %s", body)
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":42}`))
	c.Request.RemoteAddr = "10.0.0.9:1234"
	if key := KeyByIPAndJSONField("email")(c); key != "10.0.0.9" {
		t.Fatalf("non-string field should fall back to ip, got %q", key)
	}
}

func TestKeyByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if key := KeyByUser(c); key != "" {
		t.Fatalf("anonymous request should yield empty key, got %q", key)
	}
	c.Set("user_id", uint(12))
	if key := KeyByUser(c); key != "u12" {
		t.Fatalf("want u12 got %q", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rule := NewRateLimitRule("gd:rate:rpc", config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 1}, "")
	r := gin.New()
	r.Use(RateLimitMiddleware(nil, rule, KeyByIP, rpcReject))
	r.POST("/doAll", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/doAll", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
			t.Fatalf("request %d should pass through, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestRateLimitRuleEnabled(t *testing.T) {
	if (RateLimitRule{WindowSeconds: 60}).enabled() {
		t.Fatalf("rule without max requests should be disabled")
	}
	if !NewRateLimitRule("p", config.RateLimitConfig{WindowSeconds: 60, MaxAttempts: 5, BlockSeconds: 900}, "").enabled() {
		t.Fatalf("configured rule should be enabled")
	}
}
