package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func TestGetUserLoginLogsFilters(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	h.LoginLogService = service.NewLoginLogService(repository.NewUserLoginLogRepository(db))
	records := []service.RecordLoginInput{
		{UserID: 1, UserType: constants.UserTypeAdmin, Email: "admin@gemdesk.test", Success: true, ClientIP: "10.0.0.1"},
		{Email: "admin@gemdesk.test", FailReason: constants.LoginFailReasonInvalidCredentials, ClientIP: "10.0.0.2"},
		{Email: "vendor@gemdesk.test", FailReason: constants.LoginFailReasonInvalidCredentials, ClientIP: "10.0.0.2"},
	}
	for _, record := range records {
		if err := h.LoginLogService.Record(record); err != nil {
			t.Fatalf("record login failed: %v", err)
		}
	}

	r := gin.New()
	r.GET("/login-logs", h.GetUserLoginLogs)
	get := func(query string) envelopeBody {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-logs"+query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("http status want 200 got %d", w.Code)
		}
		return decodeEnvelope(t, w)
	}

	body := get("?status=failed&client_ip=10.0.0.2&email=ADMIN@gemdesk.test")
	if body.StatusCode != response.CodeOK {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	var logs []struct {
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body.Data, &logs); err != nil {
		t.Fatalf("decode logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Email != "admin@gemdesk.test" || logs[0].Status != constants.LoginLogStatusFailed {
		t.Fatalf("unexpected logs: %+v", logs)
	}

	for _, bad := range []string{"?status=maybe", "?client_ip=not-an-ip", "?created_from=yesterday"} {
		if got := get(bad); got.StatusCode != response.CodeBadRequest {
			t.Fatalf("%s should be rejected, got %+v", bad, got)
		}
	}
}
