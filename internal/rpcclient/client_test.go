package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := NewMemoryTokenStore()
	client, err := New(Options{BaseURL: server.URL + "/", Store: store})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client, store
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("empty base url should fail, got %v", err)
	}
}

func TestDoAllSendsBearerAndParams(t *testing.T) {
	var gotAuth string
	var gotParams Params
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doAll" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotParams); err != nil {
			t.Errorf("decode params failed: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Rings"}]}`))
	})
	if err := store.Save("tok-1", nil); err != nil {
		t.Fatalf("save token failed: %v", err)
	}

	result, err := client.DoAll(context.Background(), Params{
		Action:  "get",
		Table:   "categories",
		Where:   map[string]interface{}{"id": 1},
		OrderBy: "name ASC",
	})
	if err != nil {
		t.Fatalf("do all failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotParams.Table != "categories" || gotParams.Action != "get" || gotParams.OrderBy != "name ASC" {
		t.Fatalf("unexpected params: %+v", gotParams)
	}
	var rows []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	if err := result.Decode(&rows); err != nil {
		t.Fatalf("decode rows failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Rings" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestDoAllBusinessFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"unknown table","request_id":"rid-9"}`))
	})
	_, err := client.DoAll(context.Background(), Params{Action: "get", Table: "nope"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if remote.Message != "unknown table" || remote.RequestID != "rid-9" {
		t.Fatalf("unexpected remote error: %+v", remote)
	}
}

func TestDoAllUnauthorizedClearsToken(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"unauthorized"}`))
	})
	if err := store.Save("stale", json.RawMessage(`{"id":1}`)); err != nil {
		t.Fatalf("save token failed: %v", err)
	}
	if _, err := client.DoAll(context.Background(), Params{Action: "get", Table: "products"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	token, _ := store.Token()
	user, _ := store.User()
	if token != "" || user != nil {
		t.Fatalf("token should be cleared, got %q %s", token, user)
	}
}

func TestDoAllRequiresTableAndAction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected")
	})
	if _, err := client.DoAll(context.Background(), Params{Table: "products"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing action should fail, got %v", err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var input LoginInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		if input.Email != "admin@gemdesk.local" {
			t.Errorf("unexpected email %s", input.Email)
		}
		_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":{"token":"jwt-abc","expires_at":"2026-01-01T00:00:00Z","user":{"id":1,"user_type":"admin"}}}`))
	})
	result, err := client.Login(context.Background(), LoginInput{Email: "admin@gemdesk.local", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token != "jwt-abc" {
		t.Fatalf("unexpected token %s", result.Token)
	}
	token, _ := store.Token()
	if token != "jwt-abc" {
		t.Fatalf("token should be stored, got %q", token)
	}
}

func TestCallEnvelopeErrors(t *testing.T) {
	status := 401
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if status == 401 {
			_, _ = w.Write([]byte(`{"status_code":401,"msg":"invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status_code":409,"msg":"slug exists"}`))
	})
	_ = store.Save("tok", nil)
	if err := client.Call(context.Background(), http.MethodGet, "/api/v1/admin/categories", nil, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("envelope 401 should map to unauthorized, got %v", err)
	}
	if token, _ := store.Token(); token != "" {
		t.Fatalf("envelope 401 should clear token")
	}

	status = 409
	err := client.Call(context.Background(), http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "Rings"}, nil)
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.StatusCode != 409 {
		t.Fatalf("expected remote 409, got %v", err)
	}
}

func TestUploadImagesMultipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart failed: %v", err)
		}
		if r.FormValue("scene") != "product" {
			t.Errorf("unexpected scene %q", r.FormValue("scene"))
		}
		if got := len(r.MultipartForm.File["images"]); got != 2 {
			t.Errorf("expected 2 files, got %d", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"paths":["/uploads/product/a.png","/uploads/product/b.png"]}}`))
	})
	paths, err := client.UploadImages(context.Background(), "product", []UploadFile{
		{Name: "a.png", Content: strings.NewReader("a")},
		{Name: "dir/b.png", Content: strings.NewReader("b")},
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if len(paths) != 2 || paths[1] != "/uploads/product/b.png" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	if _, err := client.UploadImages(context.Background(), "product", nil); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("empty upload should fail, got %v", err)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileTokenStore(path)

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("missing file should read as empty, got %q %v", token, err)
	}
	if err := store.Save("tok-file", json.RawMessage(`{"id":7}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	token, err = store.Token()
	if err != nil || token != "tok-file" {
		t.Fatalf("unexpected token %q %v", token, err)
	}
	user, err := store.User()
	if err != nil || string(user) != `{"id":7}` {
		t.Fatalf("unexpected user %s %v", user, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear should be a no-op, got %v", err)
	}
	if token, _ := store.Token(); token != "" {
		t.Fatalf("token should be empty after clear")
	}
}
