package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest map[string]int
	if hit, err := GetJSON(ctx, "k", &dest); err != nil || hit {
		t.Fatalf("disabled cache should miss, hit=%v err=%v", hit, err)
	}
	if err := InvalidateAttributeCatalog(ctx); err != nil {
		t.Fatalf("invalidate on disabled cache should be noop: %v", err)
	}
}

func TestRememberCallsLoaderOnMiss(t *testing.T) {
	ctx := context.Background()
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"gold", "silver"}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := RememberAttributeCatalog(ctx, 0, load)
		if err != nil || len(got) != 2 {
			t.Fatalf("unexpected result %v err=%v", got, err)
		}
	}
	if calls != 2 {
		t.Fatalf("disabled cache should load every time, calls=%d", calls)
	}

	boom := errors.New("db down")
	if _, err := Remember(ctx, "x", time.Minute, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("loader error should propagate, got %v", err)
	}
}

func TestUserAuthStateAdmit(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{
		ID:                 5,
		UserType:           "vendor",
		IsVerified:         true,
		TokenVersion:       3,
		TokenInvalidBefore: &invalidBefore,
	})
	if state.UserID != 5 || state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected state: %+v", state)
	}

	fresh := invalidBefore.Add(time.Minute)
	stale := invalidBefore.Add(-time.Minute)
	if err := state.Admit(3, &fresh); err != nil {
		t.Fatalf("fresh token should be admitted: %v", err)
	}
	if err := state.Admit(2, &fresh); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("old version should be revoked, got %v", err)
	}
	if err := state.Admit(3, &stale); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("token issued before cutoff should be revoked, got %v", err)
	}
	if err := state.Admit(3, nil); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("missing iat should be revoked when cutoff set, got %v", err)
	}

	state.IsVerified = false
	if err := state.Admit(3, &fresh); !errors.Is(err, ErrVendorNotVerified) {
		t.Fatalf("unverified vendor should be rejected, got %v", err)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should build nil state")
	}
}

func TestStoreKeyUsesPrefix(t *testing.T) {
	s := &store{prefix: "gd"}
	if got := s.key("catalog:attributes"); got != "gd:catalog:attributes" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := s.key("  "); got != "gd" {
		t.Fatalf("blank key should map to prefix, got %s", got)
	}
}

func TestInitRedisUnreachableStaysDisabled(t *testing.T) {
	err := InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	if err == nil {
		t.Fatalf("expected ping error for closed port")
	}
	if Enabled() {
		t.Fatalf("cache must stay disabled after failed ping")
	}
	if err := Close(); err != nil {
		t.Fatalf("close on disabled cache should be noop: %v", err)
	}
}
