package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(newServiceTestDB(t))
	cfg := &config.Config{
		JWT:      config.JWTConfig{SecretKey: "auth-service-test-secret", ExpireHours: 2},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8}},
	}
	return NewAuthService(cfg, users), users
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(config.JWTConfig{SecretKey: "round-trip-secret"})
	user := &models.User{ID: 7, Email: "a@gemdesk.test", UserType: constants.UserTypeAdmin, TokenVersion: 3}
	token, expiresAt, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if d := time.Until(expiresAt); d < 23*time.Hour || d > 25*time.Hour {
		t.Fatalf("default ttl should be 24h, got %s", d)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.TokenVersion != 3 || claims.UserType != constants.UserTypeAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	other := NewTokenIssuer(config.JWTConfig{SecretKey: "another-secret"})
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature should be invalid, got %v", err)
	}
	if _, err := NewTokenIssuer(config.JWTConfig{}).Parse(token); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("empty secret should be reported, got %v", err)
	}

	expired := NewTokenIssuer(config.JWTConfig{SecretKey: "round-trip-secret", ExpireHours: 1})
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Issue(user)
	if err != nil {
		t.Fatalf("issue stale failed: %v", err)
	}
	if _, err := issuer.Parse(stale); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token should be invalid, got %v", err)
	}
}

func TestVendorRegisterAndLogin(t *testing.T) {
	svc, users := newAuthServiceForTest(t)
	ctx := context.Background()

	vendor, err := svc.VendorRegister(VendorRegisterInput{
		Name:         "Ravi",
		Email:        " Ravi@Gems.test ",
		Password:     "sparkle-2024",
		BusinessName: "Ravi Gems",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if vendor.Email != "ravi@gems.test" || vendor.VendorStatus != constants.VendorStatusPending || vendor.IsVerified {
		t.Fatalf("unexpected vendor: %+v", vendor)
	}
	if _, err := svc.VendorRegister(VendorRegisterInput{Email: "ravi@gems.test", Password: "sparkle-2024", BusinessName: "x"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email should fail, got %v", err)
	}
	if _, err := svc.VendorRegister(VendorRegisterInput{Email: "b@gems.test", Password: "short", BusinessName: "x"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password should fail, got %v", err)
	}

	if _, err := svc.Login(ctx, "ravi@gems.test", "sparkle-2024"); !errors.Is(err, ErrVendorNotVerified) {
		t.Fatalf("pending vendor must not log in, got %v", err)
	}
	vendor.IsVerified = true
	if err := users.Update(vendor); err != nil {
		t.Fatalf("verify vendor failed: %v", err)
	}
	if _, err := svc.Login(ctx, "ravi@gems.test", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@gems.test", "sparkle-2024"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should fail, got %v", err)
	}
	session, err := svc.Login(ctx, "ravi@gems.test", "sparkle-2024")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" || session.User.LastLoginAt == nil {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, users := newAuthServiceForTest(t)
	ctx := context.Background()
	hash, err := hashPassword("old-password-1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := &models.User{Email: "admin@gemdesk.test", PasswordHash: hash, UserType: constants.UserTypeAdmin, IsVerified: true}
	if err := users.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, admin.ID, "not-it", "new-password-1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password should fail, got %v", err)
	}
	if err := svc.ChangePassword(ctx, admin.ID, "old-password-1", "new-password-1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	state, err := svc.ResolveAuthState(ctx, admin.ID)
	if err != nil {
		t.Fatalf("resolve state failed: %v", err)
	}
	if state.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", state.TokenVersion)
	}
	if _, err := svc.Login(ctx, "admin@gemdesk.test", "new-password-1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
