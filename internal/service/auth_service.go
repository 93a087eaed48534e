package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// LoginResult 登录成功后的会话
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// VendorRegisterInput 供应商自助注册
type VendorRegisterInput struct {
	Name         string
	Email        string
	Phone        string
	Password     string
	BusinessName string
	GSTNumber    string
}

// AuthService 登录、注册与会话状态
type AuthService struct {
	cfg    *config.Config
	users  repository.UserRepository
	tokens *TokenIssuer
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, users: users, tokens: NewTokenIssuer(cfg.JWT)}
}

// Tokens 令牌签发器，中间件用它校验请求
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// 用户不存在时也执行一次 bcrypt 比较，使响应耗时一致
var decoyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("gemdesk-decoy-password"), bcrypt.DefaultCost)
	return hash
})

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) checkPolicy(password string) error {
	if s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// Login 校验邮箱密码，未审核供应商拒绝登录
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !passwordMatches(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.UserType == constants.UserTypeVendor && !user.IsVerified {
		return nil, ErrVendorNotVerified
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	s.rememberState(ctx, user)
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// VendorRegister 创建 pending 状态的供应商，等待管理员审核
func (s *AuthService) VendorRegister(input VendorRegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	business := strings.TrimSpace(input.BusinessName)
	gstin := strings.ToUpper(strings.TrimSpace(input.GSTNumber))
	switch {
	case email == "" || business == "":
		return nil, ErrInvalidInput
	case gstin != "" && !IsValidGSTIN(gstin):
		return nil, ErrInvalidGSTIN
	}
	if err := s.checkPolicy(input.Password); err != nil {
		return nil, err
	}
	if existing, err := s.users.GetByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	vendor := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		BusinessName: business,
		GSTNumber:    gstin,
		PasswordHash: hash,
		UserType:     constants.UserTypeVendor,
		VendorStatus: constants.VendorStatusPending,
	}
	if err := s.users.Create(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetUser 按 ID 取用户，不存在返回 ErrNotFound
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ResolveAuthState 优先读缓存快照，未命中回源数据库并回填
func (s *AuthService) ResolveAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	if state, ok, err := cache.GetUserAuthState(ctx, userID); err == nil && ok && state != nil {
		return state, nil
	}
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return s.rememberState(ctx, user), nil
}

// ChangePassword 改密后 token_version 递增，已签发令牌全部失效
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if !passwordMatches(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := s.checkPolicy(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = hash
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.users.Update(user); err != nil {
		return err
	}
	s.rememberState(ctx, user)
	return nil
}

func (s *AuthService) rememberState(ctx context.Context, user *models.User) *cache.UserAuthState {
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Warnw("auth_state_cache_write_failed", "user_id", user.ID, "error", err)
	}
	return state
}
