package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrJWTSecretMissing 未配置签名密钥
var ErrJWTSecretMissing = errors.New("jwt secret not configured")

// JWTClaims 会话令牌声明，token_version 与用户记录比对实现吊销
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	UserType     string `json:"user_type"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// TokenIssuer HS256 令牌签发与校验
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer expire_hours 未配置时为 24 小时
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	ttl := time.Duration(cfg.ExpireHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(strings.TrimSpace(cfg.SecretKey)), ttl: ttl, now: time.Now}
}

// Issue 为用户签发令牌，返回令牌与过期时间
func (t *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	if t == nil || len(t.secret) == 0 {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	issuedAt := t.now()
	expiresAt := issuedAt.Add(t.ttl)
	claims := JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		UserType:     user.UserType,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse 校验签名与有效期，user_id 为 0 视为无效
func (t *TokenIssuer) Parse(raw string) (*JWTClaims, error) {
	if t == nil || len(t.secret) == 0 {
		return nil, ErrJWTSecretMissing
	}
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
