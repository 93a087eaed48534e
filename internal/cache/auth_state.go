package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
)

const authStateTTL = 10 * time.Minute

// 鉴权快照校验错误
var (
	ErrTokenRevoked      = errors.New("token revoked")
	ErrVendorNotVerified = errors.New("vendor not verified")
)

// UserAuthState 用户鉴权快照，改密或审核后由服务层刷新
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	UserType           string `json:"user_type"`
	IsVerified         bool   `json:"is_verified"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"` // Unix 秒，0 表示未设置
	UpdatedAt          int64  `json:"updated_at"`
}

// Admit 校验 Token 版本与签发时间，未审核供应商不放行
func (s *UserAuthState) Admit(tokenVersion uint64, issuedAt *time.Time) error {
	if tokenVersion != s.TokenVersion {
		return ErrTokenRevoked
	}
	if s.TokenInvalidBefore > 0 && (issuedAt == nil || issuedAt.Unix() < s.TokenInvalidBefore) {
		return ErrTokenRevoked
	}
	if s.UserType == constants.UserTypeVendor && !s.IsVerified {
		return ErrVendorNotVerified
	}
	return nil
}

// BuildUserAuthState 由用户行生成快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		UserType:     user.UserType,
		IsVerified:   user.IsVerified,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

func authStateKey(userID uint) string {
	return "auth:user:" + strconv.FormatUint(uint64(userID), 10)
}

// GetUserAuthState 读取快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, authStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.UserID), state, authStateTTL)
}
