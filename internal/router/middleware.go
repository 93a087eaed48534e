package router

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gemdesk/internal/authz"
	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// TokenParser 解析并校验会话令牌
type TokenParser interface {
	Parse(raw string) (*service.JWTClaims, error)
}

// AuthStateResolver 读取用户鉴权快照
type AuthStateResolver interface {
	ResolveAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error)
}

// UnauthorizedResponder 鉴权失败时的响应方式
type UnauthorizedResponder func(c *gin.Context, msg string)

// EnvelopeUnauthorized 以统一响应结构返回 401
func EnvelopeUnauthorized(c *gin.Context, msg string) {
	response.Unauthorized(c, msg)
}

// RPCUnauthorized doAll 鉴权失败返回 HTTP 401
func RPCUnauthorized(c *gin.Context, msg string) {
	response.RPCUnauthorized(c, msg)
}

// JWTAuthMiddleware 校验 Bearer 令牌并比对用户鉴权快照
func JWTAuthMiddleware(tokens TokenParser, states AuthStateResolver, respond UnauthorizedResponder) gin.HandlerFunc {
	if respond == nil {
		respond = EnvelopeUnauthorized
	}
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)
		if tokens == nil || states == nil {
			respond(c, i18n.T(locale, "error.jwt_secret_missing"))
			return
		}
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			key := "error.auth_header_invalid"
			if c.GetHeader("Authorization") == "" {
				key = "error.auth_header_missing"
			}
			respond(c, i18n.T(locale, key))
			return
		}
		claims, err := tokens.Parse(raw)
		if errors.Is(err, service.ErrJWTSecretMissing) {
			respond(c, i18n.T(locale, "error.jwt_secret_missing"))
			return
		}
		if err != nil {
			respond(c, i18n.T(locale, "error.token_invalid"))
			return
		}

		state, err := states.ResolveAuthState(c.Request.Context(), claims.UserID)
		if err != nil || state == nil {
			respond(c, i18n.T(locale, "error.token_invalid"))
			return
		}
		var issuedAt *time.Time
		if claims.IssuedAt != nil {
			issuedAt = &claims.IssuedAt.Time
		}
		switch err := state.Admit(claims.TokenVersion, issuedAt); {
		case errors.Is(err, cache.ErrVendorNotVerified):
			respond(c, i18n.T(locale, "error.vendor_not_verified"))
			return
		case err != nil:
			respond(c, i18n.T(locale, "error.token_revoked"))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_type", state.UserType)
		c.Next()
	}
}

// RoleEnforcer 按 role:<user_type> 判定路由权限
type RoleEnforcer interface {
	EnforceRole(userType, obj, act string) (bool, error)
}

// RBACMiddleware 资源取路由模板，例如 /api/v1/admin/orders/:id
func RBACMiddleware(enforcer RoleEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)
		userType := c.GetString("user_type")
		if enforcer == nil || userType == "" {
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			return
		}
		resource := strings.TrimSpace(c.FullPath())
		if resource == "" {
			resource = c.Request.URL.Path
		}
		log := logger.SW("user_type", userType, "method", c.Request.Method, "path", c.Request.URL.Path)

		allowed, err := enforcer.EnforceRole(userType, resource, c.Request.Method)
		switch {
		case err != nil:
			log.Errorw("rbac_enforce_failed", "error", err)
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
		case !allowed:
			log.Warnw("rbac_permission_denied", "user_id", c.GetUint("user_id"), "resource", authz.NormalizeObject(resource))
			response.Forbidden(c, i18n.T(locale, "error.forbidden"))
		default:
			c.Next()
		}
	}
}

// bearerToken 取出 "Bearer <token>" 中的令牌，scheme 不区分大小写
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
