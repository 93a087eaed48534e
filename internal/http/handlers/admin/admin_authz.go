package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gemdesk/internal/authz"
	handlershared "github.com/gemdesk/internal/http/handlers/shared"
	"github.com/gemdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"` // /admin/... 或 /tables/<name>
	Action string `json:"action" binding:"required"`
}

var authzErrorRules = []mappedHandlerError{
	{target: authz.ErrRoleRequired, code: response.CodeBadRequest, key: "error.authz_role_invalid"},
	{target: authz.ErrReservedRole, code: response.CodeBadRequest, key: "error.authz_role_invalid"},
	{target: authz.ErrObjectInvalid, code: response.CodeBadRequest, key: "error.authz_policy_invalid"},
	{target: authz.ErrActionInvalid, code: response.CodeBadRequest, key: "error.authz_policy_invalid"},
	{target: authz.ErrActionRequired, code: response.CodeBadRequest, key: "error.authz_policy_invalid"},
	{target: authz.ErrBuiltinReadonly, code: response.CodeForbidden, key: "error.authz_builtin_readonly"},
}

// GetAuthzMe 当前用户类型的策略快照，前端据此隐藏菜单
func (h *Handler) GetAuthzMe(c *gin.Context) {
	actor := handlershared.ActorFrom(c)
	if actor.UserID == 0 {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(actor.UserType)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":   actor.UserID,
		"user_type": actor.UserType,
		"is_admin":  actor.IsAdmin(),
		"policies":  policies,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 登记角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		h.respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("admin_authz_role_created", "operator_id", currentUserID(c), "role", role)
	response.Success(c, gin.H{"role": role})
}

// GetAuthzRolePolicies 角色策略，路径参数可为 vendor 或 role%3Avendor
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, err := url.PathUnescape(c.Param("role"))
	if err != nil {
		role = c.Param("role")
	}
	policies, err := h.AuthzService.GetRolePolicies(strings.TrimSpace(role))
	if err != nil {
		h.respondAuthzError(c, err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "admin_authz_policy_granted", h.AuthzService.GrantRolePolicy)
}

// RevokeAuthzPolicy 撤销策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, "admin_authz_policy_revoked", h.AuthzService.RevokeRolePolicy)
}

func (h *Handler) changeAuthzPolicy(c *gin.Context, event string, apply func(role, object, action string) error) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := apply(req.Role, req.Object, req.Action); err != nil {
		h.respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow(event,
		"operator_id", currentUserID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

func (h *Handler) respondAuthzError(c *gin.Context, err error) {
	for _, rule := range authzErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
}
