package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gemdesk/internal/constants"
)

// 授权相关错误
var (
	ErrUnavailable     = errors.New("authz service unavailable")
	ErrRoleRequired    = errors.New("role is required")
	ErrReservedRole    = errors.New("reserved role is not allowed")
	ErrObjectInvalid   = errors.New("policy object must be /admin/... or /tables/<name>")
	ErrActionInvalid   = errors.New("policy action invalid for object")
	ErrActionRequired  = errors.New("action is required")
	ErrTableRequired   = errors.New("table is required")
	ErrBuiltinReadonly = errors.New("builtin role policies are managed by bootstrap")
)

const (
	apiV1Prefix     = "/api/v1"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
	roleAnchor      = "role:__anchor__"
	adminObjectRoot = "/admin/"
	tableObjectRoot = "/tables/"
)

// 路由与表资源共用一套 keyMatch2 规则，动作 * 匹配全部
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 一条授权策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"` // /admin/... 或 /tables/<name>
	Action  string `json:"action"` // HTTP 方法或 doAll 动作，均为大写
}

// IsTable 是否为 doAll 表资源
func (p Policy) IsTable() bool {
	return strings.HasPrefix(p.Object, tableObjectRoot)
}

var httpActions = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true, "*": true,
}

var tableActions = map[string]bool{
	NormalizeAction(constants.RPCActionGet):        true,
	NormalizeAction(constants.RPCActionInsert):     true,
	NormalizeAction(constants.RPCActionUpdate):     true,
	NormalizeAction(constants.RPCActionDelete):     true,
	NormalizeAction(constants.RPCActionSoftDelete): true,
	"*": true,
}

// NewPolicy 归一化并校验策略，表资源只接受 doAll 动作
func NewPolicy(role, object, action string) (Policy, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return Policy{}, err
	}
	p := Policy{Subject: subject, Object: NormalizeObject(object), Action: NormalizeAction(action)}
	if p.Action == "" {
		return Policy{}, ErrActionRequired
	}
	switch {
	case p.IsTable():
		if len(p.Object) == len(tableObjectRoot) {
			return Policy{}, ErrObjectInvalid
		}
		if !tableActions[p.Action] {
			return Policy{}, fmt.Errorf("%w: %s on %s", ErrActionInvalid, p.Action, p.Object)
		}
	case strings.HasPrefix(p.Object, adminObjectRoot) || p.Object == "/admin/*":
		if !httpActions[p.Action] {
			return Policy{}, fmt.Errorf("%w: %s on %s", ErrActionInvalid, p.Action, p.Object)
		}
	default:
		return Policy{}, ErrObjectInvalid
	}
	return p, nil
}

// TableObject doAll 表资源标识
func TableObject(table string) string {
	return tableObjectRoot + strings.TrimSpace(table)
}

// NormalizeRole 统一为 role:<name>，空格转下划线
func NormalizeRole(role string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(role))
	name = strings.TrimPrefix(name, rolePrefix)
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 去掉 /api/v1 前缀并补齐前导斜杠
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	switch {
	case normalized == apiV1Prefix:
		return "/"
	case strings.HasPrefix(normalized, apiV1Prefix+"/"):
		return strings.TrimPrefix(normalized, apiV1Prefix)
	default:
		return normalized
	}
}

// NormalizeAction 动作统一为大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
