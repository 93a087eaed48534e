package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// Service 基于 Casbin 的角色授权，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载已有策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceRole 判定用户类型能否访问路由，obj 为 gin FullPath
func (s *Service) EnforceRole(userType, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	subject, err := NormalizeRole(userType)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// EnforceTable 判定用户类型能否对表执行 doAll 动作
func (s *Service) EnforceTable(userType, table, action string) (bool, error) {
	if strings.TrimSpace(table) == "" {
		return false, ErrTableRequired
	}
	return s.EnforceRole(userType, TableObject(table), action)
}

// EnsureRole 通过锚点分组登记角色，重复调用无副作用
func (s *Service) EnsureRole(role string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if normalized == roleAnchor {
		return "", ErrReservedRole
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", normalized, roleAnchor); err != nil {
		return "", fmt.Errorf("create role %s: %w", normalized, err)
	}
	return normalized, nil
}

// ListRoles 按名称排序的全部角色
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 1, roleAnchor)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roles := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) > 0 && rule[0] != roleAnchor {
			roles = append(roles, rule[0])
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// GrantRolePolicy 校验后授予策略，角色不存在时自动登记
func (s *Service) GrantRolePolicy(role, object, action string) error {
	policy, err := NewPolicy(role, object, action)
	if err != nil {
		return err
	}
	if _, err := s.EnsureRole(policy.Subject); err != nil {
		return err
	}
	if _, err := s.enforcer.AddPolicy(policy.Subject, policy.Object, policy.Action); err != nil {
		return fmt.Errorf("grant policy: %w", err)
	}
	return nil
}

// RevokeRolePolicy 撤销策略，管理员通配策略不可撤销
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	if err := s.ready(); err != nil {
		return err
	}
	policy, err := NewPolicy(role, object, action)
	if err != nil {
		return err
	}
	if isBuiltinAdminPolicy(policy) {
		return ErrBuiltinReadonly
	}
	if _, err := s.enforcer.RemovePolicy(policy.Subject, policy.Object, policy.Action); err != nil {
		return fmt.Errorf("revoke policy: %w", err)
	}
	return nil
}

// GetRolePolicies 角色的全部策略，按资源与动作排序
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Subject: rule[0], Object: NormalizeObject(rule[1]), Action: NormalizeAction(rule[2])})
	}
	sort.Slice(policies, func(i, j int) bool {
		if policies[i].Object != policies[j].Object {
			return policies[i].Object < policies[j].Object
		}
		return policies[i].Action < policies[j].Action
	})
	return policies, nil
}
