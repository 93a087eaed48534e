package authz

import (
	"fmt"

	"github.com/gemdesk/internal/constants"
)

// RoleSeed 预置角色及其策略
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// 供应商可读的目录表
var vendorReadableTables = []string{
	"attributes",
	"attribute_options",
	"categories",
	"category_styles",
	"category_metals",
	"products",
	"product_variants",
}

// 供应商可写的商品表
var vendorWritableTables = []string{"products", "product_variants"}

var vendorRoutes = []Policy{
	{Object: "/admin/attributes", Action: "GET"},
	{Object: "/admin/categories", Action: "GET"},
	{Object: "/admin/categories/:id/bundle", Action: "GET"},
	{Object: "/admin/products", Action: "GET"},
	{Object: "/admin/products", Action: "POST"},
	{Object: "/admin/products/:id", Action: "GET"},
	{Object: "/admin/products/:id", Action: "PUT"},
	{Object: "/admin/upload-images", Action: "POST"},
}

var adminWildcards = []Policy{
	{Object: "/admin/*", Action: "*"},
	{Object: tableObjectRoot + "*", Action: "*"},
}

// BuiltinRoleSeeds admin 拥有全部路由与表，vendor 仅能维护商品
func BuiltinRoleSeeds() []RoleSeed {
	vendor := append([]Policy{}, vendorRoutes...)
	for _, table := range vendorReadableTables {
		vendor = append(vendor, Policy{Object: TableObject(table), Action: constants.RPCActionGet})
	}
	for _, table := range vendorWritableTables {
		vendor = append(vendor,
			Policy{Object: TableObject(table), Action: constants.RPCActionInsert},
			Policy{Object: TableObject(table), Action: constants.RPCActionUpdate},
		)
	}
	return []RoleSeed{
		{Role: constants.UserTypeAdmin, Policies: adminWildcards},
		{Role: constants.UserTypeVendor, Policies: vendor},
	}
}

// BootstrapBuiltinRoles 补齐预置策略，后台追加的策略保持不变
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		for _, item := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, item.Object, item.Action); err != nil {
				return fmt.Errorf("bootstrap %s %s %s: %w", seed.Role, item.Action, item.Object, err)
			}
		}
	}
	return nil
}

func isBuiltinAdminPolicy(p Policy) bool {
	if p.Subject != rolePrefix+constants.UserTypeAdmin {
		return false
	}
	for _, item := range adminWildcards {
		if item.Object == p.Object && NormalizeAction(item.Action) == p.Action {
			return true
		}
	}
	return false
}
