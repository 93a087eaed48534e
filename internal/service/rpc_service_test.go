package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// tableRoleAuthorizer 以 role -> 可写表 的静态映射模拟授权
type tableRoleAuthorizer struct {
	writable map[string]map[string]bool
}

func (a tableRoleAuthorizer) EnforceTable(role, table, action string) (bool, error) {
	if action == constants.RPCActionGet {
		return true, nil
	}
	return a.writable[role][table], nil
}

func newRPCServiceForTest(t *testing.T) (*RPCService, *RPCAuditService, *recordingPublisher) {
	t.Helper()
	db := newServiceTestDB(t)
	publisher := &recordingPublisher{}
	audit := NewRPCAuditService(repository.NewRPCAuditLogRepository(db))
	authorizer := tableRoleAuthorizer{writable: map[string]map[string]bool{
		constants.UserTypeAdmin:  {"categories": true, "products": true, "faqs": true, "homepage_sections": true},
		constants.UserTypeVendor: {"product_variants": true},
	}}
	svc := NewRPCService(repository.NewTableRepository(db, repository.DefaultTables()), authorizer, publisher, audit)
	return svc, audit, publisher
}

func TestRPCExecuteInsertAuditsAndPublishes(t *testing.T) {
	svc, audit, publisher := newRPCServiceForTest(t)
	actor := RPCActor{UserID: 1, UserType: constants.UserTypeAdmin, RequestID: "req-1"}

	result, err := svc.Execute(context.Background(), actor, RPCRequest{
		Action: "insert",
		Table:  "categories",
		Data:   map[string]interface{}{"name": "Rings", "slug": "rings"},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if result.InsertID == 0 || result.Affected != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, err := svc.Execute(context.Background(), actor, RPCRequest{
		Action: "get",
		Table:  "categories",
		Where:  map[string]interface{}{"slug": "rings"},
	})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rows := got.Data.([]models.Category); len(rows) != 1 || rows[0].ID != result.InsertID {
		t.Fatalf("unexpected rows: %#v", got.Data)
	}

	logs, total, err := audit.List(repository.RPCAuditListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list audit failed: %v", err)
	}
	if total != 1 || !logs[0].Allowed || logs[0].Target != "categories" || logs[0].RequestID != "req-1" {
		t.Fatalf("reads must not be audited, writes must: %+v", logs)
	}
	if types := publisher.types(); len(types) != 1 || types[0] != constants.EventCatalogChanged {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestRPCExecuteForbiddenIsAudited(t *testing.T) {
	svc, audit, publisher := newRPCServiceForTest(t)
	vendor := RPCActor{UserID: 7, UserType: constants.UserTypeVendor}

	_, err := svc.Execute(context.Background(), vendor, RPCRequest{
		Action: "update",
		Table:  "categories",
		Data:   map[string]interface{}{"name": "x"},
		Where:  map[string]interface{}{"id": 1},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("vendor write should be forbidden, got %v", err)
	}
	logs, total, err := audit.List(repository.RPCAuditListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list audit failed: %v", err)
	}
	if total != 1 || logs[0].Allowed || logs[0].ActorID != 7 {
		t.Fatalf("denied call should be audited: %+v", logs)
	}
	if len(publisher.types()) != 0 {
		t.Fatalf("denied call must not publish events")
	}

	if _, err := svc.Execute(context.Background(), RPCActor{}, RPCRequest{Action: "delete", Table: "faqs", Where: map[string]interface{}{"id": 1}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("anonymous write should be forbidden, got %v", err)
	}
}

func TestRPCExecuteRejectsInvalidCalls(t *testing.T) {
	svc, _, _ := newRPCServiceForTest(t)
	admin := RPCActor{UserID: 1, UserType: constants.UserTypeAdmin}
	ctx := context.Background()

	if _, err := svc.Execute(ctx, admin, RPCRequest{Action: "get", Table: "settings"}); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("unregistered table should fail, got %v", err)
	}
	if _, err := svc.Execute(ctx, admin, RPCRequest{Action: "", Table: "faqs"}); !errors.Is(err, ErrInvalidRPCCall) {
		t.Fatalf("missing action should fail, got %v", err)
	}
	if _, err := svc.Execute(ctx, admin, RPCRequest{Action: "update", Table: "faqs", Data: map[string]interface{}{"answer": "x"}}); !errors.Is(err, ErrInvalidRPCCall) {
		t.Fatalf("update without where should fail, got %v", err)
	}
	if _, err := svc.Execute(ctx, admin, RPCRequest{Action: "soft_delete", Table: "categories", Where: map[string]interface{}{"id": 1}}); !errors.Is(err, ErrInvalidRPCCall) {
		t.Fatalf("soft delete on categories should fail, got %v", err)
	}
}

func TestRPCExecuteSoftDeleteProducts(t *testing.T) {
	svc, _, publisher := newRPCServiceForTest(t)
	admin := RPCActor{UserID: 1, UserType: constants.UserTypeAdmin}
	ctx := context.Background()

	inserted, err := svc.Execute(ctx, admin, RPCRequest{
		Action: "insert",
		Table:  "products",
		Data:   map[string]interface{}{"category_id": 1, "name": "Band", "slug": "band"},
	})
	if err != nil {
		t.Fatalf("insert product failed: %v", err)
	}
	deleted, err := svc.Execute(ctx, admin, RPCRequest{
		Action: "soft_delete",
		Table:  "products",
		Where:  map[string]interface{}{"id": inserted.InsertID},
	})
	if err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if deleted.Affected != 1 {
		t.Fatalf("affected want 1 got %d", deleted.Affected)
	}
	types := publisher.types()
	if len(types) != 2 || types[0] != constants.EventProductSaved || types[1] != constants.EventProductDeleted {
		t.Fatalf("unexpected events: %v", types)
	}
}

func TestRPCExecuteVendorDuplicateVariant(t *testing.T) {
	svc, _, _ := newRPCServiceForTest(t)
	vendor := RPCActor{UserID: 7, UserType: constants.UserTypeVendor}
	ctx := context.Background()

	req := RPCRequest{
		Action: "insert",
		Table:  "product_variants",
		Data:   map[string]interface{}{"product_id": float64(1), "metal_option_id": float64(3), "size_option_id": float64(7), "original_price": float64(5000)},
	}
	if _, err := svc.Execute(ctx, vendor, req); err != nil {
		t.Fatalf("first variant insert failed: %v", err)
	}
	if _, err := svc.Execute(ctx, vendor, req); !errors.Is(err, ErrVariantDuplicate) {
		t.Fatalf("duplicate variant should map to ErrVariantDuplicate, got %v", err)
	}
}

func TestRPCExecuteHomepageHardDeleteRejected(t *testing.T) {
	svc, _, _ := newRPCServiceForTest(t)
	admin := RPCActor{UserID: 1, UserType: constants.UserTypeAdmin}
	ctx := context.Background()

	for _, table := range []string{"homepage_sections", "collection_category"} {
		_, err := svc.Execute(ctx, admin, RPCRequest{Action: "delete", Table: table, Where: map[string]interface{}{"id": 1}})
		if !errors.Is(err, ErrInvalidRPCCall) {
			t.Fatalf("hard delete on %s should be rejected, got %v", table, err)
		}
	}
}
