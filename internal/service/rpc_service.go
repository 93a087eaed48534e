package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/repository"
)

// RPCRequest doAll 请求
type RPCRequest struct {
	Action  string                 `json:"action"`
	Table   string                 `json:"table"`
	Data    map[string]interface{} `json:"data"`
	Where   map[string]interface{} `json:"where"`
	OrderBy string                 `json:"order_by"`
	Limit   int                    `json:"limit"`
}

// RPCResult doAll 执行结果
type RPCResult struct {
	Data     interface{}
	InsertID uint
	Affected int64
}

// RPCActor 调用者身份
type RPCActor struct {
	UserID    uint
	UserType  string
	RequestID string
}

// TableAuthorizer 表级权限判定
type TableAuthorizer interface {
	EnforceTable(role, table, action string) (bool, error)
}

// RPCService 通用表代理服务
type RPCService struct {
	tables     repository.TableRepository
	authorizer TableAuthorizer
	publisher  events.Publisher
	audit      *RPCAuditService
}

// NewRPCService 创建 doAll 服务
func NewRPCService(tables repository.TableRepository, authorizer TableAuthorizer, publisher events.Publisher, audit *RPCAuditService) *RPCService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &RPCService{
		tables:     tables,
		authorizer: authorizer,
		publisher:  publisher,
		audit:      audit,
	}
}

// NormalizeRPCAction 动作名大小写不敏感
func NormalizeRPCAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

// Execute 执行一次 doAll 调用
func (s *RPCService) Execute(ctx context.Context, actor RPCActor, req RPCRequest) (*RPCResult, error) {
	action := NormalizeRPCAction(req.Action)
	table := strings.TrimSpace(req.Table)
	if action == "" || table == "" {
		return nil, fmt.Errorf("%w: action and table are required", ErrInvalidRPCCall)
	}
	spec, ok := s.tables.Spec(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if !spec.Allows(action) {
		return nil, fmt.Errorf("%w: action %s not allowed on %s", ErrInvalidRPCCall, action, table)
	}
	if err := s.authorize(actor, table, action); err != nil {
		if errors.Is(err, ErrForbidden) {
			s.recordAudit(RPCAuditRecord{Actor: actor, Table: table, Action: action, Where: req.Where})
		}
		return nil, err
	}

	result := &RPCResult{}
	var err error
	switch action {
	case constants.RPCActionGet:
		result.Data, err = s.tables.Get(table, repository.TableQuery{
			Where:   req.Where,
			OrderBy: req.OrderBy,
			Limit:   req.Limit,
		})
	case constants.RPCActionInsert:
		result.InsertID, err = s.tables.Insert(table, req.Data)
		result.Affected = 1
	case constants.RPCActionUpdate:
		result.Affected, err = s.tables.Update(table, req.Where, req.Data)
	case constants.RPCActionDelete:
		result.Affected, err = s.tables.Delete(table, req.Where)
	case constants.RPCActionSoftDelete:
		result.Affected, err = s.tables.SoftDelete(table, req.Where)
	default:
		return nil, fmt.Errorf("%w: unsupported action %s", ErrInvalidRPCCall, action)
	}
	if err != nil {
		return nil, mapTableError(err)
	}

	if action != constants.RPCActionGet {
		s.recordAudit(RPCAuditRecord{
			Actor:    actor,
			Table:    table,
			Action:   action,
			Allowed:  true,
			Affected: result.Affected,
			EntityID: result.InsertID,
			Where:    req.Where,
		})
		s.afterWrite(ctx, actor, table, action, result)
	}
	return result, nil
}

func (s *RPCService) recordAudit(record RPCAuditRecord) {
	if err := s.audit.Record(record); err != nil {
		logger.Warnw("rpc_audit_record_failed", "table", record.Table, "action", record.Action, "error", err)
	}
}

func (s *RPCService) authorize(actor RPCActor, table, action string) error {
	if s.authorizer == nil {
		return nil
	}
	role := strings.TrimSpace(actor.UserType)
	if role == "" {
		return ErrForbidden
	}
	allowed, err := s.authorizer.EnforceTable(role, table, action)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: %s cannot %s %s", ErrForbidden, role, action, table)
	}
	return nil
}

func (s *RPCService) afterWrite(ctx context.Context, actor RPCActor, table, action string, result *RPCResult) {
	switch table {
	case "attributes", "attribute_options":
		if err := cache.InvalidateAttributeCatalog(ctx); err != nil {
			logger.Warnw("rpc_catalog_cache_invalidate_failed", "table", table, "error", err)
		}
	}
	eventType := eventTypeForTable(table, action)
	if eventType == "" {
		return
	}
	event := events.Event{
		Type:     eventType,
		Table:    table,
		Action:   action,
		EntityID: result.InsertID,
		ActorID:  actor.UserID,
		Payload:  map[string]interface{}{"affected": result.Affected},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warnw("rpc_event_publish_failed", "table", table, "action", action, "error", err)
	}
}

func eventTypeForTable(table, action string) string {
	switch table {
	case "products", "product_variants":
		if action == constants.RPCActionDelete || action == constants.RPCActionSoftDelete {
			return constants.EventProductDeleted
		}
		return constants.EventProductSaved
	case "homepage_sections", "collection_category":
		return constants.EventHomepageChanged
	case "attributes", "attribute_options", "categories", "category_styles", "category_metals":
		return constants.EventCatalogChanged
	default:
		return ""
	}
}

// mapTableError 将仓储层校验错误归并为无效调用
func mapTableError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUnknownTable):
		return fmt.Errorf("%w: %v", ErrUnknownTable, err)
	case errors.Is(err, repository.ErrUnknownColumn),
		errors.Is(err, repository.ErrColumnNotWritable),
		errors.Is(err, repository.ErrWhereRequired),
		errors.Is(err, repository.ErrInvalidWhere),
		errors.Is(err, repository.ErrInvalidOrderBy),
		errors.Is(err, repository.ErrEmptyData),
		errors.Is(err, repository.ErrInvalidData),
		errors.Is(err, repository.ErrSoftDeleteUnsupported):
		return fmt.Errorf("%w: %v", ErrInvalidRPCCall, err)
	case errors.Is(err, repository.ErrVariantComboExists):
		return fmt.Errorf("%w: %v", ErrVariantDuplicate, err)
	default:
		return err
	}
}
