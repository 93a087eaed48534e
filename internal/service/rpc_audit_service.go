package service

import (
	"strings"
	"time"

	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// RPCAuditRecord doAll 审计记录输入
type RPCAuditRecord struct {
	Actor    RPCActor
	Table    string
	Action   string
	Allowed  bool
	Affected int64
	EntityID uint
	Where    map[string]interface{}
}

// RPCAuditService doAll 审计服务
type RPCAuditService struct {
	repo repository.RPCAuditLogRepository
}

// NewRPCAuditService 创建 doAll 审计服务
func NewRPCAuditService(repo repository.RPCAuditLogRepository) *RPCAuditService {
	return &RPCAuditService{repo: repo}
}

// Record 记录一次写操作或被拒绝的调用
func (s *RPCAuditService) Record(input RPCAuditRecord) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if strings.TrimSpace(input.Table) == "" || strings.TrimSpace(input.Action) == "" {
		return nil
	}
	var where models.JSON
	if len(input.Where) > 0 {
		where = models.JSON(input.Where)
	}
	return s.repo.Create(&models.RPCAuditLog{
		ActorID:   input.Actor.UserID,
		Role:      strings.TrimSpace(input.Actor.UserType),
		Target:    strings.TrimSpace(input.Table),
		Action:    strings.TrimSpace(input.Action),
		Allowed:   input.Allowed,
		Affected:  input.Affected,
		EntityID:  input.EntityID,
		Where:     where,
		RequestID: strings.TrimSpace(input.Actor.RequestID),
		CreatedAt: time.Now(),
	})
}

// List 管理端查询审计日志
func (s *RPCAuditService) List(filter repository.RPCAuditListFilter) ([]models.RPCAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.RPCAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}
