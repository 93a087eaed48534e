package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttributeTypes 支持的属性类型（固定顺序）
var AttributeTypes = []string{
	constants.AttributeTypeMetal,
	constants.AttributeTypeDiamond,
	constants.AttributeTypeSize,
}

// AttributeFamily 单个属性族及其选项
type AttributeFamily struct {
	AttributeID uint                     `json:"attribute_id"`
	Type        string                   `json:"type"`
	Name        string                   `json:"name"`
	Options     []models.AttributeOption `json:"options"`
}

// AttributeCatalog 全局属性目录
type AttributeCatalog struct {
	Metal   AttributeFamily `json:"metal"`
	Diamond AttributeFamily `json:"diamond"`
	Size    AttributeFamily `json:"size"`
}

// Family 按类型取属性族
func (c *AttributeCatalog) Family(attrType string) *AttributeFamily {
	switch attrType {
	case constants.AttributeTypeMetal:
		return &c.Metal
	case constants.AttributeTypeDiamond:
		return &c.Diamond
	case constants.AttributeTypeSize:
		return &c.Size
	default:
		return nil
	}
}

// AttributeOptionInput 属性选项输入
type AttributeOptionInput struct {
	Type   string
	Name   string
	SizeMM *decimal.Decimal
}

// AttributeService 属性目录服务
type AttributeService struct {
	repo      repository.AttributeRepository
	publisher events.Publisher
	cacheTTL  time.Duration
}

// NewAttributeService 创建属性服务
func NewAttributeService(repo repository.AttributeRepository, publisher events.Publisher, cacheTTL time.Duration) *AttributeService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &AttributeService{repo: repo, publisher: publisher, cacheTTL: cacheTTL}
}

// Catalog 返回三类属性及其选项，优先读取缓存
func (s *AttributeService) Catalog(ctx context.Context) (*AttributeCatalog, error) {
	catalog, err := cache.RememberAttributeCatalog(ctx, s.cacheTTL, s.loadCatalog)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *AttributeService) loadCatalog() (*AttributeCatalog, error) {
	attributes, err := s.repo.ListAttributes()
	if err != nil {
		return nil, err
	}
	options, err := s.repo.ListOptions()
	if err != nil {
		return nil, err
	}

	catalog := &AttributeCatalog{}
	byID := make(map[uint]*AttributeFamily, len(attributes))
	for _, attrType := range AttributeTypes {
		family := catalog.Family(attrType)
		family.Type = attrType
		family.Name = titleCase(attrType)
		family.Options = []models.AttributeOption{}
	}
	for _, attribute := range attributes {
		family := catalog.Family(attribute.Type)
		if family == nil {
			continue
		}
		family.AttributeID = attribute.ID
		family.Name = attribute.Name
		byID[attribute.ID] = family
	}
	for _, option := range options {
		if family, ok := byID[option.AttributeID]; ok {
			family.Options = append(family.Options, option)
		}
	}
	return catalog, nil
}

// AddOption 新增属性选项，属性行不存在时惰性创建
func (s *AttributeService) AddOption(ctx context.Context, input AttributeOptionInput) (*models.AttributeOption, error) {
	attrType := strings.ToLower(strings.TrimSpace(input.Type))
	if !isAttributeType(attrType) {
		return nil, ErrAttributeTypeInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrOptionNameRequired
	}
	sizeMM, err := validateSizeMM(attrType, input.SizeMM)
	if err != nil {
		return nil, err
	}

	option := &models.AttributeOption{
		OptionName:  name,
		OptionValue: Slugify(name),
		SizeMM:      sizeMM,
	}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		attribute, err := repo.GetAttributeByType(attrType)
		if err != nil {
			return err
		}
		if attribute == nil {
			attribute = &models.Attribute{Type: attrType, Name: titleCase(attrType)}
			if err := repo.CreateAttribute(attribute); err != nil {
				return fmt.Errorf("create attribute %s: %w", attrType, err)
			}
		}
		option.AttributeID = attribute.ID
		return repo.CreateOption(option)
	})
	if err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "insert", option.ID)
	return option, nil
}

// UpdateOption 修改选项名称与尺寸，option_value 保持不变
func (s *AttributeService) UpdateOption(ctx context.Context, id uint, name string, sizeMM *decimal.Decimal) (*models.AttributeOption, error) {
	option, err := s.repo.GetOptionByID(id)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrNotFound
	}
	attribute, err := s.repo.GetAttributeByID(option.AttributeID)
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOptionNameRequired
	}
	normalized, err := validateSizeMM(attribute.Type, sizeMM)
	if err != nil {
		return nil, err
	}
	option.OptionName = name
	option.SizeMM = normalized
	if err := s.repo.UpdateOption(option); err != nil {
		return nil, err
	}
	s.catalogChanged(ctx, "update", option.ID)
	return option, nil
}

// DeleteOption 删除选项，被变体引用时拒绝
func (s *AttributeService) DeleteOption(ctx context.Context, id uint) error {
	option, err := s.repo.GetOptionByID(id)
	if err != nil {
		return err
	}
	if option == nil {
		return ErrNotFound
	}
	used, err := s.repo.CountVariantsUsingOption(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrAttributeOptionInUse
	}
	if err := s.repo.DeleteOption(id); err != nil {
		return err
	}
	s.catalogChanged(ctx, "delete", id)
	return nil
}

func (s *AttributeService) catalogChanged(ctx context.Context, action string, optionID uint) {
	if err := cache.InvalidateAttributeCatalog(ctx); err != nil {
		logger.Warnw("attribute_catalog_cache_invalidate_failed", "error", err)
	}
	event := events.Event{
		Type:     constants.EventCatalogChanged,
		Table:    "attribute_options",
		Action:   action,
		EntityID: optionID,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warnw("attribute_catalog_event_publish_failed", "option_id", optionID, "error", err)
	}
}

func isAttributeType(attrType string) bool {
	for _, item := range AttributeTypes {
		if item == attrType {
			return true
		}
	}
	return false
}

// validateSizeMM size 类型必须提供正数毫米值，其他类型不允许
func validateSizeMM(attrType string, sizeMM *decimal.Decimal) (decimal.NullDecimal, error) {
	if attrType != constants.AttributeTypeSize {
		if sizeMM != nil {
			return decimal.NullDecimal{}, ErrSizeMMNotAllowed
		}
		return decimal.NullDecimal{}, nil
	}
	if sizeMM == nil || !sizeMM.IsPositive() {
		return decimal.NullDecimal{}, ErrSizeMMRequired
	}
	return decimal.NullDecimal{Decimal: sizeMM.Round(2), Valid: true}, nil
}
