package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HomepageSectionInput 首页区块输入
type HomepageSectionInput struct {
	Name        string
	Type        string
	Enabled     *bool
	SectionData models.SectionData
}

// HomepageService 首页区块服务
type HomepageService struct {
	repo      repository.HomepageRepository
	publisher events.Publisher
}

// NewHomepageService 创建首页区块服务
func NewHomepageService(repo repository.HomepageRepository, publisher events.Publisher) *HomepageService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &HomepageService{repo: repo, publisher: publisher}
}

// List 按 order_position 排序的区块
func (s *HomepageService) List() ([]models.HomepageSection, error) {
	return s.repo.List()
}

// Get 获取区块
func (s *HomepageService) Get(id uint) (*models.HomepageSection, error) {
	section, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrNotFound
	}
	return section, nil
}

// ListCollectionCategories 区块关联的分类
func (s *HomepageService) ListCollectionCategories(sectionID uint) ([]models.CollectionCategory, error) {
	return s.repo.ListCollectionCategories(sectionID)
}

// Create 创建区块，排序位置为当前未删除区块数
func (s *HomepageService) Create(ctx context.Context, input HomepageSectionInput) (*models.HomepageSection, error) {
	sectionType, data, err := normalizeSectionInput(input)
	if err != nil {
		return nil, err
	}
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	section := &models.HomepageSection{
		Name:        strings.TrimSpace(input.Name),
		Type:        sectionType,
		Enabled:     enabled,
		SectionData: datatypes.NewJSONType(data),
	}
	if section.Name == "" {
		section.Name = titleCase(sectionType)
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.Count()
		if err != nil {
			return err
		}
		section.OrderPosition = int(count)
		if err := repo.Create(section); err != nil {
			return err
		}
		return syncCollectionCategories(repo, section.ID, sectionType, data)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "insert", section.ID)
	return section, nil
}

// Update 更新区块内容，分类精选区块同步重建关联分类
func (s *HomepageService) Update(ctx context.Context, id uint, input HomepageSectionInput) (*models.HomepageSection, error) {
	section, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Type) == "" {
		input.Type = section.Type
	}
	sectionType, data, err := normalizeSectionInput(input)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		section.Name = name
	}
	if input.Enabled != nil {
		section.Enabled = *input.Enabled
	}
	previousType := section.Type
	section.Type = sectionType
	section.SectionData = datatypes.NewJSONType(data)

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(section); err != nil {
			return err
		}
		if previousType == constants.SectionTypeCategoryHighlight && sectionType != previousType {
			return repo.SoftDeleteCollectionCategories(section.ID)
		}
		return syncCollectionCategories(repo, section.ID, sectionType, data)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "update", section.ID)
	return section, nil
}

// SetEnabled 启用或停用区块
func (s *HomepageService) SetEnabled(ctx context.Context, id uint, enabled bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.SetEnabled(id, enabled); err != nil {
		return err
	}
	s.publish(ctx, "update", id)
	return nil
}

// Reorder 按给定顺序重写每个区块的 order_position，ids 必须覆盖全部未删除区块
func (s *HomepageService) Reorder(ctx context.Context, ids []uint) error {
	sections, err := s.repo.List()
	if err != nil {
		return err
	}
	if len(ids) != len(sections) {
		return fmt.Errorf("%w: got %d ids for %d sections", ErrSectionOrderInvalid, len(ids), len(sections))
	}
	live := make(map[uint]bool, len(sections))
	for _, section := range sections {
		live[section.ID] = true
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !live[id] || seen[id] {
			return fmt.Errorf("%w: id %d", ErrSectionOrderInvalid, id)
		}
		seen[id] = true
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for index, id := range ids {
			if err := repo.UpdateOrderPosition(id, index); err != nil {
				return fmt.Errorf("update order position of %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Infow("homepage_sections_reordered", "count", len(ids))
	s.publish(ctx, "update", 0)
	return nil
}

// Delete 软删除区块并级联软删除关联分类
func (s *HomepageService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.SoftDelete(id); err != nil {
			return err
		}
		return repo.SoftDeleteCollectionCategories(id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, "soft_delete", id)
	return nil
}

func (s *HomepageService) publish(ctx context.Context, action string, sectionID uint) {
	event := events.Event{
		Type:     constants.EventHomepageChanged,
		Table:    "homepage_sections",
		Action:   action,
		EntityID: sectionID,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warnw("homepage_event_publish_failed", "section_id", sectionID, "error", err)
	}
}

// syncCollectionCategories 分类精选区块：软删除旧关联后按 (条目下标, 分类) 重新写入
func syncCollectionCategories(repo repository.HomepageRepository, sectionID uint, sectionType string, data models.SectionData) error {
	if sectionType != constants.SectionTypeCategoryHighlight {
		return nil
	}
	if err := repo.SoftDeleteCollectionCategories(sectionID); err != nil {
		return err
	}
	rows := make([]models.CollectionCategory, 0)
	for index, item := range data.Items {
		for _, categoryID := range item.CategoryIDs {
			rows = append(rows, models.CollectionCategory{
				SectionID:  sectionID,
				CategoryID: categoryID,
				ItemIndex:  index,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return repo.CreateCollectionCategories(rows)
}

func normalizeSectionInput(input HomepageSectionInput) (string, models.SectionData, error) {
	sectionType := strings.ToLower(strings.TrimSpace(input.Type))
	data := input.SectionData
	data.Title = strings.TrimSpace(data.Title)
	data.Subtitle = strings.TrimSpace(data.Subtitle)
	if data.Items == nil {
		data.Items = []models.SectionItem{}
	}
	for i := range data.Items {
		item := &data.Items[i]
		item.Title = strings.TrimSpace(item.Title)
		item.Image = strings.TrimSpace(item.Image)
		item.Link = strings.TrimSpace(item.Link)
		if err := validateSectionItem(sectionType, *item); err != nil {
			return "", data, fmt.Errorf("%w: item %d", err, i)
		}
	}
	switch sectionType {
	case constants.SectionTypeHero, constants.SectionTypeFeature,
		constants.SectionTypeCollection, constants.SectionTypeCategoryHighlight:
		return sectionType, data, nil
	default:
		return "", data, ErrSectionTypeInvalid
	}
}

func validateSectionItem(sectionType string, item models.SectionItem) error {
	switch sectionType {
	case constants.SectionTypeHero:
		if item.Image == "" {
			return ErrSectionDataInvalid
		}
	case constants.SectionTypeFeature:
		if item.Title == "" {
			return ErrSectionDataInvalid
		}
	case constants.SectionTypeCollection:
		if item.Title == "" || item.Image == "" {
			return ErrSectionDataInvalid
		}
	case constants.SectionTypeCategoryHighlight:
		if len(item.CategoryIDs) == 0 {
			return ErrSectionDataInvalid
		}
	}
	return nil
}
