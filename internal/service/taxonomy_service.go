package service

import (
	"context"
	"strings"

	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TaxonomyService 分类、款式与金属/宝石维度服务
type TaxonomyService struct {
	repo       repository.CategoryRepository
	attributes *AttributeService
}

// NewTaxonomyService 创建分类服务
func NewTaxonomyService(repo repository.CategoryRepository, attributes *AttributeService) *TaxonomyService {
	return &TaxonomyService{repo: repo, attributes: attributes}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name      string
	Image     string
	SortOrder int
}

// CategoryBundle 分类配置所需的全部维度
type CategoryBundle struct {
	Category   *models.Category       `json:"category"`
	Styles     []models.CategoryStyle `json:"styles"`
	Metals     []models.CategoryMetal `json:"metals"`
	Attributes *AttributeCatalog      `json:"attributes"`
}

// ListCategories 获取分类列表
func (s *TaxonomyService) ListCategories() ([]models.Category, error) {
	return s.repo.List()
}

// GetCategory 获取分类
func (s *TaxonomyService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// CreateCategory 创建分类，slug 由名称生成且唯一
func (s *TaxonomyService) CreateCategory(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	slug := Slugify(name)
	if err := s.ensureSlugAvailable(slug, nil); err != nil {
		return nil, err
	}
	category := models.Category{
		Name:      name,
		Slug:      slug,
		Image:     strings.TrimSpace(input.Image),
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory 更新分类
func (s *TaxonomyService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	slug := Slugify(name)
	if slug != category.Slug {
		if err := s.ensureSlugAvailable(slug, &id); err != nil {
			return nil, err
		}
	}
	category.Name = name
	category.Slug = slug
	category.Image = strings.TrimSpace(input.Image)
	category.SortOrder = input.SortOrder
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类及其维度，仍有商品时拒绝
func (s *TaxonomyService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteDimensions(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
}

func (s *TaxonomyService) ensureSlugAvailable(slug string, excludeID *uint) error {
	if slug == "" {
		return ErrCategoryNameRequired
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

// ListStyles 分类下的款式
func (s *TaxonomyService) ListStyles(categoryID uint) ([]models.CategoryStyle, error) {
	return s.repo.ListStyles(categoryID)
}

// CreateStyle 新增款式
func (s *TaxonomyService) CreateStyle(categoryID uint, name string) (*models.CategoryStyle, error) {
	if _, err := s.GetCategory(categoryID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	style := &models.CategoryStyle{CategoryID: categoryID, Name: name}
	if err := s.repo.CreateStyle(style); err != nil {
		return nil, err
	}
	return style, nil
}

// RenameStyle 修改款式名称
func (s *TaxonomyService) RenameStyle(id uint, name string) (*models.CategoryStyle, error) {
	style, err := s.repo.GetStyleByID(id)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	style.Name = name
	if err := s.repo.UpdateStyle(style); err != nil {
		return nil, err
	}
	return style, nil
}

// DeleteStyle 删除款式
func (s *TaxonomyService) DeleteStyle(id uint) error {
	style, err := s.repo.GetStyleByID(id)
	if err != nil {
		return err
	}
	if style == nil {
		return ErrNotFound
	}
	return s.repo.DeleteStyle(id)
}

// ListMetals 分类下的金属/宝石
func (s *TaxonomyService) ListMetals(categoryID uint) ([]models.CategoryMetal, error) {
	return s.repo.ListMetals(categoryID)
}

// CreateMetal 新增金属/宝石
func (s *TaxonomyService) CreateMetal(categoryID uint, name string) (*models.CategoryMetal, error) {
	if _, err := s.GetCategory(categoryID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	metal := &models.CategoryMetal{CategoryID: categoryID, Name: name}
	if err := s.repo.CreateMetal(metal); err != nil {
		return nil, err
	}
	return metal, nil
}

// RenameMetal 修改金属/宝石名称
func (s *TaxonomyService) RenameMetal(id uint, name string) (*models.CategoryMetal, error) {
	metal, err := s.repo.GetMetalByID(id)
	if err != nil {
		return nil, err
	}
	if metal == nil {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	metal.Name = name
	if err := s.repo.UpdateMetal(metal); err != nil {
		return nil, err
	}
	return metal, nil
}

// DeleteMetal 删除金属/宝石
func (s *TaxonomyService) DeleteMetal(id uint) error {
	metal, err := s.repo.GetMetalByID(id)
	if err != nil {
		return err
	}
	if metal == nil {
		return ErrNotFound
	}
	return s.repo.DeleteMetal(id)
}

// CategoryBundle 并发加载款式、金属/宝石与全局属性目录
func (s *TaxonomyService) CategoryBundle(ctx context.Context, categoryID uint) (*CategoryBundle, error) {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}
	bundle := &CategoryBundle{Category: category}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		styles, err := s.repo.ListStyles(categoryID)
		if err != nil {
			return err
		}
		bundle.Styles = styles
		return nil
	})
	g.Go(func() error {
		metals, err := s.repo.ListMetals(categoryID)
		if err != nil {
			return err
		}
		bundle.Metals = metals
		return nil
	})
	g.Go(func() error {
		if s.attributes == nil {
			bundle.Attributes = &AttributeCatalog{}
			return nil
		}
		catalog, err := s.attributes.Catalog(gctx)
		if err != nil {
			return err
		}
		bundle.Attributes = catalog
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}
