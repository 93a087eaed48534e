package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/variantkey"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	attrRepo     repository.AttributeRepository
	publisher    events.Publisher
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, attrRepo repository.AttributeRepository, publisher events.Publisher) *ProductService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		attrRepo:     attrRepo,
		publisher:    publisher,
	}
}

// ProductInput 创建商品输入
type ProductInput struct {
	CategoryID    uint
	Name          string
	Description   string
	Price         models.Money
	OriginalPrice models.Money
	Discount      decimal.Decimal
	StyleID       *uint
	MetalID       *uint
	Featured      []string
	Gender        []string
	Images        []string
}

// VariantInput 变体输入
type VariantInput struct {
	MetalOptionID      *uint
	DiamondOptionID    *uint
	SizeOptionID       uint
	OriginalPrice      models.Money
	DiscountPrice      *models.Money
	DiscountPercentage *decimal.Decimal
	FileTypes          []string
}

// Key 变体组合键
func (v VariantInput) Key() variantkey.Key {
	return variantkey.Key{Metal: v.MetalOptionID, Diamond: v.DiamondOptionID, Size: v.SizeOptionID}
}

// ProductDetailsPatch 商品详情可编辑字段
type ProductDetailsPatch struct {
	Name          *string
	Price         *models.Money
	OriginalPrice *models.Money
	Discount      *decimal.Decimal
	Featured      *[]string
	Gender        *[]string
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 商品详情（含变体）
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListVariants 变体只读列表
func (s *ProductService) ListVariants(productID uint) ([]models.ProductVariant, error) {
	if _, err := s.Get(productID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(productID)
}

// CreateWithVariants 在同一事务中创建商品与全部变体
func (s *ProductService) CreateWithVariants(ctx context.Context, input ProductInput, variants []VariantInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if input.Price.IsNegative() || input.OriginalPrice.IsNegative() {
		return nil, ErrProductPriceInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, input.CategoryID)
	}
	rows, err := s.buildVariants(variants)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID: input.CategoryID,
		Name:       name,
		Slug:       Slugify(name),
		ProductDetails: datatypes.NewJSONType(models.ProductDetails{
			Description:   strings.TrimSpace(input.Description),
			Price:         input.Price,
			OriginalPrice: input.OriginalPrice,
			Discount:      input.Discount,
			StyleID:       input.StyleID,
			MetalID:       input.MetalID,
			Featured:      normalizeStringList(input.Featured),
			Gender:        normalizeStringList(input.Gender),
			Images:        normalizeStringList(input.Images),
			HasVariants:   len(rows) > 0,
		}),
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ProductID = product.ID
		}
		if err := repo.CreateVariants(rows); err != nil {
			if errors.Is(err, repository.ErrVariantComboExists) {
				return fmt.Errorf("%w: %v", ErrVariantDuplicate, err)
			}
			return fmt.Errorf("create variants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	product.Variants = rows
	logger.Infow("product_created", "product_id", product.ID, "variants", len(rows))
	s.publish(ctx, constants.EventProductSaved, "insert", product.ID)
	return product, nil
}

// UpdateDetails 仅更新名称、价格、折扣与标签，整体重写 product_details
func (s *ProductService) UpdateDetails(ctx context.Context, id uint, patch ProductDetailsPatch) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	details := product.ProductDetails.Data()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrProductNameRequired
		}
		product.Name = name
		product.Slug = Slugify(name)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, ErrProductPriceInvalid
		}
		details.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		if patch.OriginalPrice.IsNegative() {
			return nil, ErrProductPriceInvalid
		}
		details.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Discount != nil {
		details.Discount = *patch.Discount
	}
	if patch.Featured != nil {
		details.Featured = normalizeStringList(*patch.Featured)
	}
	if patch.Gender != nil {
		details.Gender = normalizeStringList(*patch.Gender)
	}
	product.ProductDetails = datatypes.NewJSONType(details)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(ctx, constants.EventProductSaved, "update", product.ID)
	return product, nil
}

// Delete 在同一事务中删除变体与商品
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteVariants(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, constants.EventProductDeleted, "delete", id)
	return nil
}

// buildVariants 校验组合唯一、选项类型与价格，并补齐默认值
func (s *ProductService) buildVariants(inputs []VariantInput) ([]models.ProductVariant, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	optionTypes, err := s.resolveOptionTypes(inputs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(inputs))
	rows := make([]models.ProductVariant, 0, len(inputs))
	for _, input := range inputs {
		key := input.Key().String()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrVariantDuplicate, key)
		}
		seen[key] = struct{}{}

		if err := checkOptionType(optionTypes, input.MetalOptionID, constants.AttributeTypeMetal); err != nil {
			return nil, fmt.Errorf("%w: %s", err, key)
		}
		if err := checkOptionType(optionTypes, input.DiamondOptionID, constants.AttributeTypeDiamond); err != nil {
			return nil, fmt.Errorf("%w: %s", err, key)
		}
		size := input.SizeOptionID
		if err := checkOptionType(optionTypes, &size, constants.AttributeTypeSize); err != nil || size == 0 {
			return nil, fmt.Errorf("%w: %s", ErrVariantOptionInvalid, key)
		}
		if !input.OriginalPrice.IsPositive() {
			return nil, fmt.Errorf("%w: %s", ErrVariantPriceInvalid, key)
		}

		percentage := decimal.Zero
		if input.DiscountPercentage != nil {
			percentage = *input.DiscountPercentage
		}
		rows = append(rows, models.ProductVariant{
			MetalOptionID:      input.MetalOptionID,
			DiamondOptionID:    input.DiamondOptionID,
			SizeOptionID:       input.SizeOptionID,
			OriginalPrice:      input.OriginalPrice,
			DiscountPrice:      input.DiscountPrice.OrDefault(input.OriginalPrice),
			DiscountPercentage: percentage,
			FileTypes:          datatypes.JSONSlice[string](normalizeStringList(input.FileTypes)),
		})
	}
	return rows, nil
}

// resolveOptionTypes 查询变体引用的全部选项，返回 选项ID -> 属性类型
func (s *ProductService) resolveOptionTypes(inputs []VariantInput) (map[uint]string, error) {
	idSet := make(map[uint]struct{})
	for _, input := range inputs {
		if input.MetalOptionID != nil {
			idSet[*input.MetalOptionID] = struct{}{}
		}
		if input.DiamondOptionID != nil {
			idSet[*input.DiamondOptionID] = struct{}{}
		}
		if input.SizeOptionID != 0 {
			idSet[input.SizeOptionID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	options, err := s.attrRepo.ListOptionsByIDs(ids)
	if err != nil {
		return nil, err
	}
	attributes, err := s.attrRepo.ListAttributes()
	if err != nil {
		return nil, err
	}
	attrTypes := make(map[uint]string, len(attributes))
	for _, attribute := range attributes {
		attrTypes[attribute.ID] = attribute.Type
	}
	result := make(map[uint]string, len(options))
	for _, option := range options {
		result[option.ID] = attrTypes[option.AttributeID]
	}
	return result, nil
}

func checkOptionType(optionTypes map[uint]string, id *uint, want string) error {
	if id == nil {
		return nil
	}
	if optionTypes[*id] != want {
		return ErrVariantOptionInvalid
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, eventType, action string, productID uint) {
	event := events.Event{Type: eventType, Table: "products", Action: action, EntityID: productID}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warnw("product_event_publish_failed", "product_id", productID, "error", err)
	}
}

func normalizeStringList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
