package configurator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gemdesk/internal/variantkey"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingOriginalPrice = errors.New("original price required for selected variant")
	ErrChoiceDisabled       = errors.New("attribute choice disabled")
	ErrUnknownSize          = errors.New("size option required")
)

// Pricing 单个变体的定价
type Pricing struct {
	OriginalPrice      *decimal.Decimal
	DiscountPrice      *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	FileTypes          []string
}

// Block 一个尺寸选择块（金属|none × 钻石|none）
type Block struct {
	Key     variantkey.Block
	Metal   *uint
	Diamond *uint
}

// Draft 正在编辑的商品
type Draft struct {
	CategoryID    uint
	Name          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      decimal.Decimal
	StyleID       *uint
	MetalID       *uint
	Featured      []string
	Gender        []string
	Images        []string

	HasMetalChoice         bool
	HasDiamondChoice       bool
	SelectedMetalOptions   []uint
	SelectedDiamondOptions []uint
	SelectedSizes          map[string]bool    // 变体键 -> 是否选中
	VariantPricing         map[string]Pricing // 变体键 -> 定价
}

// NewDraft 创建空草稿
func NewDraft(categoryID uint) *Draft {
	return &Draft{
		CategoryID:             categoryID,
		Featured:               []string{},
		Gender:                 []string{},
		Images:                 []string{},
		SelectedMetalOptions:   []uint{},
		SelectedDiamondOptions: []uint{},
		SelectedSizes:          map[string]bool{},
		VariantPricing:         map[string]Pricing{},
	}
}

// SetMetalChoice 开关金属维度，关闭时清空已选金属及其尺寸
func (d *Draft) SetMetalChoice(enabled bool) {
	d.HasMetalChoice = enabled
	if !enabled {
		d.SelectedMetalOptions = []uint{}
	}
	d.prune()
}

// SetDiamondChoice 开关钻石维度，关闭时清空已选钻石及其尺寸
func (d *Draft) SetDiamondChoice(enabled bool) {
	d.HasDiamondChoice = enabled
	if !enabled {
		d.SelectedDiamondOptions = []uint{}
	}
	d.prune()
}

// ToggleMetalOption 勾选或取消金属选项
func (d *Draft) ToggleMetalOption(id uint) error {
	if !d.HasMetalChoice {
		return fmt.Errorf("%w: metal", ErrChoiceDisabled)
	}
	d.SelectedMetalOptions = toggleID(d.SelectedMetalOptions, id)
	d.prune()
	return nil
}

// ToggleDiamondOption 勾选或取消钻石选项
func (d *Draft) ToggleDiamondOption(id uint) error {
	if !d.HasDiamondChoice {
		return fmt.Errorf("%w: diamond", ErrChoiceDisabled)
	}
	d.SelectedDiamondOptions = toggleID(d.SelectedDiamondOptions, id)
	d.prune()
	return nil
}

// Blocks 枚举尺寸选择块，维度关闭时该维度只有 none
func (d *Draft) Blocks() []Block {
	metals := d.dimension(d.HasMetalChoice, d.SelectedMetalOptions)
	diamonds := d.dimension(d.HasDiamondChoice, d.SelectedDiamondOptions)
	blocks := make([]Block, 0, len(metals)*len(diamonds))
	for _, metal := range metals {
		for _, diamond := range diamonds {
			key := variantkey.Block{Metal: metal, Diamond: diamond}
			blocks = append(blocks, Block{Key: key, Metal: metal, Diamond: diamond})
		}
	}
	return blocks
}

func (d *Draft) dimension(enabled bool, selected []uint) []*uint {
	if !enabled {
		return []*uint{nil}
	}
	ids := make([]*uint, 0, len(selected))
	for _, id := range selected {
		id := id
		ids = append(ids, &id)
	}
	return ids
}

// SelectSize 在某个块中勾选或取消尺寸
func (d *Draft) SelectSize(block variantkey.Block, sizeID uint, selected bool) error {
	if sizeID == 0 {
		return ErrUnknownSize
	}
	if !d.hasBlock(block) {
		return fmt.Errorf("%w: block %s", ErrChoiceDisabled, block)
	}
	key := block.WithSize(sizeID).String()
	if selected {
		d.SelectedSizes[key] = true
		return nil
	}
	delete(d.SelectedSizes, key)
	return nil
}

// SetPricing 设置变体定价
func (d *Draft) SetPricing(key variantkey.Key, pricing Pricing) {
	d.VariantPricing[key.String()] = pricing
}

// SelectedKeys 已选中的变体键（金属、钻石、尺寸升序，none 在前）
func (d *Draft) SelectedKeys() []variantkey.Key {
	keys := make([]variantkey.Key, 0, len(d.SelectedSizes))
	for raw, selected := range d.SelectedSizes {
		if !selected {
			continue
		}
		key, err := variantkey.Parse(raw)
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})
	return keys
}

// Validate 每个已选变体都必须有非零原价，报告排序后的第一个缺失键
func (d *Draft) Validate() error {
	for _, key := range d.SelectedKeys() {
		pricing, ok := d.VariantPricing[key.String()]
		if !ok || pricing.OriginalPrice == nil || pricing.OriginalPrice.IsZero() {
			return fmt.Errorf("%w: %s", ErrMissingOriginalPrice, key)
		}
	}
	return nil
}

// VariantRow 提交的变体行
type VariantRow struct {
	MetalOptionID      *uint           `json:"metal_option_id"`
	DiamondOptionID    *uint           `json:"diamond_option_id"`
	SizeOptionID       uint            `json:"size_option_id"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountPrice      decimal.Decimal `json:"discount_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	FileTypes          []string        `json:"file_types"`
}

// Submission 商品与全部变体的一次性提交
type Submission struct {
	CategoryID    uint            `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Discount      decimal.Decimal `json:"discount"`
	StyleID       *uint           `json:"style_id"`
	MetalID       *uint           `json:"metal_id"`
	Featured      []string        `json:"featured"`
	Gender        []string        `json:"gender"`
	Images        []string        `json:"images"`
	Variants      []VariantRow    `json:"variants"`
}

// Submission 校验后生成提交内容，每个已选键恰好一行
func (d *Draft) Submission() (*Submission, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	keys := d.SelectedKeys()
	rows := make([]VariantRow, 0, len(keys))
	for _, key := range keys {
		pricing := d.VariantPricing[key.String()]
		original := *pricing.OriginalPrice
		discount := original
		if pricing.DiscountPrice != nil {
			discount = *pricing.DiscountPrice
		}
		percentage := decimal.Zero
		if pricing.DiscountPercentage != nil {
			percentage = *pricing.DiscountPercentage
		}
		fileTypes := pricing.FileTypes
		if fileTypes == nil {
			fileTypes = []string{}
		}
		rows = append(rows, VariantRow{
			MetalOptionID:      key.Metal,
			DiamondOptionID:    key.Diamond,
			SizeOptionID:       key.Size,
			OriginalPrice:      original,
			DiscountPrice:      discount,
			DiscountPercentage: percentage,
			FileTypes:          fileTypes,
		})
	}
	return &Submission{
		CategoryID:    d.CategoryID,
		Name:          strings.TrimSpace(d.Name),
		Description:   strings.TrimSpace(d.Description),
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		StyleID:       d.StyleID,
		MetalID:       d.MetalID,
		Featured:      d.Featured,
		Gender:        d.Gender,
		Images:        d.Images,
		Variants:      rows,
	}, nil
}

// Save 校验失败时不调用后端
func (d *Draft) Save(ctx context.Context, backend Backend) (uint, error) {
	submission, err := d.Submission()
	if err != nil {
		return 0, err
	}
	return backend.CreateProduct(ctx, *submission)
}

// prune 丢弃不再属于任何块的尺寸选择与定价
func (d *Draft) prune() {
	live := make(map[string]bool)
	for _, block := range d.Blocks() {
		live[block.Key.String()] = true
	}
	for raw := range d.SelectedSizes {
		key, err := variantkey.Parse(raw)
		if err != nil || !live[key.Block().String()] {
			delete(d.SelectedSizes, raw)
		}
	}
	for raw := range d.VariantPricing {
		key, err := variantkey.Parse(raw)
		if err != nil || !live[key.Block().String()] {
			delete(d.VariantPricing, raw)
		}
	}
}

func (d *Draft) hasBlock(block variantkey.Block) bool {
	target := block.String()
	for _, item := range d.Blocks() {
		if item.Key.String() == target {
			return true
		}
	}
	return false
}

func toggleID(ids []uint, id uint) []uint {
	for i, item := range ids {
		if item == id {
			return append(append([]uint{}, ids[:i]...), ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func lessKey(a, b variantkey.Key) bool {
	if c := compareOptional(a.Metal, b.Metal); c != 0 {
		return c < 0
	}
	if c := compareOptional(a.Diamond, b.Diamond); c != 0 {
		return c < 0
	}
	return a.Size < b.Size
}

func compareOptional(a, b *uint) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
