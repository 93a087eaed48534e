package models

import (
	"time"

	"github.com/gemdesk/internal/variantkey"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// ProductDetails 商品详情 JSON
type ProductDetails struct {
	Description   string          `json:"description"`
	Price         Money           `json:"price"`
	OriginalPrice Money           `json:"originalPrice"`
	Discount      decimal.Decimal `json:"discount"`
	StyleID       *uint           `json:"style_id"`
	MetalID       *uint           `json:"metal_id"`
	Featured      []string        `json:"featured"`
	Gender        []string        `json:"gender"`
	Images        []string        `json:"images"`
	HasVariants   bool            `json:"has_variants"`
}

// Product 商品表
type Product struct {
	ID             uint                               `gorm:"primarykey" json:"id"`                             // 主键
	CategoryID     uint                               `gorm:"not null;index" json:"category_id"`                // 分类ID
	Name           string                             `gorm:"type:varchar(200);not null" json:"name"`           // 商品名称
	Slug           string                             `gorm:"type:varchar(240);not null;index" json:"slug"`     // 由名称生成的 slug
	ProductDetails datatypes.JSONType[ProductDetails] `json:"product_details"`                                  // 商品详情
	IsDeleted      soft_delete.DeletedAt              `gorm:"column:is_deleted;softDelete:flag;index" json:"-"` // 软删除标记
	CreatedAt      time.Time                          `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt      time.Time                          `json:"updated_at"`                                       // 更新时间

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductVariant 商品变体（金属 × 钻石 × 尺寸 定价）
type ProductVariant struct {
	ID                 uint                        `gorm:"primarykey" json:"id"`                                                      // 主键
	ProductID          uint                        `gorm:"not null;index;uniqueIndex:idx_variant_combo,priority:1" json:"product_id"` // 商品ID
	MetalOptionID      *uint                       `gorm:"uniqueIndex:idx_variant_combo,priority:2" json:"metal_option_id"`           // 金属选项ID（可空）
	DiamondOptionID    *uint                       `gorm:"uniqueIndex:idx_variant_combo,priority:3" json:"diamond_option_id"`         // 钻石选项ID（可空）
	SizeOptionID       uint                        `gorm:"not null;uniqueIndex:idx_variant_combo,priority:4" json:"size_option_id"`   // 尺寸选项ID
	OriginalPrice      Money                       `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"`               // 原价
	DiscountPrice      Money                       `gorm:"type:decimal(20,2);not null;default:0" json:"discount_price"`               // 折后价
	DiscountPercentage decimal.Decimal             `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`           // 折扣百分比
	FileTypes          datatypes.JSONSlice[string] `json:"file_types"`                                                                // 交付文件类型
	CreatedAt          time.Time                   `json:"created_at"`                                                                // 创建时间
	UpdatedAt          time.Time                   `json:"updated_at"`                                                                // 更新时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// Key 变体组合键
func (v ProductVariant) Key() variantkey.Key {
	return variantkey.Key{Metal: v.MetalOptionID, Diamond: v.DiamondOptionID, Size: v.SizeOptionID}
}
