package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attribute 全局属性族（金属、钻石、尺寸，每种类型至多一行）
type Attribute struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 主键
	Type      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"type"` // 属性类型 metal/diamond/size
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`            // 展示名称
	CreatedAt time.Time `json:"created_at"`                                        // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeOption 属性选项
type AttributeOption struct {
	ID          uint                `gorm:"primarykey" json:"id"`                             // 主键
	AttributeID uint                `gorm:"not null;index" json:"attribute_id"`               // 所属属性ID
	OptionName  string              `gorm:"type:varchar(120);not null" json:"option_name"`    // 选项名称
	OptionValue string              `gorm:"type:varchar(160);not null" json:"option_value"`   // 选项 slug（创建时生成）
	SizeMM      decimal.NullDecimal `gorm:"column:size_mm;type:decimal(10,2)" json:"size_mm"` // 尺寸毫米数（仅 size 类型）
	CreatedAt   time.Time           `json:"created_at"`                                       // 创建时间
	UpdatedAt   time.Time           `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (AttributeOption) TableName() string {
	return "attribute_options"
}
