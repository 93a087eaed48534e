package configurator

import "github.com/shopspring/decimal"

// Category 分类
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Dimension 分类下的款式或金属/宝石
type Dimension struct {
	ID         uint   `json:"id"`
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
}

// AttributeOption 全局属性选项
type AttributeOption struct {
	ID          uint                `json:"id"`
	AttributeID uint                `json:"attribute_id"`
	OptionName  string              `json:"option_name"`
	OptionValue string              `json:"option_value"`
	SizeMM      decimal.NullDecimal `json:"size_mm"`
}

// AttributeFamily 单个属性族
type AttributeFamily struct {
	AttributeID uint              `json:"attribute_id"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Options     []AttributeOption `json:"options"`
}

// AttributeCatalog 金属、钻石、尺寸三类属性
type AttributeCatalog struct {
	Metal   AttributeFamily `json:"metal"`
	Diamond AttributeFamily `json:"diamond"`
	Size    AttributeFamily `json:"size"`
}

// OptionName 在指定属性族中按 id 查找名称
func (f AttributeFamily) OptionName(id uint) (string, bool) {
	for _, option := range f.Options {
		if option.ID == id {
			return option.OptionName, true
		}
	}
	return "", false
}
