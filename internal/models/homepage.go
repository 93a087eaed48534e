package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// SectionItem 首页区块条目
type SectionItem struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
	ButtonText  string `json:"button_text"`
	Icon        string `json:"icon"`
	CategoryIDs []uint `json:"category_ids"`
}

// SectionData 首页区块内容
type SectionData struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Items    []SectionItem `json:"items"`
}

// HomepageSection 首页区块
type HomepageSection struct {
	ID            uint                            `gorm:"primarykey" json:"id"`                             // 主键
	Name          string                          `gorm:"type:varchar(120);not null" json:"name"`           // 后台名称
	Type          string                          `gorm:"type:varchar(40);not null;index" json:"type"`      // 区块类型
	Enabled       bool                            `gorm:"not null" json:"enabled"`                          // 是否启用
	OrderPosition int                             `gorm:"not null;index" json:"order_position"`             // 排序位置
	SectionData   datatypes.JSONType[SectionData] `json:"section_data"`                                     // 区块内容
	IsDeleted     soft_delete.DeletedAt           `gorm:"column:is_deleted;softDelete:flag;index" json:"-"` // 软删除标记
	CreatedAt     time.Time                       `json:"created_at"`                                       // 创建时间
	UpdatedAt     time.Time                       `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (HomepageSection) TableName() string {
	return "homepage_sections"
}

// CollectionCategory 分类精选区块条目与分类的关联
type CollectionCategory struct {
	ID         uint                  `gorm:"primarykey" json:"id"`                             // 主键
	SectionID  uint                  `gorm:"not null;index" json:"section_id"`                 // 区块ID
	CategoryID uint                  `gorm:"not null;index" json:"category_id"`                // 分类ID
	ItemIndex  int                   `gorm:"not null" json:"item_index"`                       // 条目下标
	IsDeleted  soft_delete.DeletedAt `gorm:"column:is_deleted;softDelete:flag;index" json:"-"` // 软删除标记
	CreatedAt  time.Time             `json:"created_at"`                                       // 创建时间
	UpdatedAt  time.Time             `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (CollectionCategory) TableName() string {
	return "collection_category"
}
