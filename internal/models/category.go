package models

import "time"

// Category 目录一级分类，款式与金属是它的两个可选维度
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"` // 由名称生成
	Image     string    `gorm:"type:varchar(500)" json:"image"`
	SortOrder int       `gorm:"default:0;index" json:"sort_order"` // 越大越靠前
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

// CategoryStyle 款式维度，例如 Solitaire、Halo
type CategoryStyle struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CategoryStyle) TableName() string { return "category_styles" }

// CategoryMetal 金属或宝石维度，例如 18K Rose Gold
type CategoryMetal struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CategoryMetal) TableName() string { return "category_metals" }
