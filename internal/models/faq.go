package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// FAQ 常见问题表
type FAQ struct {
	ID        uint                  `gorm:"primarykey" json:"id"`                             // 主键
	Question  string                `gorm:"type:varchar(500);not null" json:"question"`       // 问题
	Answer    string                `gorm:"type:text;not null" json:"answer"`                 // 回答
	Category  string                `gorm:"type:varchar(120);index" json:"category"`          // 分组
	SortOrder int                   `gorm:"default:0;index" json:"sort_order"`                // 排序权重
	IsActive  bool                  `gorm:"not null;index" json:"is_active"`                  // 是否展示
	IsDeleted soft_delete.DeletedAt `gorm:"column:is_deleted;softDelete:flag;index" json:"-"` // 软删除标记
	CreatedAt time.Time             `json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time             `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (FAQ) TableName() string {
	return "faqs"
}
