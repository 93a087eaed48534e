package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// Blog 博客文章表
type Blog struct {
	ID          uint                        `gorm:"primarykey" json:"id"`                               // 主键
	Title       string                      `gorm:"type:varchar(200);not null" json:"title"`            // 标题
	Slug        string                      `gorm:"type:varchar(240);uniqueIndex;not null" json:"slug"` // 唯一标识（由标题生成）
	Excerpt     string                      `gorm:"type:text" json:"excerpt"`                           // 摘要
	Content     string                      `gorm:"type:text" json:"content"`                           // 正文
	CoverImage  string                      `gorm:"type:varchar(500)" json:"cover_image"`               // 封面图
	Author      string                      `gorm:"type:varchar(120)" json:"author"`                    // 作者
	Tags        datatypes.JSONSlice[string] `json:"tags"`                                               // 标签
	IsPublished bool                        `gorm:"not null;index" json:"is_published"`                 // 是否发布
	PublishedAt *time.Time                  `gorm:"index" json:"published_at"`                          // 发布时间
	IsDeleted   soft_delete.DeletedAt       `gorm:"column:is_deleted;softDelete:flag;index" json:"-"`   // 软删除标记
	CreatedAt   time.Time                   `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time                   `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (Blog) TableName() string {
	return "blogs"
}
