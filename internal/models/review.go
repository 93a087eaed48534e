package models

import "time"

// Review 商品评价表
type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`                            // 主键
	ProductID    uint      `gorm:"not null;index" json:"product_id"`                // 商品ID
	CustomerName string    `gorm:"type:varchar(120);not null" json:"customer_name"` // 评价人
	Rating       int       `gorm:"not null" json:"rating"`                          // 评分 1..5
	Comment      string    `gorm:"type:text" json:"comment"`                        // 评价内容
	IsHidden     bool      `gorm:"not null;index" json:"is_hidden"`                 // 是否隐藏
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                      // 更新时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
