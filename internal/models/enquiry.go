package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// Enquiry 客户询价表
type Enquiry struct {
	ID        uint                  `gorm:"primarykey" json:"id"`                                        // 主键
	Name      string                `gorm:"type:varchar(120);not null" json:"name"`                      // 联系人
	Email     string                `gorm:"type:varchar(255);index" json:"email"`                        // 邮箱
	Phone     string                `gorm:"type:varchar(40)" json:"phone"`                               // 电话
	Message   string                `gorm:"type:text" json:"message"`                                    // 询价内容
	ProductID *uint                 `gorm:"index" json:"product_id"`                                     // 关联商品ID
	Status    string                `gorm:"type:varchar(20);not null;default:'new';index" json:"status"` // 处理状态
	IsDeleted soft_delete.DeletedAt `gorm:"column:is_deleted;softDelete:flag;index" json:"-"`            // 软删除标记
	CreatedAt time.Time             `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt time.Time             `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (Enquiry) TableName() string {
	return "enquiries"
}
