package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// OrderItem 订单行（以 JSON 快照存于订单）
type OrderItem struct {
	ProductID uint   `json:"product_id"`
	VariantID *uint  `json:"variant_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
}

// Order 订单表
type Order struct {
	ID              uint                           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo         string                         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`     // 订单号
	CustomerName    string                         `gorm:"type:varchar(120);not null" json:"customer_name"`           // 客户姓名
	CustomerEmail   string                         `gorm:"type:varchar(255);index" json:"customer_email"`             // 客户邮箱
	CustomerPhone   string                         `gorm:"type:varchar(40)" json:"customer_phone"`                    // 客户电话
	ShippingAddress string                         `gorm:"type:text" json:"shipping_address"`                         // 收货地址
	Items           datatypes.JSONSlice[OrderItem] `json:"items"`                                                     // 订单行快照
	TotalAmount     Money                          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	Status          string                         `gorm:"type:varchar(20);not null;index" json:"status"`             // 订单状态
	IsDeleted       soft_delete.DeletedAt          `gorm:"column:is_deleted;softDelete:flag;index" json:"-"`          // 软删除标记
	CreatedAt       time.Time                      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time                      `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
