package models

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

// User 后台用户表（管理员与供应商）
type User struct {
	ID                 uint                  `gorm:"primarykey" json:"id"`                                 // 主键
	Name               string                `gorm:"type:varchar(120)" json:"name"`                        // 姓名
	Email              string                `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`  // 登录邮箱
	Phone              string                `gorm:"type:varchar(40)" json:"phone"`                        // 电话
	BusinessName       string                `gorm:"type:varchar(200)" json:"business_name"`               // 商户名称
	GSTNumber          string                `gorm:"column:gst_number;type:varchar(15)" json:"gst_number"` // GST 号
	PasswordHash       string                `gorm:"not null" json:"-"`                                    // 密码哈希（不返回给前端）
	UserType           string                `gorm:"type:varchar(20);not null;index" json:"user_type"`     // 用户类型 admin/vendor
	IsVerified         bool                  `gorm:"not null;index" json:"is_verified"`                    // 是否已审核通过
	VendorStatus       string                `gorm:"type:varchar(20);index" json:"vendor_status"`          // 供应商审核状态
	RejectReason       string                `gorm:"type:varchar(500)" json:"reject_reason"`               // 驳回原因
	TokenVersion       uint64                `gorm:"not null;default:0" json:"-"`                          // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time            `gorm:"index" json:"-"`                                       // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time            `json:"last_login_at"`                                        // 最后登录时间
	IsDeleted          soft_delete.DeletedAt `gorm:"column:is_deleted;softDelete:flag;index" json:"-"`     // 软删除标记
	CreatedAt          time.Time             `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt          time.Time             `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
