package models

import "time"

// RPCAuditLog doAll 写操作与拒绝访问审计日志
type RPCAuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	ActorID   uint      `gorm:"index;not null" json:"actor_id"`                               // 操作人
	Role      string    `gorm:"type:varchar(20);index;not null;default:''" json:"role"`       // 操作人角色
	Target    string    `gorm:"type:varchar(64);index;not null" json:"target"`                // 目标表
	Action    string    `gorm:"type:varchar(20);index;not null" json:"action"`                // doAll 动作
	Allowed   bool      `gorm:"index;not null" json:"allowed"`                                // 是否通过权限校验
	Affected  int64     `gorm:"not null;default:0" json:"affected"`                           // 影响行数
	EntityID  uint      `gorm:"index" json:"entity_id"`                                       // 插入的主键
	Where     JSON      `json:"where"`                                                        // 过滤条件
	RequestID string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"` // 请求追踪ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 记录时间
}

// TableName 指定表名
func (RPCAuditLog) TableName() string {
	return "rpc_audit_logs"
}
