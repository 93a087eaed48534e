package models

import "time"

// UserLoginLog 每次登录尝试一条，失败时 UserID 与 UserType 可能为空
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	Email      string    `gorm:"index;not null" json:"email"`
	UserType   string    `gorm:"type:varchar(20);index" json:"user_type"`
	Status     string    `gorm:"index;not null" json:"status"` // success / failed
	FailReason string    `gorm:"index" json:"fail_reason"`     // constants.LoginFailReason*
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	RequestID  string    `gorm:"type:varchar(64);index" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (UserLoginLog) TableName() string { return "user_login_logs" }
