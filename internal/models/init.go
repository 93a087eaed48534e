package models

import (
	"strings"

	"github.com/gemdesk/internal/constants"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	fallbackAdminEmail    = "admin@gemdesk.local"
	fallbackAdminPassword = "admin123"
)

// AdminBootstrap EnsureDefaultAdmin 的结果
type AdminBootstrap struct {
	Created         bool
	Email           string
	DefaultPassword bool // 使用了内置默认密码，需要尽快修改
}

// EnsureDefaultAdmin 库中没有任何管理员时创建一个
func EnsureDefaultAdmin(db *gorm.DB, email, password string) (AdminBootstrap, error) {
	var result AdminBootstrap
	var admins int64
	if err := db.Model(&User{}).Where(&User{UserType: constants.UserTypeAdmin}).Count(&admins).Error; err != nil {
		return result, err
	}
	if admins > 0 {
		return result, nil
	}

	result.Email = strings.ToLower(strings.TrimSpace(email))
	if result.Email == "" {
		result.Email = fallbackAdminEmail
	}
	if password == "" {
		password = fallbackAdminPassword
		result.DefaultPassword = true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return result, err
	}
	admin := User{
		Name:         "Administrator",
		Email:        result.Email,
		PasswordHash: string(hash),
		UserType:     constants.UserTypeAdmin,
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return result, err
	}
	result.Created = true
	return result, nil
}
