package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
)

// LoginLogService 登录日志服务
type LoginLogService struct {
	repo repository.UserLoginLogRepository
}

// NewLoginLogService 创建登录日志服务
func NewLoginLogService(repo repository.UserLoginLogRepository) *LoginLogService {
	return &LoginLogService{repo: repo}
}

// RecordLoginInput 登录日志记录输入
type RecordLoginInput struct {
	UserID     uint
	UserType   string
	Email      string
	Success    bool
	FailReason string
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// Record 记录登录行为
func (s *LoginLogService) Record(input RecordLoginInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	status := constants.LoginLogStatusFailed
	failReason := strings.ToLower(strings.TrimSpace(input.FailReason))
	if input.Success {
		status = constants.LoginLogStatusSuccess
		failReason = ""
	} else if failReason == "" {
		failReason = constants.LoginFailReasonInternalError
	}
	return s.repo.Create(&models.UserLoginLog{
		UserID:     input.UserID,
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		UserType:   strings.TrimSpace(input.UserType),
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// List 管理端查询登录日志
func (s *LoginLogService) List(filter repository.LoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.repo.List(filter)
}

// LoginFailReason 将登录错误归类为日志失败原因
func LoginFailReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return constants.LoginFailReasonInvalidCredentials
	case errors.Is(err, ErrVendorNotVerified):
		return constants.LoginFailReasonVendorNotVerified
	case errors.Is(err, ErrCaptchaInvalid), errors.Is(err, ErrCaptchaRequired):
		return constants.LoginFailReasonCaptchaInvalid
	default:
		return constants.LoginFailReasonInternalError
	}
}
