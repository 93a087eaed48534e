package public

import (
	"strings"
	"time"

	"github.com/gemdesk/internal/constants"
	handlershared "github.com/gemdesk/internal/http/handlers/shared"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 后台登录请求
type LoginRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// Login 管理员与供应商登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
		h.recordLogin(c, req.Email, nil, err)
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
		return
	}

	session, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLogin(c, req.Email, nil, err)
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	h.recordLogin(c, req.Email, &loginActor{id: session.User.ID, userType: session.User.UserType}, nil)

	response.Success(c, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
		"user":       session.User,
	})
}

type loginActor struct {
	id       uint
	userType string
}

func (h *Handler) recordLogin(c *gin.Context, email string, actor *loginActor, loginErr error) {
	input := service.RecordLoginInput{
		Email:      email,
		Success:    loginErr == nil,
		FailReason: service.LoginFailReason(loginErr),
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		RequestID:  currentRequestID(c),
	}
	if actor != nil {
		input.UserID = actor.id
		input.UserType = actor.userType
	}
	if err := h.LoginLogService.Record(input); err != nil {
		requestLog(c).Warnw("login_log_record_failed", "email", strings.ToLower(strings.TrimSpace(email)), "error", err)
	}
}

// VendorRegisterRequest 供应商注册请求
type VendorRegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	GSTNumber    string `json:"gst_number"`
}

// VendorRegister 供应商注册，注册后等待管理员审核
func (h *Handler) VendorRegister(c *gin.Context) {
	var req VendorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.VendorRegister(service.VendorRegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		GSTNumber:    req.GSTNumber,
	})
	if err != nil {
		respondWithMappedError(c, err, vendorRegisterErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	requestLog(c).Infow("vendor_registered", "user_id", user.ID, "email", user.Email)
	response.Success(c, user)
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUser(userID)
	if err != nil {
		respondWithMappedError(c, err, changePasswordErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, changePasswordErrorRules, response.CodeInternal, "error.password_update_failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}
