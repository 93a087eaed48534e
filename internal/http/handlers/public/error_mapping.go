package public

import (
	"errors"

	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	if respondPasswordPolicyError(c, err) {
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// respondPasswordPolicyError 密码策略错误带参数翻译
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	var perr *service.PasswordPolicyError
	if errors.As(err, &perr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key, perr.Args...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfig, code: response.CodeBadRequest, key: "error.captcha_unavailable"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrVendorNotVerified, code: response.CodeForbidden, key: "error.vendor_not_verified"},
}

var vendorRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrInvalidGSTIN, code: response.CodeBadRequest, key: "error.gstin_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
}

var changePasswordErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_old_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}
