package admin

import (
	"errors"

	handlershared "github.com/gemdesk/internal/http/handlers/shared"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// commonErrorRules 各模块共享的错误映射
var commonErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrAttributeTypeInvalid, code: response.CodeBadRequest, key: "error.attribute_type_invalid"},
	{target: service.ErrOptionNameRequired, code: response.CodeBadRequest, key: "error.option_name_required"},
	{target: service.ErrSizeMMRequired, code: response.CodeBadRequest, key: "error.size_mm_required"},
	{target: service.ErrSizeMMNotAllowed, code: response.CodeBadRequest, key: "error.size_mm_not_allowed"},
	{target: service.ErrAttributeOptionInUse, code: response.CodeConflict, key: "error.attribute_option_in_use"},
	{target: service.ErrCategoryInUse, code: response.CodeConflict, key: "error.category_in_use"},
	{target: service.ErrCategoryNameRequired, code: response.CodeBadRequest, key: "error.category_name_required"},
	{target: service.ErrProductNameRequired, code: response.CodeBadRequest, key: "error.product_name_required"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, key: "error.product_price_invalid"},
	{target: service.ErrVariantDuplicate, code: response.CodeBadRequest, key: "error.variant_duplicate"},
	{target: service.ErrVariantOptionInvalid, code: response.CodeBadRequest, key: "error.variant_option_invalid"},
	{target: service.ErrVariantPriceInvalid, code: response.CodeBadRequest, key: "error.variant_price_invalid"},
	{target: service.ErrVariantsRequired, code: response.CodeBadRequest, key: "error.variants_required"},
}

var contentErrorRules = []mappedHandlerError{
	{target: service.ErrSectionTypeInvalid, code: response.CodeBadRequest, key: "error.section_type_invalid"},
	{target: service.ErrSectionDataInvalid, code: response.CodeBadRequest, key: "error.section_data_invalid"},
	{target: service.ErrSectionOrderInvalid, code: response.CodeBadRequest, key: "error.section_order_invalid"},
	{target: service.ErrBlogTitleRequired, code: response.CodeBadRequest, key: "error.blog_title_required"},
	{target: service.ErrFAQInvalid, code: response.CodeBadRequest, key: "error.faq_invalid"},
	{target: service.ErrEnquiryStatusInvalid, code: response.CodeBadRequest, key: "error.enquiry_status_invalid"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrVendorNotPending, code: response.CodeConflict, key: "error.vendor_not_pending"},
	{target: service.ErrRejectReasonRequired, code: response.CodeBadRequest, key: "error.reject_reason_required"},
}

var settingErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidGSTIN, code: response.CodeBadRequest, key: "error.gstin_invalid"},
	{target: service.ErrInvalidGSTRate, code: response.CodeBadRequest, key: "error.gst_rate_invalid"},
	{target: service.ErrDashboardRangeInvalid, code: response.CodeBadRequest, key: "error.dashboard_range_invalid"},
	{target: service.ErrCaptchaConfig, code: response.CodeBadRequest, key: "error.captcha_config_invalid"},
}

var uploadErrorRules = []mappedHandlerError{
	{target: service.ErrNoFiles, code: response.CodeBadRequest, key: "error.upload_no_files"},
	{target: service.ErrTooManyFiles, code: response.CodeBadRequest, key: "error.upload_too_many_files"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, key: "error.upload_file_too_large"},
	{target: service.ErrFileTypeNotAllowed, code: response.CodeBadRequest, key: "error.upload_type_not_allowed"},
	{target: service.ErrFileExtensionNotAllowed, code: response.CodeBadRequest, key: "error.upload_type_not_allowed"},
	{target: service.ErrImageDimensionExceeded, code: response.CodeBadRequest, key: "error.upload_dimension_exceeded"},
}

// respondServiceError 按映射规则输出业务错误，未命中时记录原始错误
func respondServiceError(c *gin.Context, err error, fallbackKey string, groups ...[]mappedHandlerError) {
	for _, group := range append(groups, commonErrorRules) {
		for _, rule := range group {
			if errors.Is(err, rule.target) {
				respondError(c, rule.code, rule.key, nil)
				return
			}
		}
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}

// translateServiceError doAll 响应使用的错误消息
func translateServiceError(c *gin.Context, err error, groups ...[]mappedHandlerError) (string, bool) {
	locale := i18n.ResolveLocale(c)
	for _, group := range groups {
		for _, rule := range group {
			if errors.Is(err, rule.target) {
				return i18n.T(locale, rule.key), true
			}
		}
	}
	return i18n.T(locale, "error.internal"), false
}
