package service

import "errors"

// 通用错误
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSlugExists     = errors.New("slug already exists")
	ErrForbidden      = errors.New("permission denied")
	ErrUnknownTable   = errors.New("unknown table")
	ErrInvalidRPCCall = errors.New("invalid doAll request")
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailExists        = errors.New("email already registered")
	ErrVendorNotVerified  = errors.New("vendor account not verified")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaConfig      = errors.New("captcha config invalid")
)

// 属性与分类错误
var (
	ErrAttributeTypeInvalid = errors.New("attribute type invalid")
	ErrOptionNameRequired   = errors.New("option name required")
	ErrSizeMMRequired       = errors.New("size_mm required for size options")
	ErrSizeMMNotAllowed     = errors.New("size_mm only allowed for size options")
	ErrAttributeOptionInUse = errors.New("attribute option referenced by variants")
	ErrCategoryInUse        = errors.New("category referenced by products")
	ErrCategoryNameRequired = errors.New("category name required")
)

// 商品与变体错误
var (
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductPriceInvalid  = errors.New("product price invalid")
	ErrVariantDuplicate     = errors.New("duplicate variant combination")
	ErrVariantOptionInvalid = errors.New("variant option invalid")
	ErrVariantPriceInvalid  = errors.New("variant original price required")
	ErrVariantsRequired     = errors.New("at least one variant required")
)

// 首页区块错误
var (
	ErrSectionTypeInvalid  = errors.New("section type invalid")
	ErrSectionDataInvalid  = errors.New("section data invalid")
	ErrSectionOrderInvalid = errors.New("section order must list every live section once")
)

// 内容与订单错误
var (
	ErrBlogTitleRequired     = errors.New("blog title required")
	ErrFAQInvalid            = errors.New("faq question and answer required")
	ErrEnquiryStatusInvalid  = errors.New("enquiry status invalid")
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrVendorNotPending      = errors.New("vendor already reviewed")
	ErrRejectReasonRequired  = errors.New("reject reason required")
	ErrInvalidGSTIN          = errors.New("gstin invalid")
	ErrInvalidGSTRate        = errors.New("gst rate must be between 0 and 28")
	ErrDashboardRangeInvalid = errors.New("dashboard range invalid")
)

// 上传与邮件错误
var (
	ErrFileTooLarge              = errors.New("file too large")
	ErrFileTypeNotAllowed        = errors.New("file type not allowed")
	ErrFileExtensionNotAllowed   = errors.New("file extension not allowed")
	ErrImageDimensionExceeded    = errors.New("image dimension exceeded")
	ErrTooManyFiles              = errors.New("too many files")
	ErrNoFiles                   = errors.New("no files uploaded")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
