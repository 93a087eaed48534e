package constants

// 属性类型常量
const (
	AttributeTypeMetal   = "metal"
	AttributeTypeDiamond = "diamond"
	AttributeTypeSize    = "size"
)

// 首页区块类型常量
const (
	SectionTypeHero              = "hero"
	SectionTypeFeature           = "feature-section"
	SectionTypeCollection        = "collection"
	SectionTypeCategoryHighlight = "category-highlight"
)

// 用户类型常量
const (
	UserTypeAdmin  = "admin"
	UserTypeVendor = "vendor"
)

// 供应商审核状态常量
const (
	VendorStatusPending  = "pending"
	VendorStatusApproved = "approved"
	VendorStatusRejected = "rejected"
)

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 询价状态常量
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusContacted = "contacted"
	EnquiryStatusClosed    = "closed"
)

// doAll 动作常量
const (
	RPCActionGet        = "get"
	RPCActionInsert     = "insert"
	RPCActionUpdate     = "update"
	RPCActionDelete     = "delete"
	RPCActionSoftDelete = "soft_delete"
)

// 队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskOrderStatusEmail  = "order:status_email"
	TaskVendorReviewEmail = "vendor:review_email"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
)

// 设置键常量
const (
	SettingKeyInvoice         = "invoice"
	SettingKeySMTPConfig      = "smtp_config"
	SettingKeyDashboardConfig = "dashboard_config"
	SettingKeyCaptchaConfig   = "captcha_config"
)

// 变更事件类型常量
const (
	EventCatalogChanged  = "catalog.changed"
	EventProductSaved    = "product.saved"
	EventProductDeleted  = "product.deleted"
	EventHomepageChanged = "homepage.changed"
	EventVendorReviewed  = "vendor.reviewed"
)

// 上传场景常量
const (
	UploadSceneProduct  = "product"
	UploadSceneCategory = "category"
	UploadSceneHomepage = "homepage"
	UploadSceneBlog     = "blog"
	UploadSceneCommon   = "common"
)

// 登录日志常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginFailReasonInvalidCredentials = "invalid_credentials"
	LoginFailReasonVendorNotVerified  = "vendor_not_verified"
	LoginFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginFailReasonInternalError      = "internal_error"
)
