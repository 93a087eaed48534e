package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		// 邮件
		"email.test.subject":                   "Gemdesk SMTP test",
		"email.test.body":                      "This is a test email sent from the Gemdesk admin console.",
		"email.customer_fallback":              "Customer",
		"email.order_status.subject":           "Order %s: %s",
		"email.order_status.body":              "Hi %s,\n\nYour order %s is now %s.\nOrder total: %s\n\nThank you for shopping with us.",
		"email.order_status.body_shipped":      "Hi %s,\n\nGood news! Your order %s has been shipped.\nOrder total: %s\n\nThank you for shopping with us.",
		"email.order_status.body_delivered":    "Hi %s,\n\nYour order %s has been delivered.\nOrder total: %s\n\nWe hope you love your jewellery.",
		"email.order_status.body_cancelled":    "Hi %s,\n\nYour order %s has been cancelled.\nOrder total: %s\n\nPlease contact us if you have any questions.",
		"email.vendor_review.subject_approved": "Your vendor account has been approved",
		"email.vendor_review.body_approved":    "Hi %s,\n\nYour vendor account for %s has been approved. You can now sign in to the admin console.",
		"email.vendor_review.subject_rejected": "Your vendor application was not approved",
		"email.vendor_review.body_rejected":    "Hi %s,\n\nYour vendor application for %s was not approved.\nReason: %s\n\nYou may register again after addressing the issue.",
		"order.status.pending":                 "Pending",
		"order.status.processing":              "Processing",
		"order.status.shipped":                 "Shipped",
		"order.status.delivered":               "Delivered",
		"order.status.cancelled":               "Cancelled",

		// 鉴权
		"error.jwt_secret_missing":       "JWT secret is not configured",
		"error.token_invalid":            "Invalid or expired token",
		"error.token_revoked":            "Token has been revoked, please sign in again",
		"error.auth_header_missing":      "Authorization header is missing",
		"error.auth_header_invalid":      "Authorization header is invalid",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "Permission denied",
		"error.vendor_not_verified":      "Vendor account is pending verification",
		"error.rate_limit_unavailable":   "Rate limiter is unavailable, please retry later",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.login_too_many":           "Too many login attempts, retry in %d seconds",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.password_require_special": "Password must contain a special character",
		"error.password_weak":            "Password is too weak",
		"error.password_too_long":        "Password must not exceed %d bytes",

		// 通用
		"error.bad_request": "Invalid request",
		"error.not_found":   "Record not found",
		"error.internal":    "Internal server error",
		"error.id_invalid":  "Invalid id",
		"error.slug_exists": "Slug already exists",

		// 登录与账号
		"error.captcha_required":        "Captcha is required",
		"error.captcha_invalid":         "Captcha is incorrect",
		"error.captcha_unavailable":     "Captcha service is unavailable",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_verify_failed":   "Failed to verify captcha",
		"error.captcha_config_invalid":  "Captcha configuration is invalid",
		"error.login_invalid":           "Incorrect email or password",
		"error.login_failed":            "Login failed",
		"error.register_failed":         "Registration failed",
		"error.gstin_invalid":           "GSTIN is invalid",
		"error.email_exists":            "Email is already registered",
		"error.user_fetch_failed":       "Failed to load user",
		"error.user_not_found":          "User not found",
		"error.password_old_invalid":    "Current password is incorrect",
		"error.password_update_failed":  "Failed to update password",

		// 目录
		"error.attribute_fetch_failed":  "Failed to load attributes",
		"error.attribute_save_failed":   "Failed to save attribute option",
		"error.attribute_delete_failed": "Failed to delete attribute option",
		"error.attribute_type_invalid":  "Attribute type must be metal, diamond or size",
		"error.option_name_required":    "Option name is required",
		"error.size_mm_required":        "Size options need a positive size in mm",
		"error.size_mm_not_allowed":     "Only size options may carry a size in mm",
		"error.attribute_option_in_use": "Option is used by product variants",
		"error.category_in_use":         "Category still has products",
		"error.category_name_required":  "Category name is required",
		"error.category_fetch_failed":   "Failed to load categories",
		"error.category_save_failed":    "Failed to save category",
		"error.category_delete_failed":  "Failed to delete category",
		"error.product_name_required":   "Product name is required",
		"error.product_price_invalid":   "Product price is invalid",
		"error.variant_duplicate":       "Duplicate variant combination",
		"error.variant_option_invalid":  "Variant references an unknown option",
		"error.variant_price_invalid":   "Every selected variant needs an original price",
		"error.variants_required":       "At least one variant is required",
		"error.product_fetch_failed":    "Failed to load products",
		"error.product_save_failed":     "Failed to save product",
		"error.product_delete_failed":   "Failed to delete product",

		// 内容
		"error.homepage_fetch_failed":  "Failed to load homepage sections",
		"error.homepage_save_failed":   "Failed to save homepage section",
		"error.homepage_delete_failed": "Failed to delete homepage section",
		"error.section_type_invalid":   "Section type is invalid",
		"error.section_data_invalid":   "Section content is incomplete",
		"error.section_order_invalid":  "Order must list every section exactly once",
		"error.blog_title_required":    "Blog title is required",
		"error.blog_fetch_failed":      "Failed to load blogs",
		"error.blog_save_failed":       "Failed to save blog",
		"error.blog_delete_failed":     "Failed to delete blog",
		"error.faq_invalid":            "Question and answer are required",
		"error.faq_fetch_failed":       "Failed to load FAQs",
		"error.faq_save_failed":        "Failed to save FAQ",
		"error.faq_delete_failed":      "Failed to delete FAQ",
		"error.review_fetch_failed":    "Failed to load reviews",
		"error.review_save_failed":     "Failed to update review",
		"error.review_delete_failed":   "Failed to delete review",
		"error.enquiry_status_invalid": "Enquiry status is invalid",
		"error.enquiry_fetch_failed":   "Failed to load enquiries",
		"error.enquiry_save_failed":    "Failed to update enquiry",
		"error.enquiry_delete_failed":  "Failed to delete enquiry",
		"error.order_status_invalid":   "Order status change is not allowed",
		"error.order_fetch_failed":     "Failed to load orders",
		"error.order_update_failed":    "Failed to update order",
		"error.vendor_not_pending":     "Vendor has already been reviewed",
		"error.reject_reason_required": "A reason is required to reject a vendor",
		"error.vendor_fetch_failed":    "Failed to load vendors",
		"error.vendor_review_failed":   "Failed to review vendor",
		"error.export_failed":          "Export failed",

		// 设置与日志
		"error.gst_rate_invalid":             "GST rate must be between 0 and 28",
		"error.dashboard_range_invalid":      "Dashboard range is invalid",
		"error.dashboard_fetch_failed":       "Failed to load dashboard",
		"error.settings_fetch_failed":        "Failed to load settings",
		"error.settings_save_failed":         "Failed to save settings",
		"error.email_invalid":                "Email address is invalid",
		"error.email_recipient_not_found":    "Recipient mailbox does not exist",
		"error.email_service_not_configured": "Email service is not configured",
		"error.email_send_failed":            "Failed to send email",
		"error.login_log_fetch_failed":       "Failed to load login logs",
		"error.audit_log_fetch_failed":       "Failed to load audit logs",
		"error.authz_fetch_failed":           "Failed to load permissions",
		"error.authz_role_invalid":           "Role name is invalid",
		"error.authz_policy_invalid":         "Policy object or action is invalid",
		"error.authz_builtin_readonly":       "Built-in admin policies cannot be revoked",

		// 上传
		"error.upload_no_files":           "No files uploaded",
		"error.upload_too_many_files":     "Too many files",
		"error.upload_file_too_large":     "File is too large",
		"error.upload_type_not_allowed":   "File type is not allowed",
		"error.upload_dimension_exceeded": "Image dimensions are too large",
		"error.upload_failed":             "Upload failed",
	},
	LocaleZH: {
		// 邮件
		"email.test.subject":                   "Gemdesk SMTP 测试",
		"email.test.body":                      "这是一封来自 Gemdesk 管理后台的测试邮件。",
		"email.customer_fallback":              "顾客",
		"email.order_status.subject":           "订单 %s：%s",
		"email.order_status.body":              "%s 您好：\n\n您的订单 %s 当前状态为 %s。\n订单金额：%s\n\n感谢您的惠顾。",
		"email.order_status.body_shipped":      "%s 您好：\n\n您的订单 %s 已发货。\n订单金额：%s\n\n感谢您的惠顾。",
		"email.order_status.body_delivered":    "%s 您好：\n\n您的订单 %s 已送达。\n订单金额：%s\n\n期待您再次光临。",
		"email.order_status.body_cancelled":    "%s 您好：\n\n您的订单 %s 已取消。\n订单金额：%s\n\n如有疑问请联系我们。",
		"email.vendor_review.subject_approved": "您的供应商账号已审核通过",
		"email.vendor_review.body_approved":    "%s 您好：\n\n%s 的供应商账号已审核通过，现在可以登录管理后台。",
		"email.vendor_review.subject_rejected": "您的供应商申请未通过",
		"email.vendor_review.body_rejected":    "%s 您好：\n\n%s 的供应商申请未通过。\n原因：%s\n\n处理后可重新注册。",
		"order.status.pending":                 "待处理",
		"order.status.processing":              "处理中",
		"order.status.shipped":                 "已发货",
		"order.status.delivered":               "已送达",
		"order.status.cancelled":               "已取消",

		// 鉴权
		"error.jwt_secret_missing":       "JWT 密钥未配置",
		"error.token_invalid":            "Token 无效或已过期",
		"error.token_revoked":            "Token 已失效，请重新登录",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 请求头格式错误",
		"error.unauthorized":             "未授权",
		"error.forbidden":                "无权限",
		"error.vendor_not_verified":      "供应商账号待审核",
		"error.rate_limit_unavailable":   "限流服务不可用，请稍后重试",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":           "登录尝试次数过多，请 %d 秒后重试",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
		"error.password_weak":            "密码强度不足",
		"error.password_too_long":        "密码不能超过 %d 字节",

		// 通用
		"error.bad_request": "请求参数错误",
		"error.not_found":   "记录不存在",
		"error.internal":    "服务器内部错误",
		"error.id_invalid":  "ID 无效",
		"error.slug_exists": "Slug 已存在",

		// 登录与账号
		"error.captcha_required":        "请输入验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.captcha_unavailable":     "验证码服务不可用",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.captcha_verify_failed":   "验证码校验失败",
		"error.captcha_config_invalid":  "验证码配置无效",
		"error.login_invalid":           "邮箱或密码错误",
		"error.login_failed":            "登录失败",
		"error.register_failed":         "注册失败",
		"error.gstin_invalid":           "GSTIN 格式错误",
		"error.email_exists":            "邮箱已注册",
		"error.user_fetch_failed":       "获取用户失败",
		"error.user_not_found":          "用户不存在",
		"error.password_old_invalid":    "原密码错误",
		"error.password_update_failed":  "修改密码失败",

		// 目录
		"error.attribute_fetch_failed":  "获取属性失败",
		"error.attribute_save_failed":   "保存属性选项失败",
		"error.attribute_delete_failed": "删除属性选项失败",
		"error.attribute_type_invalid":  "属性类型必须为 metal、diamond 或 size",
		"error.option_name_required":    "选项名称不能为空",
		"error.size_mm_required":        "尺寸选项必须填写正数毫米值",
		"error.size_mm_not_allowed":     "仅尺寸选项可填写毫米值",
		"error.attribute_option_in_use": "该选项已被商品变体引用",
		"error.category_in_use":         "该分类下仍有商品",
		"error.category_name_required":  "分类名称不能为空",
		"error.category_fetch_failed":   "获取分类失败",
		"error.category_save_failed":    "保存分类失败",
		"error.category_delete_failed":  "删除分类失败",
		"error.product_name_required":   "商品名称不能为空",
		"error.product_price_invalid":   "商品价格无效",
		"error.variant_duplicate":       "变体组合重复",
		"error.variant_option_invalid":  "变体引用了不存在的选项",
		"error.variant_price_invalid":   "所选变体必须填写原价",
		"error.variants_required":       "至少需要一个变体",
		"error.product_fetch_failed":    "获取商品失败",
		"error.product_save_failed":     "保存商品失败",
		"error.product_delete_failed":   "删除商品失败",

		// 内容
		"error.homepage_fetch_failed":  "获取首页区块失败",
		"error.homepage_save_failed":   "保存首页区块失败",
		"error.homepage_delete_failed": "删除首页区块失败",
		"error.section_type_invalid":   "区块类型无效",
		"error.section_data_invalid":   "区块内容不完整",
		"error.section_order_invalid":  "排序必须完整列出每个区块且不重复",
		"error.blog_title_required":    "博客标题不能为空",
		"error.blog_fetch_failed":      "获取博客失败",
		"error.blog_save_failed":       "保存博客失败",
		"error.blog_delete_failed":     "删除博客失败",
		"error.faq_invalid":            "问题和答案不能为空",
		"error.faq_fetch_failed":       "获取 FAQ 失败",
		"error.faq_save_failed":        "保存 FAQ 失败",
		"error.faq_delete_failed":      "删除 FAQ 失败",
		"error.review_fetch_failed":    "获取评价失败",
		"error.review_save_failed":     "更新评价失败",
		"error.review_delete_failed":   "删除评价失败",
		"error.enquiry_status_invalid": "询价状态无效",
		"error.enquiry_fetch_failed":   "获取询价失败",
		"error.enquiry_save_failed":    "更新询价失败",
		"error.enquiry_delete_failed":  "删除询价失败",
		"error.order_status_invalid":   "不允许的订单状态变更",
		"error.order_fetch_failed":     "获取订单失败",
		"error.order_update_failed":    "更新订单失败",
		"error.vendor_not_pending":     "该供应商已审核",
		"error.reject_reason_required": "拒绝供应商必须填写原因",
		"error.vendor_fetch_failed":    "获取供应商失败",
		"error.vendor_review_failed":   "审核供应商失败",
		"error.export_failed":          "导出失败",

		// 设置与日志
		"error.gst_rate_invalid":             "GST 税率必须在 0 到 28 之间",
		"error.dashboard_range_invalid":      "仪表盘时间范围无效",
		"error.dashboard_fetch_failed":       "获取仪表盘失败",
		"error.settings_fetch_failed":        "获取设置失败",
		"error.settings_save_failed":         "保存设置失败",
		"error.email_invalid":                "邮箱地址无效",
		"error.email_recipient_not_found":    "收件邮箱不存在",
		"error.email_service_not_configured": "邮件服务未配置",
		"error.email_send_failed":            "邮件发送失败",
		"error.login_log_fetch_failed":       "获取登录日志失败",
		"error.audit_log_fetch_failed":       "获取审计日志失败",
		"error.authz_fetch_failed":           "获取权限失败",
		"error.authz_role_invalid":           "角色名称无效",
		"error.authz_policy_invalid":         "策略资源或动作无效",
		"error.authz_builtin_readonly":       "内置管理员策略不可撤销",

		// 上传
		"error.upload_no_files":           "未上传文件",
		"error.upload_too_many_files":     "文件数量超出限制",
		"error.upload_file_too_large":     "文件过大",
		"error.upload_type_not_allowed":   "不支持的文件类型",
		"error.upload_dimension_exceeded": "图片尺寸超出限制",
		"error.upload_failed":             "上传失败",
	},
}
