package router

import (
	"sort"
	"strings"

	"github.com/gemdesk/internal/authz"
	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	adminhandlers "github.com/gemdesk/internal/http/handlers/admin"
	publichandlers "github.com/gemdesk/internal/http/handlers/public"
	"github.com/gemdesk/internal/http/response"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	if !logger.Ready() {
		logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	log := logger.Z()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gd"
	}
	redisClient := cache.Client()
	loginRule := NewRateLimitRule(redisPrefix+":rate:login", cfg.Security.LoginRateLimit, "error.login_too_many")
	registerRule := NewRateLimitRule(redisPrefix+":rate:vendor_register", cfg.Security.LoginRateLimit, "error.rate_limited")
	rpcRule := NewRateLimitRule(redisPrefix+":rate:rpc", cfg.Security.RPCRateLimit, "error.rate_limited")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", "./"+strings.TrimPrefix(uploadDir, "./"))

	tokens := c.AuthService.Tokens()
	envelopeAuth := JWTAuthMiddleware(tokens, c.AuthService, EnvelopeUnauthorized)
	rpcAuth := JWTAuthMiddleware(tokens, c.AuthService, RPCUnauthorized)

	// 认证接口
	auth := r.Group("/auth")
	{
		auth.GET("/captcha", publicHandler.GetCaptchaConfig)
		auth.GET("/captcha/image", publicHandler.GetImageCaptcha)
		auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email"), nil), publicHandler.Login)
		auth.POST("/vendor-register", RateLimitMiddleware(redisClient, registerRule, KeyByIP, nil), publicHandler.VendorRegister)

		session := auth.Group("")
		session.Use(envelopeAuth)
		{
			session.GET("/me", publicHandler.GetCurrentUser)
			session.PUT("/password", publicHandler.ChangePassword)
		}
	}

	// doAll 表代理与图片上传，401 使用 RPC 响应格式
	rpc := r.Group("")
	rpc.Use(rpcAuth, RateLimitMiddleware(redisClient, rpcRule, KeyByUser, rpcReject))
	{
		rpc.POST("/doAll", adminHandler.DoAll)
		rpc.POST("/upload-images", adminHandler.UploadImages)
	}

	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		admin.Use(envelopeAuth)
		{
			admin.GET("/authz/me", adminHandler.GetAuthzMe)

			authorized := admin.Group("")
			authorized.Use(RBACMiddleware(c.AuthzService))
			{
				// 属性目录
				authorized.GET("/attributes", adminHandler.GetAttributeCatalog)
				authorized.POST("/attributes/options", adminHandler.CreateAttributeOption)
				authorized.PUT("/attributes/options/:id", adminHandler.UpdateAttributeOption)
				authorized.DELETE("/attributes/options/:id", adminHandler.DeleteAttributeOption)

				// 分类、款式与金属宝石
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/categories/:id/bundle", adminHandler.GetCategoryBundle)
				authorized.POST("/categories/:id/styles", adminHandler.CreateCategoryStyle)
				authorized.PUT("/categories/:id/styles/:style_id", adminHandler.UpdateCategoryStyle)
				authorized.DELETE("/categories/:id/styles/:style_id", adminHandler.DeleteCategoryStyle)
				authorized.POST("/categories/:id/metals", adminHandler.CreateCategoryMetal)
				authorized.PUT("/categories/:id/metals/:metal_id", adminHandler.UpdateCategoryMetal)
				authorized.DELETE("/categories/:id/metals/:metal_id", adminHandler.DeleteCategoryMetal)

				// 商品与变体
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.POST("/upload-images", adminHandler.UploadImages)

				// 首页区块
				authorized.GET("/homepage/sections", adminHandler.GetHomepageSections)
				authorized.POST("/homepage/sections", adminHandler.CreateHomepageSection)
				authorized.PUT("/homepage/sections/reorder", adminHandler.ReorderHomepageSections)
				authorized.GET("/homepage/sections/:id", adminHandler.GetHomepageSection)
				authorized.PUT("/homepage/sections/:id", adminHandler.UpdateHomepageSection)
				authorized.PATCH("/homepage/sections/:id/enabled", adminHandler.SetHomepageSectionEnabled)
				authorized.DELETE("/homepage/sections/:id", adminHandler.DeleteHomepageSection)

				// 内容
				authorized.GET("/blogs", adminHandler.GetAdminBlogs)
				authorized.POST("/blogs", adminHandler.CreateBlog)
				authorized.GET("/blogs/:id", adminHandler.GetAdminBlog)
				authorized.PUT("/blogs/:id", adminHandler.UpdateBlog)
				authorized.PATCH("/blogs/:id/publish", adminHandler.PublishBlog)
				authorized.DELETE("/blogs/:id", adminHandler.DeleteBlog)
				authorized.GET("/faqs", adminHandler.GetAdminFAQs)
				authorized.POST("/faqs", adminHandler.CreateFAQ)
				authorized.PUT("/faqs/:id", adminHandler.UpdateFAQ)
				authorized.DELETE("/faqs/:id", adminHandler.DeleteFAQ)
				authorized.GET("/reviews", adminHandler.GetAdminReviews)
				authorized.PATCH("/reviews/:id/hidden", adminHandler.SetReviewHidden)
				authorized.DELETE("/reviews/:id", adminHandler.DeleteReview)
				authorized.GET("/enquiries", adminHandler.GetAdminEnquiries)
				authorized.GET("/enquiries/export", adminHandler.ExportEnquiries)
				authorized.PATCH("/enquiries/:id/status", adminHandler.UpdateEnquiryStatus)
				authorized.DELETE("/enquiries/:id", adminHandler.DeleteEnquiry)

				// 订单
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/export", adminHandler.AdminExportOrders)
				authorized.GET("/orders/status-counts", adminHandler.AdminOrderStatusCounts)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

				// 供应商审核
				authorized.GET("/vendors", adminHandler.GetAdminVendors)
				authorized.POST("/vendors/:id/approve", adminHandler.ApproveVendor)
				authorized.POST("/vendors/:id/reject", adminHandler.RejectVendor)

				// 设置
				authorized.GET("/settings/invoice", adminHandler.GetInvoiceSettings)
				authorized.PUT("/settings/invoice", adminHandler.UpdateInvoiceSettings)
				authorized.GET("/settings/dashboard", adminHandler.GetDashboardSettings)
				authorized.PUT("/settings/dashboard", adminHandler.UpdateDashboardSettings)
				authorized.GET("/settings/smtp", adminHandler.GetSMTPSettings)
				authorized.PUT("/settings/smtp", adminHandler.UpdateSMTPSettings)
				authorized.POST("/settings/smtp/test", adminHandler.TestSMTPSettings)
				authorized.GET("/settings/captcha", adminHandler.GetCaptchaSettings)
				authorized.PUT("/settings/captcha", adminHandler.UpdateCaptchaSettings)

				// 仪表盘与日志
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/trends", adminHandler.GetDashboardTrends)
				authorized.GET("/login-logs", adminHandler.GetUserLoginLogs)
				authorized.GET("/rpc-audit-logs", adminHandler.ListRPCAuditLogs)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r, c.TableRepo.Tables()...))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

var rpcActions = []string{
	constants.RPCActionGet,
	constants.RPCActionInsert,
	constants.RPCActionUpdate,
	constants.RPCActionDelete,
	constants.RPCActionSoftDelete,
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 由已注册的后台路由与 doAll 表生成可授权资源清单
func buildAdminPermissionCatalog(engine *gin.Engine, tables ...string) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes)+len(tables))
	appendItem := func(method, object string) {
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			return
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/authz/me" {
			continue
		}
		appendItem(method, authz.NormalizeObject(item.Path))
	}
	for _, table := range tables {
		object := authz.TableObject(table)
		for _, action := range rpcActions {
			appendItem(action, object)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] == "tables" {
		return "tables"
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
