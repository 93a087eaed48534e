package provider

import (
	"fmt"
	"time"

	"github.com/gemdesk/internal/authz"
	"github.com/gemdesk/internal/cache"
	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/events"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/queue"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/service"

	"gorm.io/gorm"
)

// Container 进程内共享的仓库与服务，HTTP 与 Worker 共用一份
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	Publisher   events.Publisher

	// Repositories
	UserRepo         repository.UserRepository
	AttributeRepo    repository.AttributeRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	HomepageRepo     repository.HomepageRepository
	BlogRepo         repository.BlogRepository
	FAQRepo          repository.FAQRepository
	ReviewRepo       repository.ReviewRepository
	EnquiryRepo      repository.EnquiryRepository
	OrderRepo        repository.OrderRepository
	SettingRepo      repository.SettingRepository
	UserLoginLogRepo repository.UserLoginLogRepository
	RPCAuditLogRepo  repository.RPCAuditLogRepository
	DashboardRepo    repository.DashboardRepository
	TableRepo        repository.TableRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	CaptchaService   *service.CaptchaService
	UploadService    *service.UploadService
	SettingService   *service.SettingService
	AttributeService *service.AttributeService
	TaxonomyService  *service.TaxonomyService
	ProductService   *service.ProductService
	HomepageService  *service.HomepageService
	BlogService      *service.BlogService
	FAQService       *service.FAQService
	ReviewService    *service.ReviewService
	EnquiryService   *service.EnquiryService
	OrderService     *service.OrderService
	VendorService    *service.VendorService
	DashboardService *service.DashboardService
	LoginLogService  *service.LoginLogService
	RPCAuditService  *service.RPCAuditService
	RPCService       *service.RPCService
}

// NewContainer Redis 与队列不可用时降级运行，授权模型初始化失败则返回错误
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if db == nil {
		return nil, fmt.Errorf("provider: database not initialized")
	}
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg, DB: db, Publisher: events.NewPublisher(&cfg.Events)}
	if cfg.Queue.Enabled {
		client, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		}
		c.QueueClient = client
	}

	c.wireRepositories()
	if err := c.wireServices(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close 释放 Kafka、队列与 Redis 连接
func (c *Container) Close() {
	closers := []struct {
		event string
		close func() error
	}{
		{"provider_close_publisher_failed", func() error {
			if c.Publisher == nil {
				return nil
			}
			return c.Publisher.Close()
		}},
		{"provider_close_queue_client_failed", func() error {
			if c.QueueClient == nil {
				return nil
			}
			return c.QueueClient.Close()
		}},
		{"provider_close_redis_failed", cache.Close},
	}
	for _, item := range closers {
		if err := item.close(); err != nil {
			logger.Warnw(item.event, "error", err)
		}
	}
}

func (c *Container) wireRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AttributeRepo = repository.NewAttributeRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.HomepageRepo = repository.NewHomepageRepository(db)
	c.BlogRepo = repository.NewBlogRepository(db)
	c.FAQRepo = repository.NewFAQRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.EnquiryRepo = repository.NewEnquiryRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.RPCAuditLogRepo = repository.NewRPCAuditLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.TableRepo = repository.NewTableRepository(db, repository.DefaultTables())
}

// applyStoredSettings 后台保存的 SMTP 与验证码设置优先于配置文件
func (c *Container) applyStoredSettings() {
	if smtp, err := c.SettingService.GetSMTPSetting(c.Config.Email); err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
	} else {
		c.Config.Email = service.SMTPSettingToConfig(smtp)
	}
	if captcha, err := c.SettingService.GetCaptchaSetting(c.Config.Captcha); err != nil {
		logger.Warnw("provider_load_captcha_setting_failed", "error", err)
	} else {
		c.Config.Captcha = service.CaptchaSettingToConfig(captcha)
	}
}

func (c *Container) wireServices() error {
	enforcer, err := authz.NewService(c.DB)
	if err != nil {
		return fmt.Errorf("provider: init authz: %w", err)
	}
	if err := enforcer.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("provider: bootstrap roles: %w", err)
	}
	c.AuthzService = enforcer

	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.applyStoredSettings()
	catalogTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.LoginLogService = service.NewLoginLogService(c.UserLoginLogRepo)
	c.RPCAuditService = service.NewRPCAuditService(c.RPCAuditLogRepo)

	c.AttributeService = service.NewAttributeService(c.AttributeRepo, c.Publisher, catalogTTL)
	c.TaxonomyService = service.NewTaxonomyService(c.CategoryRepo, c.AttributeService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.AttributeRepo, c.Publisher)
	c.HomepageService = service.NewHomepageService(c.HomepageRepo, c.Publisher)
	c.BlogService = service.NewBlogService(c.BlogRepo)
	c.FAQService = service.NewFAQService(c.FAQRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo)
	c.EnquiryService = service.NewEnquiryService(c.EnquiryRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.QueueClient)
	c.VendorService = service.NewVendorService(c.UserRepo, c.QueueClient, c.Publisher)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.SettingService)
	c.RPCService = service.NewRPCService(c.TableRepo, c.AuthzService, c.Publisher, c.RPCAuditService)
	return nil
}
