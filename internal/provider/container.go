package provider

import (
	"github.com/fixmart-next/internal/authz"
	"github.com/fixmart-next/internal/cache"
	"github.com/fixmart-next/internal/config"
	"github.com/fixmart-next/internal/logger"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/queue"
	"github.com/fixmart-next/internal/repository"
	"github.com/fixmart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	UserRepo       repository.UserRepository
	LocationRepo   repository.LocationRepository
	DepartmentRepo repository.DepartmentRepository
	ProductRepo    repository.ProductRepository
	DeviceRepo     repository.DeviceRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UserAuthService   *service.UserAuthService
	EmailService      *service.EmailService
	ProductService    *service.ProductService
	DeviceService     *service.DeviceService
	LocationService   *service.LocationService
	DepartmentService *service.DepartmentService
	CartService       *service.CartService
	OrderService      *service.OrderService
	CatalogResolver   *service.CatalogResolver
	TaxCalculator     *service.TaxCalculator
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.DepartmentRepo = repository.NewDepartmentRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.DeviceRepo = repository.NewDeviceRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.LocationRepo, c.DepartmentRepo)
	c.DeviceService = service.NewDeviceService(c.DeviceRepo, c.LocationRepo, c.DepartmentRepo)
	c.LocationService = service.NewLocationService(c.LocationRepo, c.ProductRepo)
	c.DepartmentService = service.NewDepartmentService(c.DepartmentRepo, c.ProductRepo)
	c.CatalogResolver = service.NewCatalogResolver(c.ProductRepo, c.DeviceRepo, c.DepartmentRepo)
	c.TaxCalculator = service.NewTaxCalculator(c.Config.Tax.SalesRate)
	c.CartService = service.NewCartService(c.CartRepo, c.CatalogResolver)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.CatalogResolver, c.TaxCalculator, c.QueueClient)
}
