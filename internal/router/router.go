package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fixmart-next/internal/authz"
	"github.com/fixmart-next/internal/cache"
	"github.com/fixmart-next/internal/config"
	"github.com/fixmart-next/internal/constants"
	adminhandlers "github.com/fixmart-next/internal/http/handlers/admin"
	publichandlers "github.com/fixmart-next/internal/http/handlers/public"
	"github.com/fixmart-next/internal/http/response"
	"github.com/fixmart-next/internal/logger"
	"github.com/fixmart-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开商品目录
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/departments", publicHandler.ListDepartments)

		// 顾客认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 顾客接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetUserProfile)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.RemoveCartItem)

			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			user.GET("/devices", publicHandler.ListMyDevices)
			user.GET("/devices/:id", publicHandler.GetMyDevice)
			user.POST("/devices", publicHandler.CreateMyDevice)
			user.PUT("/devices/:id", publicHandler.UpdateMyDevice)
			user.DELETE("/devices/:id", publicHandler.DeleteMyDevice)
		}

		// 员工后台接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIP), adminHandler.StaffLogin)

			// 需要鉴权的接口
			authorized := admin.Use(StaffJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), StaffRBACMiddleware(c.AuthzService))
			{
				// 个人资料
				authorized.GET("/me", adminHandler.GetStaffProfile)
				authorized.PUT("/password", adminHandler.ChangeStaffPassword)

				// 员工账号管理
				authorized.GET("/staff", adminHandler.ListStaff)
				authorized.POST("/staff", adminHandler.CreateStaff)
				authorized.PUT("/staff/:id/role", adminHandler.SetStaffRole)
				authorized.GET("/authz/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildStaffPermissionCatalog(r))
				})

				// 库位管理
				authorized.GET("/locations", adminHandler.ListLocations)
				authorized.POST("/locations", adminHandler.CreateLocation)
				authorized.PUT("/locations/:id", adminHandler.UpdateLocation)
				authorized.DELETE("/locations/:id", adminHandler.DeleteLocation)

				// 部门管理
				authorized.GET("/departments", adminHandler.ListAdminDepartments)
				authorized.POST("/departments", adminHandler.CreateDepartment)
				authorized.PUT("/departments/:id", adminHandler.UpdateDepartment)
				authorized.DELETE("/departments/:id", adminHandler.DeleteDepartment)

				// 商品管理
				authorized.GET("/products", adminHandler.ListAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 设备管理
				authorized.GET("/devices", adminHandler.ListAdminDevices)
				authorized.GET("/devices/:id", adminHandler.GetAdminDevice)
				authorized.POST("/devices", adminHandler.CreateAdminDevice)
				authorized.PUT("/devices/:id", adminHandler.UpdateAdminDevice)
				authorized.DELETE("/devices/:id", adminHandler.DeleteAdminDevice)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateAdminOrderStatus)
				authorized.POST("/orders/:id/items", adminHandler.AddAdminOrderItem)
				authorized.PUT("/orders/:id/items/:item_id", adminHandler.UpdateAdminOrderItem)
				authorized.DELETE("/orders/:id/items/:item_id", adminHandler.RemoveAdminOrderItem)

				// 顾客管理
				authorized.GET("/users", adminHandler.ListAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/status", adminHandler.UpdateAdminUserStatus)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type staffPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildStaffPermissionCatalog 枚举后台路由，供角色授权界面选择权限点
func buildStaffPermissionCatalog(engine *gin.Engine) []staffPermissionCatalogItem {
	if engine == nil {
		return []staffPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]staffPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, staffPermissionCatalogItem{
			Module:     deriveStaffPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
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

func deriveStaffPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
