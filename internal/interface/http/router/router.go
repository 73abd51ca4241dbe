// Package router 路由注册
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/gypsumstore/docs"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/config"
	"github.com/xiebiao/gypsumstore/internal/interface/http/handler"
	"github.com/xiebiao/gypsumstore/internal/interface/http/middleware"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	User         *handler.UserHandler
	Order        *handler.OrderHandler
	Catalog      *handler.CatalogHandler
	Review       *handler.ReviewHandler
	Contact      *handler.ContactHandler
	Notification *handler.NotificationHandler
	Content      *handler.ContentHandler
	Dashboard    *handler.DashboardHandler
}

// New 创建Gin引擎并注册中间件和路由
// 中间件顺序：请求日志 → Panic恢复 → 指标 → CORS
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware, log *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	registerStorefront(v1, h, auth)
	registerAdmin(v1.Group("/admin", auth.Require(user.PolicyAdmin)), h)

	return r
}

// registerStorefront 店面接口，Token可选
func registerStorefront(v1 *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	public := v1.Group("", auth.Require(user.PolicyPublic))
	{
		public.POST("/orders", h.Order.CreateOrder)
		public.GET("/orders/:id", h.Order.GetOrder)

		public.GET("/search", h.Catalog.Search)
		public.GET("/categories", h.Catalog.ListCategories)
		public.GET("/categories/:slug", h.Catalog.GetCategory)
		public.GET("/products", h.Catalog.ListProducts)
		public.GET("/products/:slug", h.Catalog.GetProduct)
		public.GET("/products/:slug/reviews", h.Review.ListForProduct)

		public.POST("/reviews", h.Review.Submit)
		public.POST("/contact", h.Contact.Submit)

		public.GET("/pages/:slug", h.Content.GetPage)
		public.GET("/posts", h.Content.ListPosts)
		public.GET("/posts/:slug", h.Content.GetPost)
		public.GET("/banners", h.Content.ListBanners)
		public.GET("/gallery", h.Content.ListGallery)

		public.POST("/users/register", h.User.Register)
		public.POST("/users/login", h.User.Login)
		public.POST("/users/refresh", h.User.Refresh)
	}

	authed := v1.Group("", auth.Require(user.PolicyAuthenticated))
	{
		authed.POST("/users/logout", h.User.Logout)
		authed.PUT("/users/password", h.User.ChangePassword)
		authed.GET("/me/orders", h.Order.ListMyOrders)
	}
}

// registerAdmin 后台接口，需要ADMIN角色
func registerAdmin(admin *gin.RouterGroup, h *Handlers) {
	admin.GET("/dashboard", h.Dashboard.Stats)

	admin.GET("/orders", h.Order.ListOrders)
	admin.PATCH("/orders/:id/status", h.Order.SetStatus)
	admin.DELETE("/orders/:id", h.Order.DeleteOrder)

	admin.POST("/categories", h.Catalog.CreateCategory)
	admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	admin.POST("/products", h.Catalog.CreateProduct)
	admin.PUT("/products/:id", h.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", h.Catalog.DeleteProduct)

	admin.GET("/reviews", h.Review.List)
	admin.POST("/reviews/:id/approve", h.Review.Approve)
	admin.DELETE("/reviews/:id", h.Review.Delete)

	admin.GET("/messages", h.Contact.List)
	admin.POST("/messages/:id/read", h.Contact.MarkRead)
	admin.DELETE("/messages/:id", h.Contact.Delete)

	admin.GET("/notifications", h.Notification.Recent)
	admin.GET("/notifications/unread-count", h.Notification.UnreadCount)
	admin.POST("/notifications/read-all", h.Notification.MarkAllRead)
	admin.POST("/notifications/:id/read", h.Notification.MarkRead)
	admin.DELETE("/notifications/:id", h.Notification.Delete)

	admin.GET("/users", h.User.ListUsers)
	admin.PUT("/users/:id/role", h.User.SetRole)
	admin.DELETE("/users/:id", h.User.DeleteUser)

	admin.GET("/pages", h.Content.ListAllPages)
	admin.POST("/pages", h.Content.CreatePage)
	admin.PUT("/pages/:id", h.Content.UpdatePage)
	admin.DELETE("/pages/:id", h.Content.DeletePage)

	admin.GET("/posts", h.Content.ListAllPosts)
	admin.POST("/posts", h.Content.CreatePost)
	admin.PUT("/posts/:id", h.Content.UpdatePost)
	admin.DELETE("/posts/:id", h.Content.DeletePost)

	admin.GET("/banners", h.Content.ListAllBanners)
	admin.POST("/banners", h.Content.CreateBanner)
	admin.PUT("/banners/:id", h.Content.UpdateBanner)
	admin.DELETE("/banners/:id", h.Content.DeleteBanner)
	admin.GET("/gallery", h.Content.ListAllGallery)
	admin.POST("/gallery", h.Content.CreateGalleryItem)
	admin.PUT("/gallery/:id", h.Content.UpdateGalleryItem)
	admin.DELETE("/gallery/:id", h.Content.DeleteGalleryItem)
}
