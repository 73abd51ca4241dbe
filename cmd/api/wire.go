//go:build wireinject
// +build wireinject

// Wire依赖注入配置，运行 `wire gen ./cmd/api` 生成wire_gen.go
// main.go中的newEngine是同一依赖链的手动版本

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/gypsumstore/internal/application/catalog"
	appcontact "github.com/xiebiao/gypsumstore/internal/application/contact"
	appcontent "github.com/xiebiao/gypsumstore/internal/application/content"
	appdashboard "github.com/xiebiao/gypsumstore/internal/application/dashboard"
	appnotification "github.com/xiebiao/gypsumstore/internal/application/notification"
	apporder "github.com/xiebiao/gypsumstore/internal/application/order"
	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	appreview "github.com/xiebiao/gypsumstore/internal/application/review"
	appuser "github.com/xiebiao/gypsumstore/internal/application/user"
	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/config"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	"github.com/xiebiao/gypsumstore/internal/interface/http/handler"
	"github.com/xiebiao/gypsumstore/internal/interface/http/middleware"
	"github.com/xiebiao/gypsumstore/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、邮件与提交后处理器
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideSessionStore,
	provideBlacklist,
	provideSearchCache,
	provideMailer,
	provideDispatcher,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	gormstore.NewUserRepository,
	gormstore.NewOrderRepository,
	gormstore.NewProductRepository,
	gormstore.NewCategoryRepository,
	gormstore.NewReviewRepository,
	gormstore.NewContactRepository,
	gormstore.NewNotificationRepository,
	gormstore.NewPageRepository,
	gormstore.NewPostRepository,
	gormstore.NewBannerRepository,
	gormstore.NewGalleryRepository,
	gormstore.NewTxManager,
	wire.Bind(new(outbox.TxRunner), new(*gormstore.TxManager)),
	wire.Bind(new(appcatalog.TxManager), new(*gormstore.TxManager)),
)

// domainSet 领域服务与计价规则
var domainSet = wire.NewSet(
	user.NewService,
	catalog.NewService,
	notification.NewService,
	provideCalculator,
	providePricePolicy,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewAccountService,
	apporder.NewCreateOrderUseCase,
	apporder.NewSetStatusUseCase,
	apporder.NewQueryService,
	appcatalog.NewQueryService,
	appcatalog.NewAdminService,
	appreview.NewService,
	appcontact.NewService,
	appnotification.NewFeed,
	appcontent.NewService,
	appdashboard.NewService,
)

// middlewareSet JWT与认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	wire.Bind(new(middleware.UserLookup), new(user.Repository)),
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewOrderHandler,
	handler.NewCatalogHandler,
	handler.NewReviewHandler,
	handler.NewContactHandler,
	handler.NewNotificationHandler,
	handler.NewContentHandler,
	handler.NewDashboardHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装完整的Gin引擎
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}
