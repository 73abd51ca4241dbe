// gypsumstore API服务
//
// @title           Gypsum Store API
// @version         1.0
// @description     石膏装饰品网店：店面、结账与后台管理
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/gypsumstore/internal/application/catalog"
	appcontact "github.com/xiebiao/gypsumstore/internal/application/contact"
	appcontent "github.com/xiebiao/gypsumstore/internal/application/content"
	appdashboard "github.com/xiebiao/gypsumstore/internal/application/dashboard"
	appnotification "github.com/xiebiao/gypsumstore/internal/application/notification"
	apporder "github.com/xiebiao/gypsumstore/internal/application/order"
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
	"github.com/xiebiao/gypsumstore/pkg/logger"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
	"github.com/xiebiao/gypsumstore/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	engine, cleanup, err := newEngine(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化服务失败", zap.Error(err))
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("database", cfg.Database.Driver),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.Bool("mq", cfg.MQ.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("启动服务失败", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("收到退出信号，正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("服务关闭超时", zap.Error(err))
	}
}

// newEngine 手动组装依赖链，与wire.go中的InitializeApp一致
// Repository ← Service ← UseCase ← Handler
func newEngine(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	fail := func(err error) (*gin.Engine, func(), error) {
		cleanup()
		return nil, nil, err
	}

	// 基础设施层
	db, closeDB, err := provideDB(cfg, log)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeDB)

	redisClient, closeRedis, err := provideRedis(cfg, log)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeRedis)

	userRepo := gormstore.NewUserRepository(db)
	orderRepo := gormstore.NewOrderRepository(db)
	productRepo := gormstore.NewProductRepository(db)
	categoryRepo := gormstore.NewCategoryRepository(db)
	reviewRepo := gormstore.NewReviewRepository(db)
	contactRepo := gormstore.NewContactRepository(db)
	notificationRepo := gormstore.NewNotificationRepository(db)
	txManager := gormstore.NewTxManager(db)

	jwtManager := provideJWTManager(cfg)
	sessionStore := provideSessionStore(redisClient)
	searchCache := provideSearchCache(cfg, redisClient)

	mailer, err := provideMailer(cfg, log)
	if err != nil {
		return fail(err)
	}

	// 领域层
	userService := user.NewService(userRepo)
	catalogService := catalog.NewService(productRepo, categoryRepo)
	notificationService := notification.NewService(notificationRepo)

	dispatcher, closeMQ, err := provideDispatcher(cfg, notificationService, mailer, log)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, closeMQ)

	// 应用层与接口层
	handlers := &router.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessionStore, log),
			appuser.NewRefreshUseCase(jwtManager, userRepo, sessionStore, log),
			appuser.NewLogoutUseCase(jwtManager, sessionStore),
			appuser.NewAccountService(userService),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orderRepo, productRepo, txManager, dispatcher,
				provideCalculator(cfg), providePricePolicy(cfg), log),
			apporder.NewSetStatusUseCase(orderRepo, txManager, dispatcher, log),
			apporder.NewQueryService(orderRepo, userRepo),
		),
		Catalog: handler.NewCatalogHandler(
			appcatalog.NewQueryService(catalogService, productRepo, categoryRepo, searchCache, log),
			appcatalog.NewAdminService(catalogService, productRepo, reviewRepo, orderRepo, txManager, searchCache, log),
		),
		Review:       handler.NewReviewHandler(appreview.NewService(reviewRepo, productRepo, txManager, dispatcher)),
		Contact:      handler.NewContactHandler(appcontact.NewService(contactRepo, txManager, dispatcher)),
		Notification: handler.NewNotificationHandler(appnotification.NewFeed(notificationService)),
		Content: handler.NewContentHandler(appcontent.NewService(
			gormstore.NewPageRepository(db),
			gormstore.NewPostRepository(db),
			gormstore.NewBannerRepository(db),
			gormstore.NewGalleryRepository(db),
		)),
		Dashboard: handler.NewDashboardHandler(appdashboard.NewService(
			orderRepo, productRepo, reviewRepo, contactRepo, notificationRepo,
		)),
	}

	auth := middleware.NewAuthMiddleware(jwtManager, provideBlacklist(redisClient), userRepo, log)
	return router.New(cfg, handlers, auth, log), cleanup, nil
}
