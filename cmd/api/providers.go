package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appcatalog "github.com/xiebiao/gypsumstore/internal/application/catalog"
	apporder "github.com/xiebiao/gypsumstore/internal/application/order"
	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	appuser "github.com/xiebiao/gypsumstore/internal/application/user"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/config"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/mail"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/messaging"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/gypsumstore/internal/interface/http/middleware"
	"github.com/xiebiao/gypsumstore/pkg/jwt"
	"github.com/xiebiao/gypsumstore/pkg/mq"
)

const storeName = "Gypsum Store"

// 以下Provider同时供main.go手动组装和wire.go使用
// 可选组件（Redis、MQ）未启用时返回nil接口，不能返回带类型的nil指针

func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := gormstore.NewDB(cfg.Database, cfg.Server.Mode, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := gormstore.Close(db); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis未启用，登出黑名单和搜索缓存关闭")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(context.Background(), cfg.Redis, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

func provideSessionStore(client *goredis.Client) appuser.SessionStore {
	if client == nil {
		return nil
	}
	return redis.NewSessionStore(client)
}

func provideBlacklist(client *goredis.Client) middleware.Blacklist {
	if client == nil {
		return nil
	}
	return redis.NewSessionStore(client)
}

func provideSearchCache(cfg *config.Config, client *goredis.Client) appcatalog.SearchCache {
	if client == nil {
		return nil
	}
	return redis.NewSearchCache(client, cfg.Cache.SearchTTL)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideCalculator(cfg *config.Config) order.Calculator {
	return order.NewCalculator(
		decimal.NewFromFloat(cfg.Order.FreeDeliveryThreshold),
		decimal.NewFromFloat(cfg.Order.StandardDeliveryFee),
	)
}

func providePricePolicy(cfg *config.Config) apporder.PricePolicy {
	return apporder.PricePolicy(cfg.Order.PricePolicy)
}

func provideMailer(cfg *config.Config, log *zap.Logger) (outbox.OrderMailer, error) {
	sender, err := mail.NewSender(cfg.Mail, log)
	if err != nil {
		return nil, err
	}
	mailer, err := mail.NewMailer(sender, storeName, log)
	if err != nil {
		return nil, err
	}
	return mailer, nil
}

// provideDispatcher 提交后处理器：通知 → 邮件 → 消息队列（启用时）
func provideDispatcher(
	cfg *config.Config,
	notifications notification.Service,
	mailer outbox.OrderMailer,
	log *zap.Logger,
) (*outbox.Dispatcher, func(), error) {
	dispatcher := outbox.NewDispatcher(log,
		outbox.NewNotificationHandler(notifications),
		outbox.NewEmailHandler(mailer),
	)
	if !cfg.MQ.Enabled {
		return dispatcher, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", log)
	if err != nil {
		return nil, nil, err
	}
	dispatcher.Register(messaging.NewEventPublisher(publisher))
	return dispatcher, func() { _ = publisher.Close() }, nil
}
