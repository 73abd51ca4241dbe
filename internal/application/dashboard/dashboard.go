// Package dashboard 后台首页统计
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
)

// Stats 后台统计
type Stats struct {
	Orders              int64 `json:"orders"`
	PendingOrders       int64 `json:"pendingOrders"`
	Products            int64 `json:"products"`
	PendingReviews      int64 `json:"pendingReviews"`
	UnreadMessages      int64 `json:"unreadMessages"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

// Service 统计用例
type Service struct {
	orders        order.Repository
	products      catalog.ProductRepository
	reviews       review.Repository
	messages      contact.Repository
	notifications notification.Repository
}

func NewService(
	orders order.Repository,
	products catalog.ProductRepository,
	reviews review.Repository,
	messages contact.Repository,
	notifications notification.Repository,
) *Service {
	return &Service{
		orders:        orders,
		products:      products,
		reviews:       reviews,
		messages:      messages,
		notifications: notifications,
	}
}

// Stats 并发查询各项数量，任一失败即返回错误
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Orders, err = s.orders.Count(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.PendingOrders, err = s.orders.Count(ctx, order.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.Products, err = s.products.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingReviews, err = s.reviews.CountPending(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadMessages, err = s.messages.CountUnread(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadNotifications, err = s.notifications.CountUnread(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
