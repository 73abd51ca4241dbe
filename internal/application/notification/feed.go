// Package notification 后台通知列表
package notification

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
)

// NotificationView 通知
type NotificationView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feed 管理员通知用例，全部操作要求管理员
type Feed struct {
	svc notification.Service
}

func NewFeed(svc notification.Service) *Feed {
	return &Feed{svc: svc}
}

func admin(ctx context.Context) error {
	return user.PolicyAdmin.Check(user.PrincipalFrom(ctx))
}

// Recent 最近的通知，新的在前
func (f *Feed) Recent(ctx context.Context) ([]*NotificationView, error) {
	if err := admin(ctx); err != nil {
		return nil, err
	}
	list, err := f.svc.ListRecent(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*NotificationView, len(list))
	for i, n := range list {
		views[i] = &NotificationView{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return views, nil
}

func (f *Feed) UnreadCount(ctx context.Context) (int64, error) {
	if err := admin(ctx); err != nil {
		return 0, err
	}
	return f.svc.CountUnread(ctx)
}

func (f *Feed) MarkRead(ctx context.Context, id string) error {
	if err := admin(ctx); err != nil {
		return err
	}
	return f.svc.MarkRead(ctx, id)
}

func (f *Feed) MarkAllRead(ctx context.Context) error {
	if err := admin(ctx); err != nil {
		return err
	}
	return f.svc.MarkAllRead(ctx)
}

func (f *Feed) Delete(ctx context.Context, id string) error {
	if err := admin(ctx); err != nil {
		return err
	}
	return f.svc.Delete(ctx, id)
}
