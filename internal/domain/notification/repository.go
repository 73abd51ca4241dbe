package notification

import (
	"context"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var ErrNotificationNotFound = apperrors.New(apperrors.ErrCodeNotFound, "通知不存在")

// Repository 通知仓储接口
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// ListRecent 最近的limit条通知
	ListRecent(ctx context.Context, limit int) ([]*Notification, error)

	CountUnread(ctx context.Context) (int64, error)

	// MarkRead 标记已读，通知不存在时返回ErrNotificationNotFound
	MarkRead(ctx context.Context, id string) error

	MarkAllRead(ctx context.Context) error

	Delete(ctx context.Context, id string) error
}
