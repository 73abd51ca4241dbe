package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
)

func TestFeed(t *testing.T) {
	db, err := gormstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })

	svc := notification.NewService(gormstore.NewNotificationRepository(db))
	feed := NewFeed(svc)
	ctx := context.Background()
	admin := user.WithPrincipal(ctx, &user.Principal{UserID: "admin-1", Role: user.RoleAdmin})

	first, err := svc.Create(ctx, notification.TypeNewOrder, "New order", "Order ABC", "/admin/orders/abc")
	require.NoError(t, err)
	_, err = svc.Create(ctx, notification.TypeNewReview, "New review", "5/5", "")
	require.NoError(t, err)

	t.Run("仅管理员", func(t *testing.T) {
		_, err := feed.Recent(ctx)
		assert.ErrorIs(t, err, user.ErrUnauthorized)
		customer := user.WithPrincipal(ctx, &user.Principal{UserID: "u-1", Role: user.RoleUser})
		_, err = feed.UnreadCount(customer)
		assert.ErrorIs(t, err, user.ErrForbidden)
	})

	t.Run("最近通知", func(t *testing.T) {
		list, err := feed.Recent(admin)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("标记已读幂等", func(t *testing.T) {
		require.NoError(t, feed.MarkRead(admin, first.ID))
		require.NoError(t, feed.MarkRead(admin, first.ID))

		n, err := feed.UnreadCount(admin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("全部已读", func(t *testing.T) {
		require.NoError(t, feed.MarkAllRead(admin))
		n, err := feed.UnreadCount(admin)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, feed.Delete(admin, first.ID))
		assert.ErrorIs(t, feed.MarkRead(admin, first.ID), notification.ErrNotificationNotFound)
	})
}
