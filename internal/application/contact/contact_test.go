package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

func TestContactService(t *testing.T) {
	db, err := gormstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })

	notifications := gormstore.NewNotificationRepository(db)
	dispatcher := outbox.NewDispatcher(zap.NewNop(), outbox.NewNotificationHandler(notification.NewService(notifications)))
	svc := NewService(gormstore.NewContactRepository(db), gormstore.NewTxManager(db), dispatcher)

	ctx := context.Background()
	admin := user.WithPrincipal(ctx, &user.Principal{UserID: "admin-1", Role: user.RoleAdmin})

	msg, err := svc.Submit(ctx, SubmitRequest{
		Name:    "Петя",
		Email:   "petya@example.com",
		Subject: "Оферта",
		Message: "Искам оферта за 20 метра корниз",
	})
	require.NoError(t, err)
	assert.False(t, msg.Read)

	t.Run("留言产生一条通知", func(t *testing.T) {
		recent, err := notifications.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, notification.TypeNewMessage, recent[0].Type)
		assert.Equal(t, "/admin/messages", recent[0].Link)
	})

	t.Run("留言过短", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitRequest{Name: "Петя", Email: "petya@example.com", Message: "кратко"})
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	})

	t.Run("列表仅管理员", func(t *testing.T) {
		_, err := svc.List(ctx)
		assert.ErrorIs(t, err, user.ErrUnauthorized)

		list, err := svc.List(admin)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("重复标记已读", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(admin, msg.ID))
		require.NoError(t, svc.MarkRead(admin, msg.ID))

		list, err := svc.List(admin)
		require.NoError(t, err)
		assert.True(t, list[0].Read)
	})

	t.Run("删除留言", func(t *testing.T) {
		require.NoError(t, svc.Delete(admin, msg.ID))
		assert.ErrorIs(t, svc.MarkRead(admin, msg.ID), contact.ErrMessageNotFound)
	})
}
