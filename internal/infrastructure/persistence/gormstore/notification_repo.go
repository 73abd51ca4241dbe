package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建通知失败")
	}
	n.ID = model.ID
	return nil
}

// ListRecent 最近的通知，新的在前
func (r *notificationRepository) ListRecent(ctx context.Context, limit int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = notification.RecentLimit
	}

	var models []NotificationModel
	if err := conn(ctx, r.db).Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询通知失败")
	}

	list := make([]*notification.Notification, len(models))
	for i, m := range models {
		list[i] = &notification.Notification{
			ID:        m.ID,
			Type:      notification.Type(m.Type),
			Title:     m.Title,
			Message:   m.Message,
			Link:      m.Link,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		}
	}
	return list, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&NotificationModel{}).Where(map[string]interface{}{"read": false}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计未读通知失败")
	}
	return total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	db := conn(ctx, r.db)
	var count int64
	if err := db.Model(&NotificationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询通知失败")
	}
	if count == 0 {
		return notification.ErrNotificationNotFound
	}
	if err := db.Model(&NotificationModel{}).Where("id = ?", id).Update("read", true).Error; err != nil {
		return apperrors.Wrap(err, "更新通知失败")
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	err := conn(ctx, r.db).Model(&NotificationModel{}).Where(map[string]interface{}{"read": false}).Update("read", true).Error
	if err != nil {
		return apperrors.Wrap(err, "更新通知失败")
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&NotificationModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除通知失败")
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}
