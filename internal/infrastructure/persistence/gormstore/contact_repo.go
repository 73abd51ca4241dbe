package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建留言仓储
func NewContactRepository(db *gorm.DB) contact.Repository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, m *contact.Message) error {
	model := &ContactMessageModel{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存留言失败")
	}
	m.ID = model.ID
	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*contact.Message, error) {
	var model ContactMessageModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contact.ErrMessageNotFound
		}
		return nil, apperrors.Wrap(err, "查询留言失败")
	}
	return toMessageEntity(&model), nil
}

func (r *contactRepository) List(ctx context.Context) ([]*contact.Message, error) {
	var models []ContactMessageModel
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询留言列表失败")
	}
	list := make([]*contact.Message, len(models))
	for i := range models {
		list[i] = toMessageEntity(&models[i])
	}
	return list, nil
}

// MarkRead 已读的留言重复标记不报错
func (r *contactRepository) MarkRead(ctx context.Context, id string) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	if err := conn(ctx, r.db).Model(&ContactMessageModel{}).Where("id = ?", id).Update("read", true).Error; err != nil {
		return apperrors.Wrap(err, "更新留言失败")
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&ContactMessageModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除留言失败")
	}
	if result.RowsAffected == 0 {
		return contact.ErrMessageNotFound
	}
	return nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&ContactMessageModel{}).Where(map[string]interface{}{"read": false}).Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未读留言失败")
	}
	return total, nil
}

func toMessageEntity(m *ContactMessageModel) *contact.Message {
	return &contact.Message{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
