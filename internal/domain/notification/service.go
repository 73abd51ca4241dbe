package notification

import (
	"context"
)

// Service 通知服务
type Service interface {
	Create(ctx context.Context, typ Type, title, message, link string) (*Notification, error)

	ListRecent(ctx context.Context) ([]*Notification, error)

	CountUnread(ctx context.Context) (int64, error)

	// MarkRead 幂等，重复标记不报错
	MarkRead(ctx context.Context, id string) error

	MarkAllRead(ctx context.Context) error

	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService 创建通知服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, typ Type, title, message, link string) (*Notification, error) {
	n := New(typ, title, message, link)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) ListRecent(ctx context.Context) ([]*Notification, error) {
	return s.repo.ListRecent(ctx, RecentLimit)
}

func (s *service) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
