// Package contact 联系我们留言
package contact

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// MessageView 留言
type MessageView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageView(m *contact.Message) *MessageView {
	return &MessageView{
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

// Service 留言用例
type Service struct {
	messages   contact.Repository
	txManager  outbox.TxRunner
	dispatcher *outbox.Dispatcher
}

func NewService(messages contact.Repository, txManager outbox.TxRunner, dispatcher *outbox.Dispatcher) *Service {
	return &Service{messages: messages, txManager: txManager, dispatcher: dispatcher}
}

// SubmitRequest 联系表单
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=32"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Submit 保存留言，提交后通知管理员
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*MessageView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	m := contact.NewMessage(req.Name, req.Email, req.Phone, req.Subject, req.Message)
	err := s.dispatcher.Run(ctx, s.txManager, func(ctx context.Context, batch *outbox.Batch) error {
		if err := s.messages.Create(ctx, m); err != nil {
			return err
		}
		batch.Add(event.ContactMessageReceived{Message: m})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMessageView(m), nil
}

// List 全部留言（管理员）
func (s *Service) List(ctx context.Context) ([]*MessageView, error) {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*MessageView, len(messages))
	for i, m := range messages {
		views[i] = toMessageView(m)
	}
	return views, nil
}

// MarkRead 标记已读，重复调用无副作用
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	return s.messages.Delete(ctx, id)
}
