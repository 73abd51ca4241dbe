package contact

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var ErrMessageNotFound = apperrors.New(apperrors.ErrCodeMessageNotFound, "留言不存在")

// Message 联系我们留言
type Message struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NewMessage 创建未读留言
func NewMessage(name, email, phone, subject, message string) *Message {
	return &Message{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now(),
	}
}

// Repository 留言仓储接口
type Repository interface {
	Create(ctx context.Context, m *Message) error

	FindByID(ctx context.Context, id string) (*Message, error)

	// List 全部留言，新的在前
	List(ctx context.Context) ([]*Message, error)

	// MarkRead 幂等
	MarkRead(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	CountUnread(ctx context.Context) (int64, error)
}
