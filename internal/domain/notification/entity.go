package notification

import "time"

// Type 通知类型
type Type string

const (
	TypeNewOrder    Type = "new_order"
	TypeOrderStatus Type = "order_status"
	TypeNewReview   Type = "new_review"
	TypeNewMessage  Type = "new_message"
)

// RecentLimit 通知列表默认条数
const RecentLimit = 10

// Notification 后台通知
type Notification struct {
	ID        string
	Type      Type
	Title     string
	Message   string
	Link      string // 可选，后台跳转地址
	Read      bool
	CreatedAt time.Time
}

// New 创建未读通知
func New(typ Type, title, message, link string) *Notification {
	return &Notification{
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		Read:      false,
		CreatedAt: time.Now(),
	}
}
