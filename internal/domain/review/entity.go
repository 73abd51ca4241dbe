package review

import (
	"strings"
	"time"
)

// Review 商品评价，提交后需管理员审核才对外展示
type Review struct {
	ID        string
	Name      string
	Email     string
	Rating    int // 1-5
	Comment   string
	Approved  bool
	ProductID *string
	UserID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建待审核评价，Approved固定为false
func NewReview(name, email string, rating int, comment string, productID, userID *string) *Review {
	now := time.Now()
	return &Review{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		Approved:  false,
		ProductID: productID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Approve 审核通过
func (r *Review) Approve() {
	r.Approved = true
	r.UpdatedAt = time.Now()
}
