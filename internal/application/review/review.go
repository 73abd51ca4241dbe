// Package review 商品评价提交与审核
package review

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// ReviewView 评价
type ReviewView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	ProductID *string   `json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// toReviewView withEmail为false时隐藏邮箱（公开接口）
func toReviewView(r *review.Review, withEmail bool) *ReviewView {
	v := &ReviewView{
		ID:        r.ID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Approved:  r.Approved,
		ProductID: r.ProductID,
		CreatedAt: r.CreatedAt,
	}
	if withEmail {
		v.Email = r.Email
	}
	return v
}

func toReviewViews(reviews []*review.Review, withEmail bool) []*ReviewView {
	views := make([]*ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = toReviewView(r, withEmail)
	}
	return views
}

// Service 评价用例
type Service struct {
	reviews    review.Repository
	products   catalog.ProductRepository
	txManager  outbox.TxRunner
	dispatcher *outbox.Dispatcher
}

func NewService(reviews review.Repository, products catalog.ProductRepository, txManager outbox.TxRunner, dispatcher *outbox.Dispatcher) *Service {
	return &Service{
		reviews:    reviews,
		products:   products,
		txManager:  txManager,
		dispatcher: dispatcher,
	}
}

// SubmitRequest 提交评价
// 请求中的approved字段被忽略，新评价一律待审核
type SubmitRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=2000"`
	ProductID string `json:"productId"`
}

// Submit 公开提交评价，提交后通知管理员审核
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*ReviewView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var productID, userID *string
	if p := user.PrincipalFrom(ctx); p != nil {
		userID = &p.UserID
	}

	var r *review.Review
	err := s.dispatcher.Run(ctx, s.txManager, func(ctx context.Context, batch *outbox.Batch) error {
		productName := ""
		if req.ProductID != "" {
			p, err := s.products.FindByID(ctx, req.ProductID)
			if err != nil {
				return err
			}
			productID, productName = &p.ID, p.Name
		}

		r = review.NewReview(req.Name, req.Email, req.Rating, req.Comment, productID, userID)
		if err := s.reviews.Create(ctx, r); err != nil {
			return err
		}
		batch.Add(event.ReviewSubmitted{Review: r, ProductName: productName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReviewView(r, false), nil
}

// ListApproved 商品已审核的评价
func (s *Service) ListApproved(ctx context.Context, productSlug string) ([]*ReviewView, error) {
	p, err := s.products.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListApprovedByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toReviewViews(reviews, false), nil
}

// List 全部评价（管理员）
func (s *Service) List(ctx context.Context) ([]*ReviewView, error) {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	return toReviewViews(reviews, true), nil
}

// Approve 审核通过后在商品页展示
func (s *Service) Approve(ctx context.Context, id string) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	return s.reviews.SetApproved(ctx, id, true)
}

// Delete 删除评价（管理员）
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
