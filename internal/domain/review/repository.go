package review

import (
	"context"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

// Repository 评价仓储接口
type Repository interface {
	Create(ctx context.Context, review *Review) error

	FindByID(ctx context.Context, id string) (*Review, error)

	// SetApproved 设置审核状态
	SetApproved(ctx context.Context, id string, approved bool) error

	Delete(ctx context.Context, id string) error

	// DeleteByProduct 删除商品的全部评价
	DeleteByProduct(ctx context.Context, productID string) error

	// ListApprovedByProduct 已审核的商品评价，新的在前
	ListApprovedByProduct(ctx context.Context, productID string) ([]*Review, error)

	// List 全部评价，新的在前（后台）
	List(ctx context.Context) ([]*Review, error)

	// CountPending 待审核数量
	CountPending(ctx context.Context) (int64, error)
}
