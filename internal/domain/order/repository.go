package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单及明细，需在同一事务内
	Create(ctx context.Context, order *Order) error

	// FindByID 查询订单（含明细）
	FindByID(ctx context.Context, id string) (*Order, error)

	// UpdateStatus 保存状态和快递单号
	// expectedVersion不为nil时仅在版本一致时更新，否则返回ErrStaleOrder
	UpdateStatus(ctx context.Context, order *Order, expectedVersion *int) error

	// Delete 删除订单及明细
	Delete(ctx context.Context, id string) error

	// List 全部订单（含明细），按创建时间倒序
	List(ctx context.Context) ([]*Order, error)

	// ListByUserID 用户的订单，按创建时间倒序
	ListByUserID(ctx context.Context, userID string) ([]*Order, error)

	// Count 订单数量，status为空时统计全部
	Count(ctx context.Context, status Status) (int64, error)

	// ExistsForProduct 是否有订单明细引用该商品
	ExistsForProduct(ctx context.Context, productID string) (bool, error)
}
