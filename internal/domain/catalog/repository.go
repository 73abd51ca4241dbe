package catalog

import (
	"context"
)

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error

	// FindByID 查询商品（含分类）
	FindByID(ctx context.Context, id string) (*Product, error)

	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindByIDs 批量查询，不存在的ID不出现在结果中
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)

	Update(ctx context.Context, product *Product) error

	Delete(ctx context.Context, id string) error

	// List 分页查询商品
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// Search 按名称、描述、分类名称模糊匹配
	Search(ctx context.Context, keyword string, limit int) ([]*Product, error)

	Count(ctx context.Context) (int64, error)

	// CountByCategory 分类下的商品数量
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error

	FindByID(ctx context.Context, id string) (*Category, error)

	FindBySlug(ctx context.Context, slug string) (*Category, error)

	Update(ctx context.Context, category *Category) error

	Delete(ctx context.Context, id string) error

	// List 全部分类，按名称排序
	List(ctx context.Context) ([]*Category, error)

	// ListChildren 直接子分类
	ListChildren(ctx context.Context, parentID string) ([]*Category, error)
}

// ListParams 商品列表查询参数
type ListParams struct {
	Page        int      // 页码(从1开始)
	PageSize    int      // 每页数量
	CategoryIDs []string // 分类过滤（含子分类）
	Featured    *bool    // 推荐过滤
	InStock     *bool    // 库存过滤
	SortBy      string   // price_asc | price_desc | newest
}

// Normalize 填充默认分页参数
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}
