package content

import (
	"context"
)

// PageRepository 页面仓储接口
type PageRepository interface {
	Create(ctx context.Context, page *Page) error
	FindByID(ctx context.Context, id string) (*Page, error)
	FindBySlug(ctx context.Context, slug string) (*Page, error)
	Update(ctx context.Context, page *Page) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Page, error)
}

// PostRepository 文章仓储接口
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	// List publishedOnly为true时只返回已发布文章，按发布时间倒序
	List(ctx context.Context, publishedOnly bool) ([]*Post, error)
}

// BannerRepository 横幅仓储接口
type BannerRepository interface {
	Create(ctx context.Context, banner *Banner) error
	FindByID(ctx context.Context, id string) (*Banner, error)
	Update(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id string) error
	// List activeOnly为true时只返回启用的横幅，按Position排序
	List(ctx context.Context, activeOnly bool) ([]*Banner, error)
}

// GalleryRepository 图库仓储接口
type GalleryRepository interface {
	Create(ctx context.Context, item *GalleryItem) error
	FindByID(ctx context.Context, id string) (*GalleryItem, error)
	Update(ctx context.Context, item *GalleryItem) error
	Delete(ctx context.Context, id string) error
	// List activeOnly为true时只返回展示中的图片，按Position排序
	List(ctx context.Context, activeOnly bool) ([]*GalleryItem, error)
}
