// Package content 静态页面、博客文章、作品图库和首页横幅
//
// 公开接口只返回已发布的页面、文章和启用的横幅、图片，写操作要求管理员。
package content

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/content"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// PageView 页面
type PageView struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"metaDescription,omitempty"`
	Published       bool      `json:"published"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PostView 文章
type PostView struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BannerView 横幅
type BannerView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// GalleryItemView 图库图片
type GalleryItemView struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Caption  string `json:"caption,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

func toPageView(p *content.Page) *PageView {
	return &PageView{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Content:         p.Content,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		UpdatedAt:       p.UpdatedAt,
	}
}

// toPostView withContent为false时只返回摘要（列表）
func toPostView(p *content.Post, withContent bool) *PostView {
	v := &PostView{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
	}
	if withContent {
		v.Content = p.Content
	}
	return v
}

func toBannerView(b *content.Banner) *BannerView {
	return &BannerView{
		ID:       b.ID,
		Title:    b.Title,
		Subtitle: b.Subtitle,
		Image:    b.Image,
		Link:     b.Link,
		Position: b.Position,
		Active:   b.Active,
	}
}

func toGalleryItemView(item *content.GalleryItem) *GalleryItemView {
	return &GalleryItemView{
		ID:       item.ID,
		Image:    item.Image,
		Caption:  item.Caption,
		Position: item.Position,
		Active:   item.Active,
	}
}

// Service 内容用例
type Service struct {
	pages   content.PageRepository
	posts   content.PostRepository
	banners content.BannerRepository
	gallery content.GalleryRepository
}

func NewService(
	pages content.PageRepository,
	posts content.PostRepository,
	banners content.BannerRepository,
	gallery content.GalleryRepository,
) *Service {
	return &Service{pages: pages, posts: posts, banners: banners, gallery: gallery}
}

func guard(ctx context.Context, req interface{}) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	if req == nil {
		return nil
	}
	return validation.Struct(req)
}

func isAdmin(ctx context.Context) bool {
	return user.PrincipalFrom(ctx).IsAdmin()
}

// =========================================
// 页面
// =========================================

// PageRequest 创建/修改页面
type PageRequest struct {
	Slug            string `json:"slug" validate:"omitempty,max=200"`
	Title           string `json:"title" validate:"required,max=200"`
	Content         string `json:"content" validate:"required"`
	MetaDescription string `json:"metaDescription" validate:"max=300"`
	Published       bool   `json:"published"`
}

// GetPage 按slug查询页面，未发布页面只对管理员可见
func (s *Service) GetPage(ctx context.Context, slug string) (*PageView, error) {
	p, err := s.pages.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published && !isAdmin(ctx) {
		return nil, content.ErrPageNotFound
	}
	return toPageView(p), nil
}

func (s *Service) ListPages(ctx context.Context) ([]*PageView, error) {
	if err := guard(ctx, nil); err != nil {
		return nil, err
	}
	pages, err := s.pages.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*PageView, len(pages))
	for i, p := range pages {
		views[i] = toPageView(p)
	}
	return views, nil
}

func (s *Service) CreatePage(ctx context.Context, req PageRequest) (*PageView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &content.Page{CreatedAt: now}
	applyPage(p, req)
	if err := s.pages.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPageView(p), nil
}

func (s *Service) UpdatePage(ctx context.Context, id string, req PageRequest) (*PageView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	p, err := s.pages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPage(p, req)
	if err := s.pages.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPageView(p), nil
}

func (s *Service) DeletePage(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	return s.pages.Delete(ctx, id)
}

func applyPage(p *content.Page, req PageRequest) {
	p.Slug = slugOr(req.Slug, req.Title)
	p.Title = req.Title
	p.Content = req.Content
	p.MetaDescription = req.MetaDescription
	p.Published = req.Published
	p.Normalize()
}

// =========================================
// 文章
// =========================================

// PostRequest 创建/修改文章
type PostRequest struct {
	Slug       string `json:"slug" validate:"omitempty,max=200"`
	Title      string `json:"title" validate:"required,max=200"`
	Excerpt    string `json:"excerpt" validate:"max=500"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"coverImage" validate:"max=500"`
	Published  bool   `json:"published"`
}

// ListPosts 已发布文章，按发布时间倒序
func (s *Service) ListPosts(ctx context.Context) ([]*PostView, error) {
	return s.listPosts(ctx, true)
}

// ListAllPosts 全部文章（管理员）
func (s *Service) ListAllPosts(ctx context.Context) ([]*PostView, error) {
	if err := guard(ctx, nil); err != nil {
		return nil, err
	}
	return s.listPosts(ctx, false)
}

func (s *Service) listPosts(ctx context.Context, publishedOnly bool) ([]*PostView, error) {
	posts, err := s.posts.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	views := make([]*PostView, len(posts))
	for i, p := range posts {
		views[i] = toPostView(p, false)
	}
	return views, nil
}

// GetPost 按slug查询文章，未发布文章只对管理员可见
func (s *Service) GetPost(ctx context.Context, slug string) (*PostView, error) {
	p, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published && !isAdmin(ctx) {
		return nil, content.ErrPostNotFound
	}
	return toPostView(p, true), nil
}

func (s *Service) CreatePost(ctx context.Context, req PostRequest) (*PostView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	p := &content.Post{CreatedAt: time.Now()}
	applyPost(p, req)
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPostView(p, true), nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, req PostRequest) (*PostView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPost(p, req)
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPostView(p, true), nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

func applyPost(p *content.Post, req PostRequest) {
	p.Slug = slugOr(req.Slug, req.Title)
	p.Title = req.Title
	p.Excerpt = req.Excerpt
	p.Content = req.Content
	p.CoverImage = req.CoverImage
	p.Publish(req.Published)
}

// =========================================
// 横幅
// =========================================

// BannerRequest 创建/修改横幅
type BannerRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Subtitle string `json:"subtitle" validate:"max=300"`
	Image    string `json:"image" validate:"required,max=500"`
	Link     string `json:"link" validate:"max=500"`
	Position int    `json:"position" validate:"gte=0"`
	Active   bool   `json:"active"`
}

// ListBanners 启用的横幅，按位置排序
func (s *Service) ListBanners(ctx context.Context) ([]*BannerView, error) {
	return s.listBanners(ctx, true)
}

// ListAllBanners 全部横幅（管理员）
func (s *Service) ListAllBanners(ctx context.Context) ([]*BannerView, error) {
	if err := guard(ctx, nil); err != nil {
		return nil, err
	}
	return s.listBanners(ctx, false)
}

func (s *Service) listBanners(ctx context.Context, activeOnly bool) ([]*BannerView, error) {
	banners, err := s.banners.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	views := make([]*BannerView, len(banners))
	for i, b := range banners {
		views[i] = toBannerView(b)
	}
	return views, nil
}

func (s *Service) CreateBanner(ctx context.Context, req BannerRequest) (*BannerView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	b := &content.Banner{CreatedAt: time.Now()}
	applyBanner(b, req)
	if err := s.banners.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBannerView(b), nil
}

func (s *Service) UpdateBanner(ctx context.Context, id string, req BannerRequest) (*BannerView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	b, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBanner(b, req)
	if err := s.banners.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBannerView(b), nil
}

func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	return s.banners.Delete(ctx, id)
}

func applyBanner(b *content.Banner, req BannerRequest) {
	b.Title = req.Title
	b.Subtitle = req.Subtitle
	b.Image = req.Image
	b.Link = req.Link
	b.Position = req.Position
	b.Active = req.Active
	b.UpdatedAt = time.Now()
}

// =========================================
// 图库
// =========================================

// GalleryItemRequest 创建/修改图库图片
type GalleryItemRequest struct {
	Image    string `json:"image" validate:"required,max=500"`
	Caption  string `json:"caption" validate:"max=300"`
	Position int    `json:"position" validate:"gte=0"`
	Active   bool   `json:"active"`
}

// ListGallery 展示中的图片，按位置排序
func (s *Service) ListGallery(ctx context.Context) ([]*GalleryItemView, error) {
	return s.listGallery(ctx, true)
}

// ListAllGallery 全部图片（管理员）
func (s *Service) ListAllGallery(ctx context.Context) ([]*GalleryItemView, error) {
	if err := guard(ctx, nil); err != nil {
		return nil, err
	}
	return s.listGallery(ctx, false)
}

func (s *Service) listGallery(ctx context.Context, activeOnly bool) ([]*GalleryItemView, error) {
	items, err := s.gallery.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	views := make([]*GalleryItemView, len(items))
	for i, item := range items {
		views[i] = toGalleryItemView(item)
	}
	return views, nil
}

func (s *Service) CreateGalleryItem(ctx context.Context, req GalleryItemRequest) (*GalleryItemView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	item := &content.GalleryItem{CreatedAt: time.Now()}
	applyGalleryItem(item, req)
	if err := s.gallery.Create(ctx, item); err != nil {
		return nil, err
	}
	return toGalleryItemView(item), nil
}

func (s *Service) UpdateGalleryItem(ctx context.Context, id string, req GalleryItemRequest) (*GalleryItemView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	item, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyGalleryItem(item, req)
	if err := s.gallery.Update(ctx, item); err != nil {
		return nil, err
	}
	return toGalleryItemView(item), nil
}

func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	return s.gallery.Delete(ctx, id)
}

func applyGalleryItem(item *content.GalleryItem, req GalleryItemRequest) {
	item.Image = req.Image
	item.Caption = req.Caption
	item.Position = req.Position
	item.Active = req.Active
	item.UpdatedAt = time.Now()
}

func slugOr(slug, title string) string {
	if slug != "" {
		return slug
	}
	return catalog.Slugify(title)
}
