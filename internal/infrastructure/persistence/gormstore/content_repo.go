package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/content"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// =========================================
// 页面
// =========================================

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository 创建页面仓储
func NewPageRepository(db *gorm.DB) content.PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, p *content.Page) error {
	model := toPageModel(p)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return content.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建页面失败")
	}
	p.ID = model.ID
	return nil
}

func (r *pageRepository) FindByID(ctx context.Context, id string) (*content.Page, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *pageRepository) FindBySlug(ctx context.Context, slug string) (*content.Page, error) {
	return r.first(conn(ctx, r.db).Where("slug = ?", slug))
}

func (r *pageRepository) first(query *gorm.DB) (*content.Page, error) {
	var model PageModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrPageNotFound
		}
		return nil, apperrors.Wrap(err, "查询页面失败")
	}
	return toPageEntity(&model), nil
}

func (r *pageRepository) Update(ctx context.Context, p *content.Page) error {
	result := conn(ctx, r.db).Model(&PageModel{ID: p.ID}).Select("*").Omit("id", "created_at").Updates(toPageModel(p))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return content.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新页面失败")
	}
	if result.RowsAffected == 0 {
		return content.ErrPageNotFound
	}
	return nil
}

func (r *pageRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(conn(ctx, r.db), &PageModel{}, id, content.ErrPageNotFound, "删除页面失败")
}

func (r *pageRepository) List(ctx context.Context) ([]*content.Page, error) {
	var models []PageModel
	if err := conn(ctx, r.db).Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询页面列表失败")
	}
	pages := make([]*content.Page, len(models))
	for i := range models {
		pages[i] = toPageEntity(&models[i])
	}
	return pages, nil
}

func toPageModel(p *content.Page) *PageModel {
	return &PageModel{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Content:         p.Content,
		MetaDescription: p.MetaDescription,
		Published:       p.Published,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPageEntity(m *PageModel) *content.Page {
	return &content.Page{
		ID:              m.ID,
		Slug:            m.Slug,
		Title:           m.Title,
		Content:         m.Content,
		MetaDescription: m.MetaDescription,
		Published:       m.Published,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// =========================================
// 文章
// =========================================

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓储
func NewPostRepository(db *gorm.DB) content.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, p *content.Post) error {
	model := toPostModel(p)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return content.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建文章失败")
	}
	p.ID = model.ID
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*content.Post, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*content.Post, error) {
	return r.first(conn(ctx, r.db).Where("slug = ?", slug))
}

func (r *postRepository) first(query *gorm.DB) (*content.Post, error) {
	var model PostModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrPostNotFound
		}
		return nil, apperrors.Wrap(err, "查询文章失败")
	}
	return toPostEntity(&model), nil
}

func (r *postRepository) Update(ctx context.Context, p *content.Post) error {
	result := conn(ctx, r.db).Model(&PostModel{ID: p.ID}).Select("*").Omit("id", "created_at").Updates(toPostModel(p))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return content.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新文章失败")
	}
	if result.RowsAffected == 0 {
		return content.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(conn(ctx, r.db), &PostModel{}, id, content.ErrPostNotFound, "删除文章失败")
}

func (r *postRepository) List(ctx context.Context, publishedOnly bool) ([]*content.Post, error) {
	query := conn(ctx, r.db)
	if publishedOnly {
		query = query.Where("published = ?", true).Order("published_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var models []PostModel
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询文章列表失败")
	}
	posts := make([]*content.Post, len(models))
	for i := range models {
		posts[i] = toPostEntity(&models[i])
	}
	return posts, nil
}

func toPostModel(p *content.Post) *PostModel {
	return &PostModel{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPostEntity(m *PostModel) *content.Post {
	return &content.Post{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Excerpt:     m.Excerpt,
		Content:     m.Content,
		CoverImage:  m.CoverImage,
		Published:   m.Published,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// =========================================
// 横幅
// =========================================

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建横幅仓储
func NewBannerRepository(db *gorm.DB) content.BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, b *content.Banner) error {
	model := toBannerModel(b)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建横幅失败")
	}
	b.ID = model.ID
	return nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id string) (*content.Banner, error) {
	var model BannerModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrBannerNotFound
		}
		return nil, apperrors.Wrap(err, "查询横幅失败")
	}
	return toBannerEntity(&model), nil
}

func (r *bannerRepository) Update(ctx context.Context, b *content.Banner) error {
	result := conn(ctx, r.db).Model(&BannerModel{ID: b.ID}).Select("*").Omit("id", "created_at").Updates(toBannerModel(b))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新横幅失败")
	}
	if result.RowsAffected == 0 {
		return content.ErrBannerNotFound
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(conn(ctx, r.db), &BannerModel{}, id, content.ErrBannerNotFound, "删除横幅失败")
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]*content.Banner, error) {
	query := conn(ctx, r.db)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []BannerModel
	if err := query.Order("position ASC").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询横幅列表失败")
	}
	banners := make([]*content.Banner, len(models))
	for i := range models {
		banners[i] = toBannerEntity(&models[i])
	}
	return banners, nil
}

func toBannerModel(b *content.Banner) *BannerModel {
	return &BannerModel{
		ID:        b.ID,
		Title:     b.Title,
		Subtitle:  b.Subtitle,
		Image:     b.Image,
		Link:      b.Link,
		Position:  b.Position,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBannerEntity(m *BannerModel) *content.Banner {
	return &content.Banner{
		ID:        m.ID,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		Image:     m.Image,
		Link:      m.Link,
		Position:  m.Position,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// =========================================
// 图库
// =========================================

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository 创建图库仓储
func NewGalleryRepository(db *gorm.DB) content.GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *content.GalleryItem) error {
	model := toGalleryModel(item)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图片失败")
	}
	item.ID = model.ID
	return nil
}

func (r *galleryRepository) FindByID(ctx context.Context, id string) (*content.GalleryItem, error) {
	var model GalleryItemModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrImageNotFound
		}
		return nil, apperrors.Wrap(err, "查询图片失败")
	}
	return toGalleryEntity(&model), nil
}

func (r *galleryRepository) Update(ctx context.Context, item *content.GalleryItem) error {
	result := conn(ctx, r.db).Model(&GalleryItemModel{ID: item.ID}).Select("*").Omit("id", "created_at").Updates(toGalleryModel(item))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新图片失败")
	}
	if result.RowsAffected == 0 {
		return content.ErrImageNotFound
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(conn(ctx, r.db), &GalleryItemModel{}, id, content.ErrImageNotFound, "删除图片失败")
}

func (r *galleryRepository) List(ctx context.Context, activeOnly bool) ([]*content.GalleryItem, error) {
	query := conn(ctx, r.db)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var models []GalleryItemModel
	if err := query.Order("position ASC").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图库失败")
	}
	items := make([]*content.GalleryItem, len(models))
	for i := range models {
		items[i] = toGalleryEntity(&models[i])
	}
	return items, nil
}

func toGalleryModel(item *content.GalleryItem) *GalleryItemModel {
	return &GalleryItemModel{
		ID:        item.ID,
		Image:     item.Image,
		Caption:   item.Caption,
		Position:  item.Position,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toGalleryEntity(m *GalleryItemModel) *content.GalleryItem {
	return &content.GalleryItem{
		ID:        m.ID,
		Image:     m.Image,
		Caption:   m.Caption,
		Position:  m.Position,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// deleteByID 按主键删除，未命中返回notFound
func deleteByID(db *gorm.DB, model interface{}, id string, notFound error, msg string) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, msg)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
