package content

import (
	"strings"
	"time"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var (
	ErrPageNotFound   = apperrors.New(apperrors.ErrCodeContentNotFound, "页面不存在")
	ErrPostNotFound   = apperrors.New(apperrors.ErrCodeContentNotFound, "文章不存在")
	ErrBannerNotFound = apperrors.New(apperrors.ErrCodeContentNotFound, "横幅不存在")
	ErrImageNotFound  = apperrors.New(apperrors.ErrCodeContentNotFound, "图片不存在")
	ErrSlugDuplicate  = apperrors.ErrSlugDuplicate
)

// Page 静态页面（关于我们、配送说明等）
type Page struct {
	ID              string
	Slug            string
	Title           string
	Content         string
	MetaDescription string
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Post 博客文章
type Post struct {
	ID          string
	Slug        string
	Title       string
	Excerpt     string
	Content     string
	CoverImage  string
	Published   bool
	PublishedAt *time.Time // 首次发布时间
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Banner 首页横幅
type Banner struct {
	ID        string
	Title     string
	Subtitle  string
	Image     string
	Link      string
	Position  int // 越小越靠前
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GalleryItem 作品图库中的一张图片
type GalleryItem struct {
	ID        string
	Image     string
	Caption   string
	Position  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Publish 设置发布状态，首次发布时记录时间
func (p *Post) Publish(published bool) {
	p.Published = published
	if published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	p.UpdatedAt = time.Now()
}

// Normalize 去除标题空白
func (p *Page) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.UpdatedAt = time.Now()
}
