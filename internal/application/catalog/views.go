package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
)

// CategoryRef 商品所属分类
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryView 分类
type CategoryView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	ParentID    *string         `json:"parentId,omitempty"`
	Children    []*CategoryView `json:"children,omitempty"`
}

func toCategoryView(c *catalog.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		ParentID:    c.ParentID,
	}
}

// ProductView 商品详情
type ProductView struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"shortDescription,omitempty"`
	Price            decimal.Decimal     `json:"price" swaggertype:"string"`
	CompareAtPrice   decimal.NullDecimal `json:"compareAtPrice" swaggertype:"string"`
	OnSale           bool                `json:"onSale"`
	Images           []string            `json:"images"`
	InStock          bool                `json:"inStock"`
	Featured         bool                `json:"featured"`
	SKU              string              `json:"sku,omitempty"`
	Category         *CategoryRef        `json:"category,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func toProductView(p *catalog.Product) *ProductView {
	v := &ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		OnSale:           p.OnSale(),
		Images:           p.Images,
		InStock:          p.InStock,
		Featured:         p.Featured,
		SKU:              p.SKU,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Category != nil {
		v.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return v
}

// SearchResult 搜索结果项
type SearchResult struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Price            decimal.Decimal `json:"price" swaggertype:"string"`
	Image            string          `json:"image"`
	Category         *CategoryRef    `json:"category"`
	ShortDescription string          `json:"shortDescription"`
}

func toSearchResult(p *catalog.Product) SearchResult {
	r := SearchResult{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            p.Price,
		Image:            p.FirstImage(),
		ShortDescription: p.ShortDescription,
	}
	if p.Category != nil {
		r.Category = &CategoryRef{Name: p.Category.Name, Slug: p.Category.Slug}
	}
	return r
}

// ProductListResponse 分页商品列表
type ProductListResponse struct {
	List       []*ProductView `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
