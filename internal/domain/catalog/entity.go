package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category 商品分类，ParentID为空表示顶级分类
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Image       string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product 商品
type Product struct {
	ID               string
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	CompareAtPrice   decimal.NullDecimal // 划线价，可选
	Images           []string            // 有序的图片引用
	InStock          bool
	Featured         bool
	SKU              string
	CategoryID       string
	Category         *Category // 查询时关联加载
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductDraft 创建/修改商品的字段
type ProductDraft struct {
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	CompareAtPrice   decimal.NullDecimal
	Images           []string
	InStock          bool
	Featured         bool
	SKU              string
	CategoryID       string
}

// CategoryDraft 创建/修改分类的字段
type CategoryDraft struct {
	Name        string
	Slug        string
	Description string
	Image       string
	ParentID    *string
}

// NewProduct 由草稿创建商品，slug为空时由名称生成
func NewProduct(d ProductDraft) *Product {
	now := time.Now()
	p := &Product{CreatedAt: now}
	p.Apply(d)
	p.UpdatedAt = now
	return p
}

// Apply 覆盖可编辑字段
func (p *Product) Apply(d ProductDraft) {
	p.Name = strings.TrimSpace(d.Name)
	p.Slug = d.Slug
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	p.Description = d.Description
	p.ShortDescription = d.ShortDescription
	p.Price = d.Price
	p.CompareAtPrice = d.CompareAtPrice
	p.Images = d.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	p.InStock = d.InStock
	p.Featured = d.Featured
	p.SKU = strings.TrimSpace(d.SKU)
	p.CategoryID = d.CategoryID
	p.UpdatedAt = time.Now()
}

// FirstImage 主图，没有图片时为空
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// OnSale 划线价高于售价时视为促销
func (p *Product) OnSale() bool {
	return p.CompareAtPrice.Valid && p.CompareAtPrice.Decimal.GreaterThan(p.Price)
}

// NewCategory 由草稿创建分类
func NewCategory(d CategoryDraft) *Category {
	now := time.Now()
	c := &Category{CreatedAt: now}
	c.Apply(d)
	return c
}

// Apply 覆盖可编辑字段
func (c *Category) Apply(d CategoryDraft) {
	c.Name = strings.TrimSpace(d.Name)
	c.Slug = d.Slug
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	c.Description = d.Description
	c.Image = d.Image
	c.ParentID = d.ParentID
	if c.ParentID != nil && *c.ParentID == "" {
		c.ParentID = nil
	}
	c.UpdatedAt = time.Now()
}
