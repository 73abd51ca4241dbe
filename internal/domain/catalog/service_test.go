package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProducts struct {
	ProductRepository
	items map[string]*Product
}

func (m *memProducts) Create(_ context.Context, p *Product) error {
	p.ID = "p-" + p.Slug
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) Update(_ context.Context, p *Product) error {
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*Product, error) {
	if p, ok := m.items[id]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

func (m *memProducts) FindBySlug(_ context.Context, slug string) (*Product, error) {
	for _, p := range m.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *memProducts) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range m.items {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type memCategories struct {
	CategoryRepository
	items map[string]*Category
}

func (m *memCategories) Create(_ context.Context, c *Category) error {
	c.ID = "c-" + c.Slug
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) Update(_ context.Context, c *Category) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id string) (*Category, error) {
	if c, ok := m.items[id]; ok {
		return c, nil
	}
	return nil, ErrCategoryNotFound
}

func (m *memCategories) FindBySlug(_ context.Context, slug string) (*Category, error) {
	for _, c := range m.items {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (m *memCategories) ListChildren(_ context.Context, parentID string) ([]*Category, error) {
	var out []*Category
	for _, c := range m.items {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService() (Service, *memProducts, *memCategories) {
	products := &memProducts{items: map[string]*Product{}}
	categories := &memCategories{items: map[string]*Category{}}
	return NewService(products, categories), products, categories
}

func TestService_Products(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	cornices, err := svc.CreateCategory(ctx, CategoryDraft{Name: "Корнизи"})
	require.NoError(t, err)
	assert.Equal(t, "kornizi", cornices.Slug)

	draft := ProductDraft{Name: "Cornice K-12", Price: decimal.NewFromInt(12), CategoryID: cornices.ID}

	t.Run("创建商品生成slug", func(t *testing.T) {
		p, err := svc.CreateProduct(ctx, draft)
		require.NoError(t, err)
		assert.Equal(t, "cornice-k-12", p.Slug)
		assert.NotNil(t, p.Images)
	})

	t.Run("slug重复", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, draft)
		assert.ErrorIs(t, err, ErrSlugDuplicate)
	})

	t.Run("更新时保留自身slug", func(t *testing.T) {
		updated := draft
		updated.Price = decimal.NewFromInt(15)
		p, err := svc.UpdateProduct(ctx, "p-cornice-k-12", updated)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(15).Equal(p.Price))
	})

	t.Run("价格必须为正", func(t *testing.T) {
		bad := draft
		bad.Price = decimal.Zero
		_, err := svc.CreateProduct(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("分类不存在", func(t *testing.T) {
		bad := draft
		bad.Slug = "other"
		bad.CategoryID = "missing"
		_, err := svc.CreateProduct(ctx, bad)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestService_Categories(t *testing.T) {
	ctx := context.Background()
	svc, _, categories := newTestService()

	parent, err := svc.CreateCategory(ctx, CategoryDraft{Name: "Decor"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(ctx, CategoryDraft{Name: "Rosettes", ParentID: &parent.ID})
	require.NoError(t, err)

	t.Run("分类树包含子分类", func(t *testing.T) {
		c, ids, err := svc.CategoryTree(ctx, "decor")
		require.NoError(t, err)
		assert.Equal(t, parent.ID, c.ID)
		assert.ElementsMatch(t, []string{parent.ID, child.ID}, ids)
	})

	t.Run("不能以自身为父分类", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, parent.ID, CategoryDraft{Name: "Decor", ParentID: &parent.ID})
		assert.ErrorIs(t, err, ErrCategoryParentLoop)
	})

	t.Run("有子分类不能删除", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteCategory(ctx, parent.ID), ErrCategoryInUse)
	})

	t.Run("空分类可以删除", func(t *testing.T) {
		require.NoError(t, svc.DeleteCategory(ctx, child.ID))
		_, ok := categories.items[child.ID]
		assert.False(t, ok)
	})
}
