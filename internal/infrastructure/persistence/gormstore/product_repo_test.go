package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
)

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)

	cat := seedCategory(t, db, "Розетки", "rozetki", nil)

	t.Run("创建并按slug查询", func(t *testing.T) {
		p := catalog.NewProduct(catalog.ProductDraft{
			Name:           "Таванна розетка R-12",
			Slug:           "rozetka-r12",
			Price:          decimal.RequireFromString("24.90"),
			CompareAtPrice: decimal.NewNullDecimal(decimal.RequireFromString("29.90")),
			Images:         []string{"/img/r12-1.jpg", "/img/r12-2.jpg"},
			InStock:        false,
			CategoryID:     cat.ID,
		})
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.FindBySlug(ctx, "rozetka-r12")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, []string{"/img/r12-1.jpg", "/img/r12-2.jpg"}, got.Images)
		assert.False(t, got.InStock, "缺货状态应保存")
		assert.True(t, got.OnSale())
		require.NotNil(t, got.Category)
		assert.Equal(t, "rozetki", got.Category.Slug)
	})

	t.Run("slug重复", func(t *testing.T) {
		p := catalog.NewProduct(catalog.ProductDraft{
			Name:       "Друга",
			Slug:       "rozetka-r12",
			Price:      decimal.NewFromInt(5),
			CategoryID: cat.ID,
		})
		assert.ErrorIs(t, repo.Create(ctx, p), catalog.ErrSlugDuplicate)
	})

	t.Run("更新商品", func(t *testing.T) {
		p, err := repo.FindBySlug(ctx, "rozetka-r12")
		require.NoError(t, err)

		p.Apply(catalog.ProductDraft{
			Name:       "Таванна розетка R-12 XL",
			Slug:       "rozetka-r12",
			Price:      decimal.RequireFromString("26"),
			InStock:    true,
			Featured:   true,
			CategoryID: cat.ID,
		})
		require.NoError(t, repo.Update(ctx, p))

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Таванна розетка R-12 XL", got.Name)
		assert.True(t, got.InStock)
		assert.True(t, got.Featured)
		assert.False(t, got.CompareAtPrice.Valid, "划线价被清空")
		assert.Empty(t, got.Images)
	})

	t.Run("商品不存在", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), catalog.ErrProductNotFound)
	})
}

func TestProductRepository_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)

	parent := seedCategory(t, db, "Декорация", "dekoraciya", nil)
	child := seedCategory(t, db, "Корнизи", "kornizi", &parent.ID)
	other := seedCategory(t, db, "Колони", "koloni", nil)

	base := time.Now().Add(-time.Hour)
	a := seedProduct(t, db, "Корниз K-1", "korniz-k1", child.ID, "10", base)
	b := seedProduct(t, db, "Корниз K-2", "korniz-k2", child.ID, "30", base.Add(time.Minute))
	c := seedProduct(t, db, "Колона C-1", "kolona-c1", other.ID, "20", base.Add(2*time.Minute))
	d := seedProduct(t, db, "Rozetka 100%_natural", "rozetka-natural", parent.ID, "15", base.Add(3*time.Minute))

	t.Run("默认按创建时间倒序分页", func(t *testing.T) {
		list, total, err := repo.List(ctx, catalog.ListParams{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, list, 2)
		assert.Equal(t, d.ID, list[0].ID)
		assert.Equal(t, c.ID, list[1].ID)
	})

	t.Run("按分类过滤并按价格排序", func(t *testing.T) {
		list, total, err := repo.List(ctx, catalog.ListParams{
			CategoryIDs: []string{parent.ID, child.ID},
			SortBy:      "price_desc",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, list, 3)
		assert.Equal(t, b.ID, list[0].ID)
		assert.Equal(t, d.ID, list[1].ID)
		assert.Equal(t, a.ID, list[2].ID)
	})

	t.Run("按名称搜索不区分大小写", func(t *testing.T) {
		list, err := repo.Search(ctx, "K-1", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, a.ID, list[0].ID)

		list, err = repo.Search(ctx, "ROZETKA", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, d.ID, list[0].ID)
	})

	t.Run("按分类名称搜索", func(t *testing.T) {
		list, err := repo.Search(ctx, "олони", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, c.ID, list[0].ID)
	})

	t.Run("通配符按字面匹配", func(t *testing.T) {
		list, err := repo.Search(ctx, "100%_", 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, d.ID, list[0].ID)

		list, err = repo.Search(ctx, "%", 10)
		require.NoError(t, err)
		assert.Len(t, list, 1, "%只匹配包含%的商品")
	})

	t.Run("限制条数", func(t *testing.T) {
		list, err := repo.Search(ctx, "description", 2)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("批量查询", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []string{a.ID, c.ID, "missing"})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Contains(t, found, a.ID)
		assert.NotContains(t, found, "missing")
	})

	t.Run("统计", func(t *testing.T) {
		n, err := repo.CountByCategory(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	parent := seedCategory(t, db, "Декорация", "dekoraciya", nil)
	seedCategory(t, db, "Корнизи", "kornizi", &parent.ID)
	seedCategory(t, db, "Аплици", "aplici", &parent.ID)

	children, err := repo.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Аплици", children[0].Name, "按名称排序")

	dup := catalog.NewCategory(catalog.CategoryDraft{Name: "X", Slug: "kornizi"})
	assert.ErrorIs(t, repo.Create(ctx, dup), catalog.ErrSlugDuplicate)

	got, err := repo.FindBySlug(ctx, "dekoraciya")
	require.NoError(t, err)
	got.Apply(catalog.CategoryDraft{Name: "Декор", Slug: "dekor"})
	require.NoError(t, repo.Update(ctx, got))

	_, err = repo.FindBySlug(ctx, "dekoraciya")
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
