package gormstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
)

// newTestDB 每个测试独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *string) *catalog.Category {
	t.Helper()
	c := catalog.NewCategory(catalog.CategoryDraft{Name: name, Slug: slug, ParentID: parentID})
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name, slug, categoryID string, price string, createdAt time.Time) *catalog.Product {
	t.Helper()
	p := catalog.NewProduct(catalog.ProductDraft{
		Name:        name,
		Slug:        slug,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		InStock:     true,
		CategoryID:  categoryID,
	})
	p.CreatedAt = createdAt
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}
