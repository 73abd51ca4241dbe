package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Handle(_ context.Context, e event.Event) error {
	r.events = append(r.events, e)
	return nil
}

func setup(t *testing.T) (*Service, *recorder, *catalog.Product) {
	t.Helper()
	db, err := gormstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })

	ctx := context.Background()
	cat := catalog.NewCategory(catalog.CategoryDraft{Name: "Columns", Slug: "columns"})
	require.NoError(t, gormstore.NewCategoryRepository(db).Create(ctx, cat))
	products := gormstore.NewProductRepository(db)
	p := catalog.NewProduct(catalog.ProductDraft{
		Name:       "Doric Column",
		Price:      decimal.NewFromInt(120),
		InStock:    true,
		CategoryID: cat.ID,
	})
	require.NoError(t, products.Create(ctx, p))

	rec := &recorder{}
	svc := NewService(gormstore.NewReviewRepository(db), products, gormstore.NewTxManager(db), outbox.NewDispatcher(zap.NewNop(), rec))
	return svc, rec, p
}

func adminCtx() context.Context {
	return user.WithPrincipal(context.Background(), &user.Principal{UserID: "admin-1", Role: user.RoleAdmin})
}

func TestSubmitAndApprove(t *testing.T) {
	svc, rec, product := setup(t)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, SubmitRequest{
		Name:      "Георги",
		Email:     "georgi@example.com",
		Rating:    4,
		Comment:   "Колоната е точно като на снимката",
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.False(t, submitted.Approved, "新评价一律待审核")
	assert.Empty(t, submitted.Email)

	require.Len(t, rec.events, 1)
	ev, ok := rec.events[0].(event.ReviewSubmitted)
	require.True(t, ok)
	assert.Equal(t, "Doric Column", ev.ProductName)

	t.Run("审核前不对外展示", func(t *testing.T) {
		list, err := svc.ListApproved(ctx, product.Slug)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("审核通过后展示", func(t *testing.T) {
		require.NoError(t, svc.Approve(adminCtx(), submitted.ID))

		list, err := svc.ListApproved(ctx, product.Slug)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, submitted.ID, list[0].ID)
	})

	t.Run("后台列表包含邮箱", func(t *testing.T) {
		list, err := svc.List(adminCtx())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "georgi@example.com", list[0].Email)
	})

	t.Run("非管理员不能审核和删除", func(t *testing.T) {
		assert.ErrorIs(t, svc.Approve(ctx, submitted.ID), user.ErrUnauthorized)
		customer := user.WithPrincipal(ctx, &user.Principal{UserID: "u-1", Role: user.RoleUser})
		assert.ErrorIs(t, svc.Delete(customer, submitted.ID), user.ErrForbidden)
	})

	t.Run("删除评价", func(t *testing.T) {
		require.NoError(t, svc.Delete(adminCtx(), submitted.ID))
		assert.ErrorIs(t, svc.Approve(adminCtx(), submitted.ID), review.ErrReviewNotFound)
	})
}

func TestSubmitValidation(t *testing.T) {
	svc, rec, _ := setup(t)

	cases := []struct {
		name string
		req  SubmitRequest
	}{
		{"评分超出范围", SubmitRequest{Name: "Ivan", Email: "ivan@example.com", Rating: 6, Comment: "долга рецензия тук"}},
		{"评论过短", SubmitRequest{Name: "Ivan", Email: "ivan@example.com", Rating: 5, Comment: "short"}},
		{"邮箱格式", SubmitRequest{Name: "Ivan", Email: "ivan", Rating: 5, Comment: "долга рецензия тук"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.req)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
		})
	}

	t.Run("商品不存在不发送通知", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), SubmitRequest{
			Name: "Ivan", Email: "ivan@example.com", Rating: 5, Comment: "долга рецензия тук", ProductID: "missing",
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.Empty(t, rec.events)
	})

	t.Run("不关联商品的评价", func(t *testing.T) {
		v, err := svc.Submit(context.Background(), SubmitRequest{
			Name: "Ivan", Email: "ivan@example.com", Rating: 5, Comment: "Отлично обслужване",
		})
		require.NoError(t, err)
		assert.Nil(t, v.ProductID)
	})
}
