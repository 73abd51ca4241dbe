package content

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gypsumstore/internal/domain/content"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := gormstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })
	return NewService(
		gormstore.NewPageRepository(db),
		gormstore.NewPostRepository(db),
		gormstore.NewBannerRepository(db),
		gormstore.NewGalleryRepository(db),
	)
}

func adminCtx() context.Context {
	return user.WithPrincipal(context.Background(), &user.Principal{UserID: "admin-1", Role: user.RoleAdmin})
}

func TestPages(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePage(ctx, PageRequest{Title: "About", Content: "..."})
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	page, err := svc.CreatePage(adminCtx(), PageRequest{Title: "Delivery Info", Content: "Speedy и Econt"})
	require.NoError(t, err)
	assert.Equal(t, "delivery-info", page.Slug)

	t.Run("未发布页面对访客不可见", func(t *testing.T) {
		_, err := svc.GetPage(ctx, "delivery-info")
		assert.ErrorIs(t, err, content.ErrPageNotFound)

		v, err := svc.GetPage(adminCtx(), "delivery-info")
		require.NoError(t, err)
		assert.False(t, v.Published)
	})

	t.Run("发布后可见", func(t *testing.T) {
		_, err := svc.UpdatePage(adminCtx(), page.ID, PageRequest{Slug: "delivery-info", Title: "Delivery", Content: "Speedy и Econt", Published: true})
		require.NoError(t, err)

		v, err := svc.GetPage(ctx, "delivery-info")
		require.NoError(t, err)
		assert.Equal(t, "Delivery", v.Title)
	})

	t.Run("slug重复", func(t *testing.T) {
		_, err := svc.CreatePage(adminCtx(), PageRequest{Slug: "delivery-info", Title: "Copy", Content: "x"})
		assert.ErrorIs(t, err, content.ErrSlugDuplicate)
	})

	t.Run("标题必填", func(t *testing.T) {
		_, err := svc.CreatePage(adminCtx(), PageRequest{Content: "x"})
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	})

	t.Run("删除页面", func(t *testing.T) {
		require.NoError(t, svc.DeletePage(adminCtx(), page.ID))
		list, err := svc.ListPages(adminCtx())
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestPosts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	draft, err := svc.CreatePost(adminCtx(), PostRequest{Title: "Draft Post", Content: "draft"})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	published, err := svc.CreatePost(adminCtx(), PostRequest{Title: "How to install cornices", Excerpt: "Guide", Content: "Step 1", Published: true})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)

	t.Run("公开列表只有已发布文章且不含正文", func(t *testing.T) {
		list, err := svc.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "how-to-install-cornices", list[0].Slug)
		assert.Empty(t, list[0].Content)
	})

	t.Run("草稿对访客不可见", func(t *testing.T) {
		_, err := svc.GetPost(ctx, draft.Slug)
		assert.ErrorIs(t, err, content.ErrPostNotFound)

		v, err := svc.GetPost(ctx, published.Slug)
		require.NoError(t, err)
		assert.Equal(t, "Step 1", v.Content)
	})

	t.Run("取消发布保留首次发布时间", func(t *testing.T) {
		v, err := svc.UpdatePost(adminCtx(), published.ID, PostRequest{Slug: published.Slug, Title: "How to install cornices", Content: "Step 1"})
		require.NoError(t, err)
		assert.False(t, v.Published)
		require.NotNil(t, v.PublishedAt)

		all, err := svc.ListAllPosts(adminCtx())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestBanners(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateBanner(adminCtx(), BannerRequest{Title: "Second", Image: "b.jpg", Position: 2, Active: true})
	require.NoError(t, err)
	first, err := svc.CreateBanner(adminCtx(), BannerRequest{Title: "First", Image: "a.jpg", Position: 1, Active: true})
	require.NoError(t, err)
	_, err = svc.CreateBanner(adminCtx(), BannerRequest{Title: "Hidden", Image: "c.jpg", Position: 0})
	require.NoError(t, err)

	active, err := svc.ListBanners(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "First", active[0].Title)

	_, err = svc.ListAllBanners(ctx)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	_, err = svc.UpdateBanner(adminCtx(), first.ID, BannerRequest{Title: "First", Image: "a.jpg", Position: 1, Active: false})
	require.NoError(t, err)
	active, err = svc.ListBanners(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, svc.DeleteBanner(adminCtx(), first.ID))
	assert.ErrorIs(t, svc.DeleteBanner(adminCtx(), first.ID), content.ErrBannerNotFound)
}

func TestGallery(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateGalleryItem(ctx, GalleryItemRequest{Image: "x.jpg", Active: true})
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	_, err = svc.CreateGalleryItem(adminCtx(), GalleryItemRequest{Caption: "без снимка"})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)

	ceiling, err := svc.CreateGalleryItem(adminCtx(), GalleryItemRequest{Image: "ceiling.jpg", Caption: "Таван с корниз", Position: 2, Active: true})
	require.NoError(t, err)
	rosette, err := svc.CreateGalleryItem(adminCtx(), GalleryItemRequest{Image: "rosette.jpg", Caption: "Розетка", Position: 1, Active: true})
	require.NoError(t, err)
	_, err = svc.CreateGalleryItem(adminCtx(), GalleryItemRequest{Image: "draft.jpg"})
	require.NoError(t, err)

	t.Run("公开图库只含展示中的图片并按位置排序", func(t *testing.T) {
		list, err := svc.ListGallery(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, rosette.ID, list[0].ID)
		assert.Equal(t, ceiling.ID, list[1].ID)
	})

	t.Run("全部图片仅管理员", func(t *testing.T) {
		_, err := svc.ListAllGallery(ctx)
		assert.ErrorIs(t, err, user.ErrUnauthorized)

		all, err := svc.ListAllGallery(adminCtx())
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("修改与删除", func(t *testing.T) {
		v, err := svc.UpdateGalleryItem(adminCtx(), rosette.ID, GalleryItemRequest{Image: "rosette.jpg", Caption: "Розетка Ø60", Position: 1})
		require.NoError(t, err)
		assert.Equal(t, "Розетка Ø60", v.Caption)
		assert.False(t, v.Active)

		list, err := svc.ListGallery(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, svc.DeleteGalleryItem(adminCtx(), rosette.ID))
		assert.ErrorIs(t, svc.DeleteGalleryItem(adminCtx(), rosette.ID), content.ErrImageNotFound)
		_, err = svc.UpdateGalleryItem(adminCtx(), rosette.ID, GalleryItemRequest{Image: "x.jpg"})
		assert.ErrorIs(t, err, content.ErrImageNotFound)
	})
}
