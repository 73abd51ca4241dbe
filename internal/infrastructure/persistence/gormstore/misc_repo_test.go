package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/gypsumstore/internal/domain/contact"
	"github.com/xiebiao/gypsumstore/internal/domain/content"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
)

func TestReviewRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewReviewRepository(db)

	cat := seedCategory(t, db, "Розетки", "rozetki", nil)
	p := seedProduct(t, db, "Розетка", "rozetka", cat.ID, "10", time.Now())

	approved := review.NewReview("Петър", "p@example.com", 5, "Отлично", &p.ID, nil)
	pending := review.NewReview("Ана", "a@example.com", 3, "Добре", &p.ID, nil)
	require.NoError(t, repo.Create(ctx, approved))
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.SetApproved(ctx, approved.ID, true))

	list, err := repo.ListApprovedByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, approved.ID, list[0].ID)

	n, err := repo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, repo.SetApproved(ctx, "missing", true), review.ErrReviewNotFound)

	require.NoError(t, repo.DeleteByProduct(ctx, p.ID))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		n := notification.New(notification.TypeNewOrder, "Нова поръчка", "msg", "/admin/orders")
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, n))
	}

	recent, err := repo.ListRecent(ctx, notification.RecentLimit)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.True(t, recent[0].CreatedAt.After(recent[9].CreatedAt), "新通知在前")

	unread, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), unread)

	require.NoError(t, repo.MarkRead(ctx, recent[0].ID))
	unread, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), unread)

	assert.ErrorIs(t, repo.MarkRead(ctx, "missing"), notification.ErrNotificationNotFound)

	require.NoError(t, repo.MarkAllRead(ctx))
	unread, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)

	require.NoError(t, repo.Delete(ctx, recent[1].ID))
	assert.ErrorIs(t, repo.Delete(ctx, recent[1].ID), notification.ErrNotificationNotFound)
}

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewContactRepository(newTestDB(t))

	m := contact.NewMessage("Георги", "g@example.com", "", "Оферта", "Нужна ми е оферта")
	require.NoError(t, repo.Create(ctx, m))

	n, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.MarkRead(ctx, m.ID))
	require.NoError(t, repo.MarkRead(ctx, m.ID), "重复标记已读不报错")

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	assert.ErrorIs(t, repo.MarkRead(ctx, "missing"), contact.ErrMessageNotFound)
	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), contact.ErrMessageNotFound)
}

func TestContentRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	t.Run("文章按发布时间倒序", func(t *testing.T) {
		repo := NewPostRepository(db)
		older := &content.Post{Slug: "older", Title: "Older"}
		older.Publish(true)
		*older.PublishedAt = older.PublishedAt.Add(-time.Hour)
		newer := &content.Post{Slug: "newer", Title: "Newer"}
		newer.Publish(true)
		draft := &content.Post{Slug: "draft", Title: "Draft"}

		for _, p := range []*content.Post{older, newer, draft} {
			require.NoError(t, repo.Create(ctx, p))
		}

		published, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, published, 2)
		assert.Equal(t, "newer", published[0].Slug)

		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		assert.ErrorIs(t, repo.Create(ctx, &content.Post{Slug: "draft", Title: "X"}), content.ErrSlugDuplicate)
	})

	t.Run("横幅按位置排序并过滤停用", func(t *testing.T) {
		repo := NewBannerRepository(db)
		second := &content.Banner{Title: "B", Image: "/b.jpg", Position: 2, Active: true}
		first := &content.Banner{Title: "A", Image: "/a.jpg", Position: 1, Active: true}
		hidden := &content.Banner{Title: "C", Image: "/c.jpg", Position: 0, Active: false}
		for _, b := range []*content.Banner{second, first, hidden} {
			require.NoError(t, repo.Create(ctx, b))
		}

		active, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "A", active[0].Title)

		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "C", all[0].Title)
	})

	t.Run("图库按位置排序并过滤隐藏", func(t *testing.T) {
		repo := NewGalleryRepository(db)
		late := &content.GalleryItem{Image: "/late.jpg", Caption: "Корниз", Position: 5, Active: true}
		early := &content.GalleryItem{Image: "/early.jpg", Caption: "Розетка", Position: 1, Active: true}
		hidden := &content.GalleryItem{Image: "/hidden.jpg", Position: 0}
		for _, item := range []*content.GalleryItem{late, early, hidden} {
			require.NoError(t, repo.Create(ctx, item))
		}

		active, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "/early.jpg", active[0].Image)

		hidden.Active = true
		require.NoError(t, repo.Update(ctx, hidden))
		active, err = repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 3)
		assert.Equal(t, "/hidden.jpg", active[0].Image)

		require.NoError(t, repo.Delete(ctx, late.ID))
		_, err = repo.FindByID(ctx, late.ID)
		assert.ErrorIs(t, err, content.ErrImageNotFound)
		assert.ErrorIs(t, repo.Update(ctx, late), content.ErrImageNotFound)
	})

	t.Run("页面", func(t *testing.T) {
		repo := NewPageRepository(db)
		p := &content.Page{Slug: "dostavka", Title: "Доставка", Published: true}
		require.NoError(t, repo.Create(ctx, p))

		p.Title = "Доставка и плащане"
		require.NoError(t, repo.Update(ctx, p))

		got, err := repo.FindBySlug(ctx, "dostavka")
		require.NoError(t, err)
		assert.Equal(t, "Доставка и плащане", got.Title)

		require.NoError(t, repo.Delete(ctx, p.ID))
		_, err = repo.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, content.ErrPageNotFound)
	})
}
