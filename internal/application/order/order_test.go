package order

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
	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/notification"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/internal/infrastructure/persistence/gormstore"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// fakeMailer 记录发送次数，可模拟邮件服务故障
type fakeMailer struct {
	confirmations int
	updates       int
	err           error
}

func (m *fakeMailer) SendOrderConfirmation(context.Context, *order.Order) error {
	m.confirmations++
	return m.err
}

func (m *fakeMailer) SendStatusUpdate(context.Context, *order.Order) error {
	m.updates++
	return m.err
}

type fixture struct {
	db            *gorm.DB
	orders        order.Repository
	products      catalog.ProductRepository
	notifications notification.Repository
	mailer        *fakeMailer
	dispatcher    *outbox.Dispatcher
	tx            *gormstore.TxManager
	product       *catalog.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gormstore.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })

	f := &fixture{
		db:            db,
		orders:        gormstore.NewOrderRepository(db),
		products:      gormstore.NewProductRepository(db),
		notifications: gormstore.NewNotificationRepository(db),
		mailer:        &fakeMailer{},
		tx:            gormstore.NewTxManager(db),
	}
	f.dispatcher = outbox.NewDispatcher(zap.NewNop(),
		outbox.NewNotificationHandler(notification.NewService(f.notifications)),
		outbox.NewEmailHandler(f.mailer),
	)

	ctx := context.Background()
	cat := catalog.NewCategory(catalog.CategoryDraft{Name: "Розетки", Slug: "rozetki"})
	require.NoError(t, gormstore.NewCategoryRepository(db).Create(ctx, cat))
	f.product = catalog.NewProduct(catalog.ProductDraft{
		Name:       "Таванна розетка",
		Slug:       "tavanna-rozetka",
		Price:      decimal.RequireFromString("17.50"),
		InStock:    true,
		CategoryID: cat.ID,
	})
	require.NoError(t, f.products.Create(ctx, f.product))
	return f
}

func (f *fixture) createUseCase(policy PricePolicy) *CreateOrderUseCase {
	return NewCreateOrderUseCase(f.orders, f.products, f.tx, f.dispatcher, order.DefaultCalculator(), policy, zap.NewNop())
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	n, err := f.orders.Count(context.Background(), "")
	require.NoError(t, err)
	return n
}

func checkoutRequest(productID string, quantity int, price string) CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:   "Иван Петров",
		CustomerEmail:  "ivan@example.com",
		CustomerPhone:  "+359888123456",
		DeliveryMethod: "office",
		Courier:        "speedy",
		DeliveryOffice: "Speedy София Център",
		Items: []CreateOrderItem{{
			ProductID: productID,
			Quantity:  quantity,
			Price:     decimal.RequireFromString(price),
		}},
	}
}

func adminCtx() context.Context {
	return user.WithPrincipal(context.Background(), &user.Principal{UserID: "admin-1", Role: user.RoleAdmin})
}

func TestCreateOrder(t *testing.T) {
	t.Run("低于包邮门槛加收运费", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 2, "17.50"))
		require.NoError(t, err)
		require.NotEmpty(t, resp.OrderID)

		o, err := f.orders.FindByID(context.Background(), resp.OrderID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(38).Equal(o.TotalAmount), "35 + 3")
		assert.True(t, decimal.NewFromInt(3).Equal(o.DeliveryFee))
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, "Таванна розетка", o.Items[0].ProductName)

		assert.Equal(t, 1, f.mailer.confirmations)
		unread, err := f.notifications.CountUnread(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)
		t.Logf("✓ 订单%s: 35 + 3 = 38", resp.OrderID)
	})

	t.Run("达到包邮门槛免运费", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 4, "10"))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(40).Equal(resp.TotalAmount))
		assert.True(t, resp.DeliveryFee.IsZero())
	})

	t.Run("明细为空不触碰存储", func(t *testing.T) {
		f := newFixture(t)
		req := checkoutRequest(f.product.ID, 1, "1")
		req.Items = nil

		_, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), req)
		assert.ErrorIs(t, err, order.ErrInvalidOrderItems)
		assert.Zero(t, f.countOrders(t))
		assert.Zero(t, f.mailer.confirmations)
	})

	t.Run("网点自提必须填写网点", func(t *testing.T) {
		f := newFixture(t)
		req := checkoutRequest(f.product.ID, 1, "5")
		req.DeliveryOffice = ""

		_, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), req)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
		assert.Contains(t, appErr.Message, "deliveryOffice")
		assert.Zero(t, f.countOrders(t))
	})

	t.Run("数量必须为正", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 0, "5"))
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Message, "items[0].quantity")
	})

	t.Run("商品不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest("missing", 1, "5"))
		assert.ErrorIs(t, err, order.ErrProductUnavailable)
		assert.Zero(t, f.countOrders(t))
	})

	t.Run("目录价策略使用当前商品价格", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.createUseCase(PricePolicyCatalog).Execute(context.Background(), checkoutRequest(f.product.ID, 1, "0.01"))
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("20.50").Equal(resp.TotalAmount), "17.50 + 3")
	})

	t.Run("提交金额不一致时按计价结果保存", func(t *testing.T) {
		f := newFixture(t)
		req := checkoutRequest(f.product.ID, 2, "17.50")
		req.Total = decimal.NewNullDecimal(decimal.NewFromInt(35))
		req.DeliveryFee = decimal.NewNullDecimal(decimal.Zero)

		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(38).Equal(resp.TotalAmount))
	})

	t.Run("邮件失败不影响下单", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.err = errors.New("smtp down")

		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 1, "17.50"))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderID)
		assert.Equal(t, int64(1), f.countOrders(t))
	})

	t.Run("改价不影响历史订单", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		resp, err := f.createUseCase(PricePolicyCatalog).Execute(ctx, checkoutRequest(f.product.ID, 1, "17.50"))
		require.NoError(t, err)

		f.product.Price = decimal.NewFromInt(99)
		require.NoError(t, f.products.Update(ctx, f.product))

		o, err := f.orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("17.50").Equal(o.Items[0].Price))
		assert.True(t, decimal.RequireFromString("20.50").Equal(o.TotalAmount))
	})

	t.Run("登录用户下单记录用户ID", func(t *testing.T) {
		f := newFixture(t)
		users := gormstore.NewUserRepository(f.db)
		buyer := user.NewUser("mine@example.com", "", "Mine")
		require.NoError(t, users.Create(context.Background(), buyer))

		req := checkoutRequest(f.product.ID, 1, "17.50")
		req.UserID = buyer.ID
		_, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 1, "17.50"))
		require.NoError(t, err)
		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), req)
		require.NoError(t, err)

		ctx := user.WithPrincipal(context.Background(), &user.Principal{UserID: buyer.ID, Role: user.RoleUser})
		mine, err := NewQueryService(f.orders, users).ListMyOrders(ctx)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, resp.OrderID, mine[0].ID)
	})
}

func TestSetStatus(t *testing.T) {
	setup := func(t *testing.T) (*fixture, *SetStatusUseCase, string) {
		f := newFixture(t)
		resp, err := f.createUseCase(PricePolicyClient).Execute(context.Background(), checkoutRequest(f.product.ID, 1, "17.50"))
		require.NoError(t, err)
		// 只统计状态变更产生的副作用
		f.mailer.confirmations = 0
		require.NoError(t, f.notifications.MarkAllRead(context.Background()))
		return f, NewSetStatusUseCase(f.orders, f.tx, f.dispatcher, zap.NewNop()), resp.OrderID
	}

	t.Run("未登录和非管理员被拒绝", func(t *testing.T) {
		_, uc, id := setup(t)

		_, err := uc.Execute(context.Background(), SetStatusRequest{OrderID: id, Status: "PROCESSING"})
		assert.ErrorIs(t, err, user.ErrUnauthorized)

		ctx := user.WithPrincipal(context.Background(), &user.Principal{UserID: "u-1", Role: user.RoleUser})
		_, err = uc.Execute(ctx, SetStatusRequest{OrderID: id, Status: "PROCESSING"})
		assert.ErrorIs(t, err, user.ErrForbidden)
	})

	t.Run("发货必须有快递单号", func(t *testing.T) {
		f, uc, id := setup(t)

		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "SHIPPED"})
		assert.ErrorIs(t, err, order.ErrTrackingNumberRequired)

		o, err := f.orders.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status, "校验失败不修改订单")
		assert.Zero(t, f.mailer.updates)
	})

	t.Run("每次变更一条通知一封邮件", func(t *testing.T) {
		f, uc, id := setup(t)
		tracking := "SP-0001"

		view, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "SHIPPED", TrackingNumber: &tracking})
		require.NoError(t, err)
		assert.Equal(t, "SHIPPED", view.Status)
		assert.Equal(t, 1, view.Version)

		assert.Equal(t, 1, f.mailer.updates)
		unread, err := f.notifications.CountUnread(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), unread)
	})

	t.Run("未提供单号时沿用原单号", func(t *testing.T) {
		f, uc, id := setup(t)
		tracking := "EC-42"
		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "SHIPPED", TrackingNumber: &tracking})
		require.NoError(t, err)

		_, err = uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "DELIVERED"})
		require.NoError(t, err)

		o, err := f.orders.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status)
		assert.Equal(t, "EC-42", o.TrackingNumber)
	})

	t.Run("任意状态可互相切换", func(t *testing.T) {
		_, uc, id := setup(t)
		for _, s := range []string{"CANCELLED", "PENDING", "DELIVERED", "PROCESSING"} {
			_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: s})
			require.NoError(t, err, s)
		}
	})

	t.Run("邮件失败不回滚状态", func(t *testing.T) {
		f, uc, id := setup(t)
		f.mailer.err = errors.New("smtp down")

		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "PROCESSING"})
		require.NoError(t, err)

		o, err := f.orders.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, o.Status)
		assert.Equal(t, 1, f.mailer.updates)
	})

	t.Run("版本号过期返回冲突", func(t *testing.T) {
		f, uc, id := setup(t)
		seen := 0

		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "PROCESSING", Version: &seen})
		require.NoError(t, err)

		_, err = uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "CANCELLED", Version: &seen})
		assert.ErrorIs(t, err, order.ErrStaleOrder)
		assert.Equal(t, 1, f.mailer.updates, "冲突时不产生副作用")
	})

	t.Run("未知状态", func(t *testing.T) {
		_, uc, id := setup(t)
		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: id, Status: "LOST"})
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, uc, _ := setup(t)
		_, err := uc.Execute(adminCtx(), SetStatusRequest{OrderID: "missing", Status: "PROCESSING"})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestQueryService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := gormstore.NewUserRepository(f.db)
	buyer := user.NewUser("buyer@example.com", "", "Buyer")
	require.NoError(t, users.Create(ctx, buyer))

	req := checkoutRequest(f.product.ID, 1, "17.50")
	req.UserID = buyer.ID
	resp, err := f.createUseCase(PricePolicyClient).Execute(ctx, req)
	require.NoError(t, err)

	svc := NewQueryService(f.orders, users)

	t.Run("公开查询单个订单", func(t *testing.T) {
		view, err := svc.GetOrder(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Nil(t, view.User)

		_, err = svc.GetOrder(ctx, "missing")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("管理员列表附带下单用户", func(t *testing.T) {
		_, err := svc.ListOrders(ctx)
		assert.ErrorIs(t, err, user.ErrUnauthorized)

		list, err := svc.ListOrders(adminCtx())
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].User)
		assert.Equal(t, "buyer@example.com", list[0].User.Email)
	})

	t.Run("删除订单", func(t *testing.T) {
		plain := user.WithPrincipal(ctx, &user.Principal{UserID: buyer.ID, Role: user.RoleUser})
		assert.ErrorIs(t, svc.DeleteOrder(plain, resp.OrderID), user.ErrForbidden)

		require.NoError(t, svc.DeleteOrder(adminCtx(), resp.OrderID))
		_, err := svc.GetOrder(ctx, resp.OrderID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}
