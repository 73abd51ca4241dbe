package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
	"github.com/xiebiao/gypsumstore/pkg/tracing"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

const tracerName = "order"

// PricePolicy 明细单价来源
type PricePolicy string

const (
	// PricePolicyClient 使用顾客提交的单价（购物车中看到的价格）
	PricePolicyClient PricePolicy = "client"
	// PricePolicyCatalog 按当前商品价格重新计价
	PricePolicyCatalog PricePolicy = "catalog"
)

// CreateOrderUseCase 下单用例
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	txManager   outbox.TxRunner
	dispatcher  *outbox.Dispatcher
	calculator  order.Calculator
	policy      PricePolicy
	log         *zap.Logger
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	txManager outbox.TxRunner,
	dispatcher *outbox.Dispatcher,
	calculator order.Calculator,
	policy PricePolicy,
	log *zap.Logger,
) *CreateOrderUseCase {
	if policy == "" {
		policy = PricePolicyClient
	}
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		calculator:  calculator,
		policy:      policy,
		log:         log,
	}
}

// CreateOrderRequest 结账表单
type CreateOrderRequest struct {
	CustomerName       string              `json:"customerName" validate:"required,min=2,max=100"`
	CustomerEmail      string              `json:"customerEmail" validate:"required,email"`
	CustomerPhone      string              `json:"customerPhone" validate:"required,min=6,max=32"`
	DeliveryMethod     string              `json:"deliveryMethod" validate:"required,oneof=office address"`
	Courier            string              `json:"courier" validate:"required,oneof=speedy econt"`
	DeliveryOffice     string              `json:"deliveryOffice" validate:"required_if=DeliveryMethod office,max=200"`
	DeliveryAddress    string              `json:"deliveryAddress" validate:"required_if=DeliveryMethod address,max=300"`
	DeliveryCity       string              `json:"deliveryCity" validate:"required_if=DeliveryMethod address,max=100"`
	DeliveryPostalCode string              `json:"deliveryPostalCode" validate:"required_if=DeliveryMethod address,max=16"`
	Notes              string              `json:"notes" validate:"max=1000"`
	Items              []CreateOrderItem   `json:"items" validate:"required,min=1,dive"`
	Total              decimal.NullDecimal `json:"total" swaggertype:"string"`
	DeliveryFee        decimal.NullDecimal `json:"deliveryFee" swaggertype:"string"`
	UserID             string              `json:"-"` // 登录用户下单时由中间件填入
}

// CreateOrderItem 购物车明细
type CreateOrderItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=1,lte=999"`
	Price     decimal.Decimal `json:"price" validate:"gt=0" swaggertype:"string"`
}

// CreateOrderResponse 下单结果
type CreateOrderResponse struct {
	OrderID     string          `json:"orderId"`
	ItemsTotal  decimal.Decimal `json:"itemsTotal" swaggertype:"string"`
	DeliveryFee decimal.Decimal `json:"deliveryFee" swaggertype:"string"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"string"`
}

// Execute 执行下单
// 流程：校验 → 商品存在性 → 计价 → 事务内保存订单和明细 → 提交后通知与邮件
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()

	start := time.Now()
	resp, err := uc.execute(ctx, req)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
	return resp, nil
}

func (uc *CreateOrderUseCase) execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	// 1. 校验失败直接返回，不触碰存储
	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// 2. 明细引用的商品必须存在
	products, err := uc.productRepo.FindByIDs(ctx, productIDs(req.Items))
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, len(req.Items))
	for i, line := range req.Items {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, order.ErrProductUnavailable
		}
		price := line.Price
		if uc.policy == PricePolicyCatalog {
			price = p.Price
		}
		items[i] = order.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       price, // 下单时的单价快照
		}
	}

	// 3. 计价，以服务端结果为准
	quote := uc.calculator.Quote(order.LinesOf(items))
	uc.checkSubmittedAmounts(req, quote)

	o := order.NewOrder(
		order.Customer{Name: req.CustomerName, Email: req.CustomerEmail, Phone: req.CustomerPhone},
		order.Delivery{
			Method:     order.DeliveryMethod(req.DeliveryMethod),
			Courier:    order.Courier(req.Courier),
			Office:     req.DeliveryOffice,
			Address:    req.DeliveryAddress,
			City:       req.DeliveryCity,
			PostalCode: req.DeliveryPostalCode,
		},
		req.Notes,
		items,
		quote,
		req.UserID,
	)

	// 4. 订单和明细同一事务保存，提交后分发OrderCreated
	err = uc.dispatcher.Run(ctx, uc.txManager, func(ctx context.Context, batch *outbox.Batch) error {
		if err := uc.orderRepo.Create(ctx, o); err != nil {
			return err
		}
		batch.Add(event.OrderCreated{Order: o})
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("订单已创建",
		zap.String("order_id", o.ID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Int("items", len(o.Items)),
	)

	return &CreateOrderResponse{
		OrderID:     o.ID,
		ItemsTotal:  quote.ItemsTotal,
		DeliveryFee: quote.DeliveryFee,
		TotalAmount: quote.GrandTotal,
	}, nil
}

// checkSubmittedAmounts 顾客提交的金额与服务端计价不一致时记录
func (uc *CreateOrderUseCase) checkSubmittedAmounts(req CreateOrderRequest, quote order.Quote) {
	totalMismatch := req.Total.Valid && !req.Total.Decimal.Equal(quote.GrandTotal)
	feeMismatch := req.DeliveryFee.Valid && !req.DeliveryFee.Decimal.Equal(quote.DeliveryFee)
	if !totalMismatch && !feeMismatch {
		return
	}

	metrics.IncCounter(metrics.OrderAmountMismatch)
	uc.log.Warn("提交金额与计价结果不一致，按计价结果保存",
		zap.String("submitted_total", req.Total.Decimal.String()),
		zap.String("submitted_fee", req.DeliveryFee.Decimal.String()),
		zap.String("quoted_total", quote.GrandTotal.String()),
		zap.String("quoted_fee", quote.DeliveryFee.String()),
		zap.String("policy", string(uc.policy)),
	)
}

func productIDs(items []CreateOrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
