package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/application/outbox"
	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
	"github.com/xiebiao/gypsumstore/pkg/tracing"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// SetStatusUseCase 管理员修改订单状态
type SetStatusUseCase struct {
	orderRepo  order.Repository
	txManager  outbox.TxRunner
	dispatcher *outbox.Dispatcher
	log        *zap.Logger
}

func NewSetStatusUseCase(orderRepo order.Repository, txManager outbox.TxRunner, dispatcher *outbox.Dispatcher, log *zap.Logger) *SetStatusUseCase {
	return &SetStatusUseCase{
		orderRepo:  orderRepo,
		txManager:  txManager,
		dispatcher: dispatcher,
		log:        log,
	}
}

// SetStatusRequest 状态变更请求
// TrackingNumber为nil时沿用原快递单号；Version为管理员看到的版本号，可选
type SetStatusRequest struct {
	OrderID        string  `json:"-" validate:"required"`
	Status         string  `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
	TrackingNumber *string `json:"trackingNumber" validate:"omitempty,max=64"`
	Version        *int    `json:"version" validate:"omitempty,gte=0"`
}

// Execute 保存新状态，提交后写入一条通知并给顾客发送一封状态邮件
func (uc *SetStatusUseCase) Execute(ctx context.Context, req SetStatusRequest) (*OrderView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SetOrderStatus")
	defer span.End()

	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var updated *order.Order
	err := uc.dispatcher.Run(ctx, uc.txManager, func(ctx context.Context, batch *outbox.Batch) error {
		o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		from := o.Status
		if err := o.ChangeStatus(order.Status(req.Status), req.TrackingNumber); err != nil {
			return err
		}
		if err := uc.orderRepo.UpdateStatus(ctx, o, req.Version); err != nil {
			return err
		}

		batch.Add(event.OrderStatusChanged{Order: o, From: from})
		updated = o
		return nil
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounterVec(metrics.OrderStatusChanges, map[string]string{"status": string(updated.Status)})
	uc.log.Info("订单状态已更新",
		zap.String("order_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("version", updated.Version),
	)
	return toOrderView(updated, nil), nil
}
