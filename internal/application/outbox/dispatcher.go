// Package outbox 提交后钩子
//
// 用例在事务内把领域事件记入Batch，事务提交成功后由Dispatcher同步执行全部处理器。
// 处理器的错误和panic只记录日志和指标，不会返回给调用方，也不会回滚已提交的数据。
package outbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/event"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
)

// TxRunner 事务执行器（gormstore.TxManager）
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Batch 事务内收集的事件
type Batch struct {
	events []event.Event
}

// Add 记录事件，提交后才会分发
func (b *Batch) Add(e event.Event) {
	b.events = append(b.events, e)
}

// Events 已记录的事件
func (b *Batch) Events() []event.Event {
	return b.events
}

// Dispatcher 提交后处理器调度
type Dispatcher struct {
	handlers []event.Handler
	timeout  time.Duration
	log      *zap.Logger
}

// NewDispatcher 创建调度器
func NewDispatcher(log *zap.Logger, handlers ...event.Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers, timeout: 30 * time.Second, log: log}
}

// Register 追加处理器，需在开始处理请求前调用
func (d *Dispatcher) Register(h event.Handler) {
	d.handlers = append(d.handlers, h)
}

// Run 在事务中执行fn，提交成功后分发fn记录的事件
// fn返回错误或提交失败时事件被丢弃
func (d *Dispatcher) Run(ctx context.Context, tx TxRunner, fn func(ctx context.Context, batch *Batch) error) error {
	batch := &Batch{}
	if err := tx.Transaction(ctx, func(ctx context.Context) error {
		return fn(ctx, batch)
	}); err != nil {
		return err
	}

	d.Dispatch(ctx, batch.Events()...)
	return nil
}

// Dispatch 依次把事件交给每个处理器
// 处理器使用脱离请求取消的context，客户端断开不会中断邮件发送
func (d *Dispatcher) Dispatch(ctx context.Context, events ...event.Event) {
	if len(events) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, e := range events {
		for _, h := range d.handlers {
			d.handle(ctx, h, e)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, h event.Handler, e event.Event) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = h.Handle(ctx, e)
	}()

	result := "success"
	if err != nil {
		result = "failure"
		d.log.Error("提交后处理失败",
			zap.String("handler", h.Name()),
			zap.String("event", e.Name()),
			zap.Error(err),
		)
	}
	metrics.IncCounterVec(metrics.SideEffectsTotal, map[string]string{"handler": h.Name(), "result": result})
}
