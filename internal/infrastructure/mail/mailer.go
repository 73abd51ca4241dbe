package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateOrderConfirmation = "order_confirmation"
	templateStatusUpdate      = "status_update"
)

// Mailer 订单相关的事务邮件
type Mailer struct {
	sender    Sender
	templates *template.Template
	storeName string
	log       *zap.Logger
}

// NewMailer 加载内嵌模板
func NewMailer(sender Sender, storeName string, log *zap.Logger) (*Mailer, error) {
	tpl, err := template.New("mail").
		Funcs(template.FuncMap{"money": formatMoney}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Mailer{sender: sender, templates: tpl, storeName: storeName, log: log}, nil
}

type orderView struct {
	Order   *order.Order
	ShortID string
	Free    bool
	Office  bool
}

// SendOrderConfirmation 下单确认邮件
func (m *Mailer) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	subject := fmt.Sprintf("%s: order #%s received", m.storeName, shortID(o.ID))
	return m.send(ctx, templateOrderConfirmation, o, subject)
}

// SendStatusUpdate 订单状态变更邮件
func (m *Mailer) SendStatusUpdate(ctx context.Context, o *order.Order) error {
	subject := fmt.Sprintf("%s: order #%s is %s", m.storeName, shortID(o.ID), strings.ToLower(o.Status.Label()))
	return m.send(ctx, templateStatusUpdate, o, subject)
}

func (m *Mailer) send(ctx context.Context, name string, o *order.Order, subject string) error {
	var buf bytes.Buffer
	view := orderView{
		Order:   o,
		ShortID: shortID(o.ID),
		Free:    o.DeliveryFee.IsZero(),
		Office:  o.Delivery.Method == order.DeliveryToOffice,
	}
	if err := m.templates.ExecuteTemplate(&buf, name, view); err != nil {
		m.count(name, "failure")
		return fmt.Errorf("渲染邮件模板失败: %w", err)
	}

	err := m.sender.Send(ctx, Message{
		To:      o.Customer.Email,
		Subject: subject,
		HTML:    buf.String(),
		Text:    subject,
	})
	if err != nil {
		m.count(name, "failure")
		return err
	}

	m.count(name, "success")
	m.log.Debug("邮件已发送", zap.String("template", name), zap.String("order_id", o.ID))
	return nil
}

func (m *Mailer) count(name, result string) {
	metrics.IncCounterVec(metrics.EmailsSentTotal, map[string]string{"template": name, "result": result})
}

// shortID 邮件中展示的订单号
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2) + " лв."
}
