package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/infrastructure/config"
	"github.com/xiebiao/gypsumstore/pkg/circuitbreaker"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
)

// Message 待发送邮件
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender 邮件发送通道
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// =========================================
// SMTP
// =========================================

// SMTPSender 基于go-mail的SMTP发送
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender 创建SMTP发送器，连接在每次发送时建立
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("创建SMTP客户端失败: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send 发送HTML邮件，附带纯文本备选
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("无效的发件人: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("无效的收件人: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	if msg.Text != "" {
		m.AddAlternativeString(gomail.TypeTextPlain, msg.Text)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("SMTP发送失败: %w", err)
	}
	return nil
}

// =========================================
// 熔断
// =========================================

// BreakerSender 连续失败后短路发送，冷却期内直接返回ErrOpenState
type BreakerSender struct {
	next Sender
	cb   *circuitbreaker.CircuitBreaker
}

// NewBreakerSender 包装发送通道
func NewBreakerSender(next Sender, cfg config.MailConfig, log *zap.Logger) *BreakerSender {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	cb := circuitbreaker.NewCircuitBreaker("smtp", circuitbreaker.Config{
		Timeout: cfg.Cooldown,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})

	return &BreakerSender{next: next, cb: cb}
}

// Send 经熔断器发送
func (b *BreakerSender) Send(ctx context.Context, msg Message) error {
	err := b.cb.Execute(func() error {
		return b.next.Send(ctx, msg)
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": b.cb.Name(), "result": result})

	return err
}

// State 当前熔断状态
func (b *BreakerSender) State() circuitbreaker.State {
	return b.cb.State()
}

// =========================================
// 未启用邮件
// =========================================

// LogSender 只记录日志不发送，mail.enabled=false时使用
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("邮件未启用，跳过发送",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// NewSender 按配置组装发送通道
func NewSender(cfg config.MailConfig, log *zap.Logger) (Sender, error) {
	if !cfg.Enabled {
		return NewLogSender(log), nil
	}
	smtp, err := NewSMTPSender(cfg)
	if err != nil {
		return nil, err
	}
	return NewBreakerSender(smtp, cfg, log), nil
}
