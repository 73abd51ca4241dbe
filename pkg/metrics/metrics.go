// Package metrics 基于Prometheus的指标收集
//
// 指标通过/metrics端点暴露：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// HTTP指标
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 订单指标
	OrdersCreatedTotal    prometheus.Counter
	OrdersFailedTotal     prometheus.Counter
	OrderCreationDuration prometheus.Histogram
	OrderStatusChanges    *prometheus.CounterVec
	OrderAmountMismatch   prometheus.Counter

	// 下单后副作用（通知、邮件、消息）
	SideEffectsTotal *prometheus.CounterVec
	EmailsSentTotal  *prometheus.CounterVec

	// 熔断器
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列
	MessagesPublishedTotal *prometheus.CounterVec

	// 搜索缓存
	SearchCacheTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标（重复调用安全）
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "订单创建总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "订单创建失败总数",
		},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "订单创建耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrderStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "订单状态变更次数",
		},
		[]string{"status"},
	)

	OrderAmountMismatch = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_amount_mismatch_total",
			Help: "客户端提交金额与服务端计算不一致的订单数",
		},
	)

	SideEffectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_side_effects_total",
			Help: "提交后副作用执行次数",
		},
		[]string{"handler", "result"}, // result: success | failure
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "邮件发送次数",
		},
		[]string{"template", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"}, // success | failure | rejected
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_total",
			Help: "搜索缓存命中情况",
		},
		[]string{"result"}, // hit | miss
	)
}

// =========================================
// 便捷函数
// 未调用InitMetrics时指标为nil，便捷函数直接忽略
// =========================================

func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
