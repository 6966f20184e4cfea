// Package metrics 基于Prometheus的指标收集
//
// 指标类型约定：
//   - Counter 以 _total 结尾，只增不减（下单数、拒单数、券校验次数）
//   - Histogram 以单位结尾（_seconds），用于耗时分布
//   - Gauge 表示瞬时值（正在处理的下单请求、熔断器状态）
//
// 标签只使用有限取值（reason、result、method），不要把user_id、order_no放进标签。
//
// 用法：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	defer metrics.TrackOrderInProgress()()
//	...
//	metrics.RecordOrderPlaced(time.Since(start))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// HTTP

	HTTPRequestsTotal      *prometheus.CounterVec   // method, path, status
	HTTPRequestDuration    *prometheus.HistogramVec // method, path
	HTTPRequestsInProgress prometheus.Gauge

	// 下单

	OrdersPlacedTotal      prometheus.Counter
	OrdersRejectedTotal    *prometheus.CounterVec // reason
	OrderPlacementDuration prometheus.Histogram
	OrdersInProgress       prometheus.Gauge

	// 优惠券

	CouponValidationsTotal *prometheus.CounterVec // result: valid | invalid | scope | exhausted | min_purchase
	CouponRedemptionsTotal prometheus.Counter

	// 熔断器

	// CircuitBreakerState 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState    *prometheus.GaugeVec
	CircuitBreakerRequests *prometheus.CounterVec // name, result: success | failure | rejected

	// 消息队列

	MessagesPublishedTotal    *prometheus.CounterVec // exchange, routing_key
	MessagesConsumedTotal     *prometheus.CounterVec // queue, result
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 注册所有指标到默认Registry，可重复调用
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

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "下单成功总数",
		},
	)

	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "下单失败总数（按原因）",
		},
		[]string{"reason"},
	)

	// 下单包含行锁等待，桶比普通HTTP请求更宽
	OrderPlacementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_placement_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	OrdersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_in_progress",
			Help: "正在处理的下单请求数",
		},
	)

	CouponValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_validations_total",
			Help: "优惠券校验总数（按结果）",
		},
		[]string{"result"},
	)

	CouponRedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coupon_redemptions_total",
			Help: "优惠券核销总数",
		},
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
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// =========================================
// 业务埋点（内部保证已初始化）
// =========================================

// TrackOrderInProgress 递增正在处理的下单数，返回递减函数
func TrackOrderInProgress() func() {
	InitMetrics()
	OrdersInProgress.Inc()
	return OrdersInProgress.Dec
}

// RecordOrderPlaced 记录一次成功下单
func RecordOrderPlaced(d time.Duration) {
	InitMetrics()
	OrdersPlacedTotal.Inc()
	OrderPlacementDuration.Observe(d.Seconds())
}

// RecordOrderRejected 记录一次失败下单
func RecordOrderRejected(reason string) {
	InitMetrics()
	OrdersRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordCouponValidation 记录一次优惠券校验结果
func RecordCouponValidation(result string) {
	InitMetrics()
	CouponValidationsTotal.WithLabelValues(result).Inc()
}

// RecordCouponRedemption 记录一次优惠券核销
func RecordCouponRedemption() {
	InitMetrics()
	CouponRedemptionsTotal.Inc()
}

// RecordMessagePublished 记录一次消息发布
func RecordMessagePublished(exchange, routingKey string) {
	InitMetrics()
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

// RecordMessageConsumed 记录一次消息消费
func RecordMessageConsumed(queue, result string, d time.Duration) {
	InitMetrics()
	MessagesConsumedTotal.WithLabelValues(queue, result).Inc()
	MessageProcessingDuration.Observe(d.Seconds())
}

// SetBreakerState 更新熔断器状态
func SetBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerRequest 记录一次经过熔断器的调用
func RecordBreakerRequest(name, result string) {
	InitMetrics()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
