package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 指标注册在全局Registry上，测试之间只比较增量

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, OrdersPlacedTotal)
	assert.NotNil(t, CouponValidationsTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestRecordOrderPlaced(t *testing.T) {
	InitMetrics()
	before := counterValue(t, OrdersPlacedTotal)
	countBefore := histogramCount(t, OrderPlacementDuration)

	RecordOrderPlaced(120 * time.Millisecond)
	RecordOrderPlaced(80 * time.Millisecond)

	assert.Equal(t, before+2, counterValue(t, OrdersPlacedTotal))
	assert.Equal(t, countBefore+2, histogramCount(t, OrderPlacementDuration))
}

func TestRecordOrderRejected_ByReason(t *testing.T) {
	InitMetrics()
	stock := counterValue(t, OrdersRejectedTotal.WithLabelValues("insufficient_stock"))
	coupon := counterValue(t, OrdersRejectedTotal.WithLabelValues("coupon"))

	RecordOrderRejected("insufficient_stock")
	RecordOrderRejected("insufficient_stock")
	RecordOrderRejected("coupon")

	assert.Equal(t, stock+2, counterValue(t, OrdersRejectedTotal.WithLabelValues("insufficient_stock")))
	assert.Equal(t, coupon+1, counterValue(t, OrdersRejectedTotal.WithLabelValues("coupon")))
}

func TestTrackOrderInProgress(t *testing.T) {
	InitMetrics()
	base := gaugeValue(t, OrdersInProgress)

	done1 := TrackOrderInProgress()
	done2 := TrackOrderInProgress()
	assert.Equal(t, base+2, gaugeValue(t, OrdersInProgress))

	done1()
	done2()
	assert.Equal(t, base, gaugeValue(t, OrdersInProgress))
}

func TestCouponMetrics(t *testing.T) {
	InitMetrics()
	valid := counterValue(t, CouponValidationsTotal.WithLabelValues("valid"))
	redeemed := counterValue(t, CouponRedemptionsTotal)

	RecordCouponValidation("valid")
	RecordCouponRedemption()

	assert.Equal(t, valid+1, counterValue(t, CouponValidationsTotal.WithLabelValues("valid")))
	assert.Equal(t, redeemed+1, counterValue(t, CouponRedemptionsTotal))
}

func TestBreakerMetrics(t *testing.T) {
	SetBreakerState("order-notifier", 1)
	assert.Equal(t, float64(1), gaugeValue(t, CircuitBreakerState.WithLabelValues("order-notifier")))

	SetBreakerState("order-notifier", 0)
	assert.Equal(t, float64(0), gaugeValue(t, CircuitBreakerState.WithLabelValues("order-notifier")))

	before := counterValue(t, CircuitBreakerRequests.WithLabelValues("order-notifier", "rejected"))
	RecordBreakerRequest("order-notifier", "rejected")
	assert.Equal(t, before+1, counterValue(t, CircuitBreakerRequests.WithLabelValues("order-notifier", "rejected")))
}

func TestMessageMetrics(t *testing.T) {
	InitMetrics()
	pub := counterValue(t, MessagesPublishedTotal.WithLabelValues("shopcore.events", "order.placed"))
	count := histogramCount(t, MessageProcessingDuration)

	RecordMessagePublished("shopcore.events", "order.placed")
	RecordMessageConsumed("order.notification", "success", 5*time.Millisecond)

	assert.Equal(t, pub+1, counterValue(t, MessagesPublishedTotal.WithLabelValues("shopcore.events", "order.placed")))
	assert.Equal(t, count+1, histogramCount(t, MessageProcessingDuration))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}
