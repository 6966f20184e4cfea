package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/shopcore/internal/domain/order"
	"github.com/xiebiao/shopcore/pkg/circuitbreaker"
)

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	block    bool
	messages []interface{}
	keys     []string
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.messages = append(p.messages, message)
	return nil
}

func sampleOrder() *order.Order {
	couponID := uint(3)
	o := order.NewOrder("ORD20260101000000123456", 9, []order.OrderItem{
		{VariantID: 1, SellerID: 5, Quantity: 2, Price: decimal.NewFromInt(100)},
	}, decimal.NewFromInt(160), decimal.NewFromInt(40), &couponID, 1, 2, "", "", "card", "")
	o.ID = 77
	return o
}

func TestRabbitNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	n := NewRabbitNotifier(pub, circuitbreaker.NewCircuitBreaker("test-publish", circuitbreaker.DefaultConfig()), time.Second, zap.NewNop())

	n.OrderPlaced(sampleOrder())
	n.Wait()

	require.Len(t, pub.messages, 1)
	assert.Equal(t, RoutingKeyOrderPlaced, pub.keys[0])
	evt := pub.messages[0].(*OrderPlacedEvent)
	assert.Equal(t, uint(77), evt.OrderID)
	assert.NotEmpty(t, evt.EventID)
	require.Len(t, evt.Items, 1)
	assert.Equal(t, uint(5), evt.Items[0].SellerID)
}

func TestRabbitNotifier_FailureIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pub := &fakePublisher{err: errors.New("connection refused")}
	n := NewRabbitNotifier(pub, circuitbreaker.NewCircuitBreaker("test-fail", circuitbreaker.DefaultConfig()), time.Second, zap.New(core))

	n.OrderPlaced(sampleOrder())
	n.Wait()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "下单通知发布失败", logs.All()[0].Message)
}

func TestRabbitNotifier_ReturnsImmediately(t *testing.T) {
	pub := &fakePublisher{block: true}
	n := NewRabbitNotifier(pub, circuitbreaker.NewCircuitBreaker("test-block", circuitbreaker.DefaultConfig()), 200*time.Millisecond, zap.NewNop())

	start := time.Now()
	n.OrderPlaced(sampleOrder())
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	// 超时后goroutine退出
	n.Wait()
}

func TestRabbitNotifier_BreakerOpens(t *testing.T) {
	pub := &fakePublisher{err: errors.New("down")}
	cfg := circuitbreaker.DefaultConfig()
	cfg.ReadyToTrip = func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 }
	breaker := circuitbreaker.NewCircuitBreaker("test-open", cfg)
	n := NewRabbitNotifier(pub, breaker, time.Second, zap.NewNop())

	for i := 0; i < 3; i++ {
		n.OrderPlaced(sampleOrder())
		n.Wait()
	}
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())
}

func TestDecodeOrderPlaced(t *testing.T) {
	body, err := json.Marshal(NewOrderPlacedEvent(sampleOrder()))
	require.NoError(t, err)

	evt, err := DecodeOrderPlaced(body)
	require.NoError(t, err)
	assert.Equal(t, "ORD20260101000000123456", evt.OrderNo)
	assert.True(t, decimal.NewFromInt(40).Equal(evt.DiscountAmount))
	require.NotNil(t, evt.CouponID)

	_, err = DecodeOrderPlaced([]byte(`{"order_id":0}`))
	assert.Error(t, err)
	_, err = DecodeOrderPlaced([]byte(`not json`))
	assert.Error(t, err)
}

func TestOrderPlacedHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewOrderPlacedHandler(zap.New(core))

	body, err := json.Marshal(NewOrderPlacedEvent(sampleOrder()))
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), RoutingKeyOrderPlaced, body))
	require.NoError(t, handler(context.Background(), RoutingKeyOrderPlaced, []byte("garbage")))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "新订单通知", logs.All()[0].Message)
	assert.Equal(t, "丢弃无效消息", logs.All()[1].Message)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewLogNotifier(zap.New(core)).OrderPlaced(sampleOrder())
	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, 77, logs.All()[0].ContextMap()["order_id"])
}
