package messaging

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/order"
	"github.com/xiebiao/shopcore/pkg/circuitbreaker"
)

// Publisher 消息发布（*mq.Publisher实现）
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// RabbitNotifier 通过RabbitMQ发布下单事件
//
// OrderPlaced立即返回，发布在独立goroutine中进行：
//   - 使用与请求无关的ctx，超时由timeout控制
//   - 经过熔断器，MQ不可用时快速失败
//   - 失败只记日志，订单已提交不受影响
type RabbitNotifier struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewRabbitNotifier timeout<=0时使用3秒
func NewRabbitNotifier(publisher Publisher, breaker *circuitbreaker.CircuitBreaker, timeout time.Duration, logger *zap.Logger) *RabbitNotifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RabbitNotifier{
		publisher: publisher,
		breaker:   breaker,
		timeout:   timeout,
		logger:    logger,
	}
}

func (n *RabbitNotifier) OrderPlaced(o *order.Order) {
	evt := NewOrderPlacedEvent(o)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		err := n.breaker.Execute(ctx, func(ctx context.Context) error {
			return n.publisher.Publish(ctx, RoutingKeyOrderPlaced, evt)
		})
		if err != nil {
			n.logger.Warn("下单通知发布失败",
				zap.Uint("order_id", evt.OrderID),
				zap.String("order_no", evt.OrderNo),
				zap.String("breaker", n.breaker.State().String()),
				zap.Float64("failure_rate", n.breaker.Counts().FailureRate()),
				zap.Error(err))
			return
		}
		n.logger.Debug("下单通知已发布", zap.String("event_id", evt.EventID), zap.Uint("order_id", evt.OrderID))
	}()
}

// Wait 等待在途的发布结束，关闭Publisher之前调用
func (n *RabbitNotifier) Wait() {
	n.wg.Wait()
}

// LogNotifier 未启用MQ时只记日志
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderPlaced(o *order.Order) {
	n.logger.Info("order.placed",
		zap.Uint("order_id", o.ID),
		zap.String("order_no", o.OrderNo),
		zap.Uint("user_id", o.UserID),
		zap.String("total", o.TotalAmount.StringFixed(2)))
}
