package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/pkg/mq"
)

// NewOrderPlacedHandler 消费order.placed并记录通知
// 无法解析的消息直接确认丢弃，重新入队只会无限重试
func NewOrderPlacedHandler(logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		evt, err := DecodeOrderPlaced(body)
		if err != nil {
			logger.Error("丢弃无效消息", zap.String("routing_key", routingKey), zap.Error(err))
			return nil
		}

		sellers := make(map[uint]struct{}, len(evt.Items))
		for _, item := range evt.Items {
			sellers[item.SellerID] = struct{}{}
		}
		logger.Info("新订单通知",
			zap.String("event_id", evt.EventID),
			zap.Uint("order_id", evt.OrderID),
			zap.String("order_no", evt.OrderNo),
			zap.Uint("user_id", evt.UserID),
			zap.String("total", evt.TotalAmount.StringFixed(2)),
			zap.Int("items", len(evt.Items)),
			zap.Int("sellers", len(sellers)))
		return nil
	}
}
