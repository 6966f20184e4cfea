// Package messaging 下单事件的发布与消费
package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/shopcore/internal/domain/order"
)

// RoutingKeyOrderPlaced 下单成功事件
const RoutingKeyOrderPlaced = "order.placed"

// OrderPlacedEvent 事件体，字段只增不改
type OrderPlacedEvent struct {
	EventID        string           `json:"event_id"`
	OrderID        uint             `json:"order_id"`
	OrderNo        string           `json:"order_no"`
	UserID         uint             `json:"user_id"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	CouponID       *uint            `json:"coupon_id,omitempty"`
	OrderStatus    string           `json:"order_status"`
	PaymentStatus  string           `json:"payment_status"`
	Items          []OrderEventItem `json:"items"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

// OrderEventItem 事件中的订单明细
type OrderEventItem struct {
	VariantID uint            `json:"product_variant_id"`
	SellerID  uint            `json:"seller_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// NewOrderPlacedEvent 从已提交的订单构造事件
func NewOrderPlacedEvent(o *order.Order) *OrderPlacedEvent {
	items := make([]OrderEventItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderEventItem{
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return &OrderPlacedEvent{
		EventID:        uuid.NewString(),
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		UserID:         o.UserID,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		CouponID:       o.CouponID,
		OrderStatus:    string(o.OrderStatus),
		PaymentStatus:  string(o.PaymentStatus),
		Items:          items,
		OccurredAt:     o.CreatedAt,
	}
}

// DecodeOrderPlaced 解析消息体，缺少订单标识视为无效消息
func DecodeOrderPlaced(body []byte) (*OrderPlacedEvent, error) {
	var evt OrderPlacedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("解析order.placed失败: %w", err)
	}
	if evt.OrderID == 0 || evt.OrderNo == "" {
		return nil, fmt.Errorf("order.placed缺少订单标识")
	}
	return &evt, nil
}
