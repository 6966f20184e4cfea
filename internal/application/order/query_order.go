package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/shopcore/internal/domain/order"
)

// OrderItemView 订单明细视图
type OrderItemView struct {
	ID        uint            `json:"id"`
	VariantID uint            `json:"product_variant_id"`
	SellerID  uint            `json:"seller_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PaymentView 支付记录视图
type PaymentView struct {
	ID        uint   `json:"id"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
}

// OrderView 订单视图，列表中Items与Payment为空
type OrderView struct {
	ID                uint            `json:"id"`
	OrderNo           string          `json:"order_no"`
	UserID            uint            `json:"user_id"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	CouponID          *uint           `json:"coupon_id,omitempty"`
	BillingAddressID  uint            `json:"billing_address_id"`
	ShippingAddressID uint            `json:"shipping_address_id"`
	OrderStatus       string          `json:"order_status"`
	PaymentStatus     string          `json:"payment_status"`
	Items             []OrderItemView `json:"items,omitempty"`
	Payment           *PaymentView    `json:"payment,omitempty"`
	CreatedAt         string          `json:"created_at"`
}

func toOrderView(o *order.Order) *OrderView {
	v := &OrderView{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		UserID:            o.UserID,
		TotalAmount:       o.TotalAmount,
		DiscountAmount:    o.DiscountAmount,
		CouponID:          o.CouponID,
		BillingAddressID:  o.BillingAddressID,
		ShippingAddressID: o.ShippingAddressID,
		OrderStatus:       string(o.OrderStatus),
		PaymentStatus:     string(o.PaymentStatus),
		CreatedAt:         o.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range o.Items {
		v.Items = append(v.Items, OrderItemView{
			ID:        item.ID,
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		})
	}
	if o.Payment != nil {
		v.Payment = &PaymentView{
			ID:        o.Payment.ID,
			Method:    o.Payment.Method,
			Status:    string(o.Payment.Status),
			Reference: o.Payment.Reference,
		}
	}
	return v
}

// GetOrderUseCase 订单详情
type GetOrderUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// GetOrderRequest 只有下单人或管理员可以查看
type GetOrderRequest struct {
	OrderID uint
	UserID  uint
	IsAdmin bool
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, req GetOrderRequest) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.IsAdmin && !o.IsOwnedBy(req.UserID) {
		return nil, order.ErrForbidden
	}
	return toOrderView(o), nil
}

// ListOrdersUseCase 订单分页列表
// 普通用户只能看自己的订单；管理员可按user_id筛选或查看全部
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表请求
type ListOrdersRequest struct {
	Page          int
	PageSize      int
	UserID        *uint
	OrderStatus   string
	PaymentStatus string
}

// ListOrdersResponse 列表响应
type ListOrdersResponse struct {
	Orders []*OrderView
	Total  int64
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	orders, total, err := uc.orderRepo.List(ctx, order.ListParams{
		Page:          req.Page,
		PageSize:      req.PageSize,
		UserID:        req.UserID,
		OrderStatus:   order.OrderStatus(req.OrderStatus),
		PaymentStatus: order.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return &ListOrdersResponse{Orders: views, Total: total}, nil
}

// ListMyOrdersUseCase 当前用户的订单
type ListMyOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListMyOrdersUseCase(orderRepo order.Repository) *ListMyOrdersUseCase {
	return &ListMyOrdersUseCase{orderRepo: orderRepo}
}

func (uc *ListMyOrdersUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*ListOrdersResponse, error) {
	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return &ListOrdersResponse{Orders: views, Total: total}, nil
}
