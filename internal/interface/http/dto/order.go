package dto

import "github.com/shopspring/decimal"

// PlaceOrderRequest 下单
// total_amount与discount_amount由服务端对账，不一致直接拒绝
type PlaceOrderRequest struct {
	TotalAmount       decimal.Decimal    `json:"total_amount" binding:"money" swaggertype:"string" example:"160.00"`
	DiscountAmount    decimal.Decimal    `json:"discount_amount" binding:"money" swaggertype:"string" example:"40.00"`
	CouponID          *uint              `json:"coupon_id" example:"3"`
	BillingAddressID  uint               `json:"billing_address_id" binding:"required" example:"1"`
	ShippingAddressID uint               `json:"shipping_address_id" binding:"required" example:"1"`
	OrderStatus       string             `json:"order_status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus     string             `json:"payment_status" binding:"omitempty,oneof=pending paid failed refunded"`
	PaymentMethod     string             `json:"payment_method" binding:"required,max=30" example:"card"`
	PaymentReference  string             `json:"payment_reference" binding:"max=100"`
	Items             []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest 下单明细
type OrderItemRequest struct {
	ProductVariantID uint            `json:"product_variant_id" binding:"required" example:"11"`
	SellerID         uint            `json:"seller_id" binding:"required" example:"5"`
	Quantity         int             `json:"quantity" binding:"required,min=1" example:"2"`
	Price            decimal.Decimal `json:"price" binding:"money" swaggertype:"string" example:"100.00"`
}

// ListOrdersRequest 管理端订单列表
type ListOrdersRequest struct {
	PageQuery
	UserID        *uint  `form:"user_id"`
	OrderStatus   string `form:"order_status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending paid failed refunded"`
}
