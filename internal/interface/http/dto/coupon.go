package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidateCouponRequest 结算前校验优惠券
// order_amount与product_variant_ids的缺失由用例返回约定的提示语
type ValidateCouponRequest struct {
	Code              string           `json:"code" binding:"required" example:"SAVE20"`
	OrderAmount       *decimal.Decimal `json:"order_amount" swaggertype:"string" example:"200.00"`
	ProductVariantIDs []uint           `json:"product_variant_ids" example:"11,12"`
}

// ValidateCouponResponse 校验结果（不使用统一响应包装）
type ValidateCouponResponse struct {
	Valid    bool        `json:"valid"`
	Message  string      `json:"message"`
	Discount interface{} `json:"discount,omitempty"`
}

// CreateCouponRequest 创建优惠券
type CreateCouponRequest struct {
	Code         string           `json:"code" binding:"required,max=50" example:"SAVE20"`
	Description  string           `json:"description" binding:"max=255"`
	DiscountType string           `json:"discount_type" binding:"required,oneof=percentage fixed" example:"percentage"`
	Value        decimal.Decimal  `json:"value" binding:"gtdecimal0" swaggertype:"string" example:"20"`
	MinPurchase  decimal.Decimal  `json:"min_purchase" binding:"money" swaggertype:"string" example:"0"`
	MaxDiscount  *decimal.Decimal `json:"max_discount" binding:"omitempty,money" swaggertype:"string" example:"50"`
	StartDate    time.Time        `json:"start_date" binding:"required" example:"2026-01-01T00:00:00Z"`
	EndDate      time.Time        `json:"end_date" binding:"required" example:"2026-12-31T23:59:59Z"`
	UsageLimit   int              `json:"usage_limit" binding:"min=0" example:"100"`
}

// UpdateCouponRequest 修改优惠券，未提供的字段保持不变
type UpdateCouponRequest struct {
	Code        *string          `json:"code" binding:"omitempty,min=1,max=50"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Value       *decimal.Decimal `json:"value" binding:"omitempty,gtdecimal0" swaggertype:"string"`
	MinPurchase *decimal.Decimal `json:"min_purchase" binding:"omitempty,money" swaggertype:"string"`
	MaxDiscount *decimal.Decimal `json:"max_discount" binding:"omitempty,money" swaggertype:"string"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	UsageLimit  *int             `json:"usage_limit" binding:"omitempty,min=0"`
	IsActive    *bool            `json:"is_active"`
}

// ListCouponsRequest 优惠券列表
type ListCouponsRequest struct {
	PageQuery
	SellerID     *uint  `form:"seller_id"`
	IsActive     *bool  `form:"is_active"`
	DiscountType string `form:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	Search       string `form:"search" binding:"omitempty,max=50"`
}
