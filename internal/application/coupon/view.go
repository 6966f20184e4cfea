package coupon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/shopcore/internal/domain/coupon"
)

// CouponView 优惠券视图
type CouponView struct {
	ID           uint             `json:"id"`
	Code         string           `json:"code"`
	Description  string           `json:"description,omitempty"`
	DiscountType string           `json:"discount_type"`
	Value        decimal.Decimal  `json:"value"`
	MinPurchase  decimal.Decimal  `json:"min_purchase"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	UsageLimit   int              `json:"usage_limit"`
	UsageCount   int              `json:"usage_count"`
	Status       string           `json:"status"`
	IsActive     bool             `json:"is_active"`
	SellerID     *uint            `json:"seller_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toCouponView(c *coupon.Coupon) *CouponView {
	return &CouponView{
		ID:           c.ID,
		Code:         c.Code,
		Description:  c.Description,
		DiscountType: string(c.DiscountType),
		Value:        c.Value,
		MinPurchase:  c.MinPurchase,
		MaxDiscount:  c.MaxDiscount,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		UsageLimit:   c.UsageLimit,
		UsageCount:   c.UsageCount,
		Status:       string(c.Status),
		IsActive:     c.IsActive,
		SellerID:     c.SellerID,
		CreatedAt:    c.CreatedAt,
	}
}
