package coupon

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType 折扣类型
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage" // 按比例，Value为百分数
	DiscountFixed      DiscountType = "fixed"      // 固定金额
)

// IsValid 是否为已知的折扣类型
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Status 优惠券状态
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Coupon 优惠券实体（聚合根）
// 说明:
// 1. 金额字段统一使用decimal，落库为DECIMAL(10,2)
// 2. SellerID为空表示平台券，但当前下单与校验只接受卖家券
// 3. UsageLimit为0表示不限次数
type Coupon struct {
	ID           uint
	Code         string
	Description  string
	DiscountType DiscountType
	Value        decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  *decimal.Decimal // 百分比券的封顶金额，nil表示不封顶（0按nil保存）
	StartDate    time.Time
	EndDate      time.Time
	UsageLimit   int
	UsageCount   int
	Status       Status
	IsActive     bool
	SellerID     *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCoupon 创建优惠券（工厂方法）
// 新券总是active且UsageCount为0
func NewCoupon(sellerID uint, code, description string, discountType DiscountType, value, minPurchase decimal.Decimal,
	maxDiscount *decimal.Decimal, start, end time.Time, usageLimit int) *Coupon {
	now := time.Now()
	return &Coupon{
		Code:         NormalizeCode(code),
		Description:  description,
		DiscountType: discountType,
		Value:        value,
		MinPurchase:  minPurchase,
		MaxDiscount:  normalizeCap(maxDiscount),
		StartDate:    start,
		EndDate:      end,
		UsageLimit:   usageLimit,
		UsageCount:   0,
		Status:       StatusActive,
		IsActive:     true,
		SellerID:     &sellerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeCode 券码去除首尾空白
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// IsApplicableAt 是否启用且now落在[StartDate, EndDate]内
func (c *Coupon) IsApplicableAt(now time.Time) bool {
	if !c.IsActive || c.Status != StatusActive {
		return false
	}
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// IsExhausted 是否已达到使用次数上限
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit
}

// HasDiscountCap 封顶金额为空或不大于0都视为不封顶
func (c *Coupon) HasDiscountCap() bool {
	return c.MaxDiscount != nil && c.MaxDiscount.IsPositive()
}

// normalizeCap 0或负数的封顶金额按未设置保存
func normalizeCap(maxDiscount *decimal.Decimal) *decimal.Decimal {
	if maxDiscount == nil || !maxDiscount.IsPositive() {
		return nil
	}
	return maxDiscount
}

// IsOwnedBy 是否由指定卖家创建
func (c *Coupon) IsOwnedBy(sellerID uint) bool {
	return c.SellerID != nil && *c.SellerID == sellerID
}

// Deactivate 软删除：停用但保留记录（历史订单仍引用它）
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Redemption 核销记录，每个订单最多一条
type Redemption struct {
	ID             uint
	CouponID       uint
	UserID         uint
	OrderID        uint
	DiscountAmount decimal.Decimal
	RedeemedAt     time.Time
}

// NewRedemption 创建核销记录
func NewRedemption(couponID, userID, orderID uint, discount decimal.Decimal) *Redemption {
	return &Redemption{
		CouponID:       couponID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discount,
		RedeemedAt:     time.Now(),
	}
}
