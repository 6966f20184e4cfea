package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Quote 折扣计算结果
type Quote struct {
	CouponID       uint
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Evaluate 校验优惠券并计算折扣（纯函数，不访问存储）
//
// 检查顺序固定，遇到第一个失败立即返回：
//  1. 券存在、启用、status=active且now在有效期内
//  2. sellerIDs去重后恰好一个，且等于券的卖家
//  3. 未达到使用次数上限
//  4. amount不低于最低消费
//
// 折扣：百分比券 amount*value/100 并按MaxDiscount封顶；固定券取value。
// 折扣不超过amount，保留两位小数；FinalAmount = max(0, amount - discount)。
func Evaluate(c *Coupon, sellerIDs []uint, amount decimal.Decimal, now time.Time) (*Quote, error) {
	if c == nil || !c.IsApplicableAt(now) {
		return nil, ErrInvalidOrExpired
	}

	seller, ok := singleSeller(sellerIDs)
	if !ok || !c.IsOwnedBy(seller) {
		return nil, ErrSellerScope
	}

	if c.IsExhausted() {
		return nil, ErrUsageLimitReached
	}

	if amount.LessThan(c.MinPurchase) {
		return nil, ErrMinPurchase.WithMessage("Minimum purchase of ₹%s required", c.MinPurchase.StringFixed(2))
	}

	discount := Discount(c, amount)
	final := amount.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return &Quote{
		CouponID:       c.ID,
		DiscountAmount: discount,
		FinalAmount:    final,
	}, nil
}

// Discount 只计算折扣金额，不做任何资格校验
func Discount(c *Coupon, amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = amount.Mul(c.Value).Div(hundred)
		if c.HasDiscountCap() && discount.GreaterThan(*c.MaxDiscount) {
			discount = *c.MaxDiscount
		}
	default:
		discount = c.Value
	}

	if discount.GreaterThan(amount) {
		discount = amount
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2)
}

func singleSeller(ids []uint) (uint, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	first := ids[0]
	for _, id := range ids[1:] {
		if id != first {
			return 0, false
		}
	}
	return first, true
}
