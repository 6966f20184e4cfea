package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sellerCoupon(sellerID uint, t DiscountType, value string) *Coupon {
	return &Coupon{
		ID:           11,
		Code:         "SAVE",
		DiscountType: t,
		Value:        dec(value),
		MinPurchase:  decimal.Zero,
		StartDate:    now.Add(-24 * time.Hour),
		EndDate:      now.Add(24 * time.Hour),
		Status:       StatusActive,
		IsActive:     true,
		SellerID:     &sellerID,
	}
}

func TestEvaluate_Discounts(t *testing.T) {
	tests := []struct {
		name         string
		coupon       func() *Coupon
		amount       string
		wantDiscount string
		wantFinal    string
	}{
		{
			name: "百分比券按封顶金额截断",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountPercentage, "20")
				c.MaxDiscount = decPtr("15")
				return c
			},
			amount:       "100",
			wantDiscount: "15",
			wantFinal:    "85",
		},
		{
			name:         "百分比券无封顶",
			coupon:       func() *Coupon { return sellerCoupon(7, DiscountPercentage, "20") },
			amount:       "100",
			wantDiscount: "20",
			wantFinal:    "80",
		},
		{
			name: "封顶金额为0视为不封顶",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountPercentage, "20")
				c.MaxDiscount = decPtr("0")
				return c
			},
			amount:       "100",
			wantDiscount: "20",
			wantFinal:    "80",
		},
		{
			name:         "固定券不超过订单金额",
			coupon:       func() *Coupon { return sellerCoupon(7, DiscountFixed, "80") },
			amount:       "50",
			wantDiscount: "50",
			wantFinal:    "0",
		},
		{
			name:         "固定券正常抵扣",
			coupon:       func() *Coupon { return sellerCoupon(7, DiscountFixed, "10") },
			amount:       "99.99",
			wantDiscount: "10",
			wantFinal:    "89.99",
		},
		{
			name:         "百分比结果保留两位小数",
			coupon:       func() *Coupon { return sellerCoupon(7, DiscountPercentage, "15") },
			amount:       "33.33",
			wantDiscount: "5",
			wantFinal:    "28.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Evaluate(tt.coupon(), []uint{7}, dec(tt.amount), now)
			require.NoError(t, err)
			assert.Equal(t, uint(11), q.CouponID)
			assert.True(t, dec(tt.wantDiscount).Equal(q.DiscountAmount), "discount=%s", q.DiscountAmount)
			assert.True(t, dec(tt.wantFinal).Equal(q.FinalAmount), "final=%s", q.FinalAmount)
		})
	}
}

func TestEvaluate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		coupon   func() *Coupon
		sellers  []uint
		amount   string
		wantErr  error
		wantCode int
	}{
		{
			name:     "券不存在",
			coupon:   func() *Coupon { return nil },
			sellers:  []uint{7},
			amount:   "100",
			wantErr:  ErrInvalidOrExpired,
			wantCode: apperrors.ErrCodeCouponInvalid,
		},
		{
			name: "已停用",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.IsActive = false
				return c
			},
			sellers: []uint{7},
			amount:  "100",
			wantErr: ErrInvalidOrExpired,
		},
		{
			name: "status非active",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.Status = StatusInactive
				return c
			},
			sellers: []uint{7},
			amount:  "100",
			wantErr: ErrInvalidOrExpired,
		},
		{
			name: "已过期",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.EndDate = now.Add(-time.Second)
				return c
			},
			sellers: []uint{7},
			amount:  "100",
			wantErr: ErrInvalidOrExpired,
		},
		{
			name: "尚未生效",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.StartDate = now.Add(time.Hour)
				return c
			},
			sellers: []uint{7},
			amount:  "100",
			wantErr: ErrInvalidOrExpired,
		},
		{
			name:     "多个卖家",
			coupon:   func() *Coupon { return sellerCoupon(7, DiscountFixed, "10") },
			sellers:  []uint{7, 8},
			amount:   "100",
			wantErr:  ErrSellerScope,
			wantCode: apperrors.ErrCodeCouponScope,
		},
		{
			name:    "其他卖家的商品",
			coupon:  func() *Coupon { return sellerCoupon(7, DiscountFixed, "10") },
			sellers: []uint{8},
			amount:  "100",
			wantErr: ErrSellerScope,
		},
		{
			name: "平台券不适用",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.SellerID = nil
				return c
			},
			sellers: []uint{7},
			amount:  "100",
			wantErr: ErrSellerScope,
		},
		{
			name:    "没有商品",
			coupon:  func() *Coupon { return sellerCoupon(7, DiscountFixed, "10") },
			sellers: nil,
			amount:  "100",
			wantErr: ErrSellerScope,
		},
		{
			name: "次数用尽",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.UsageLimit = 3
				c.UsageCount = 3
				return c
			},
			sellers:  []uint{7},
			amount:   "100",
			wantErr:  ErrUsageLimitReached,
			wantCode: apperrors.ErrCodeCouponExhausted,
		},
		{
			name: "未达最低消费",
			coupon: func() *Coupon {
				c := sellerCoupon(7, DiscountFixed, "10")
				c.MinPurchase = dec("100")
				return c
			},
			sellers:  []uint{7},
			amount:   "60",
			wantErr:  ErrMinPurchase,
			wantCode: apperrors.ErrCodeCouponMinPurchase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Evaluate(tt.coupon(), tt.sellers, dec(tt.amount), now)
			assert.Nil(t, q)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantCode != 0 {
				assert.True(t, apperrors.HasCode(err, tt.wantCode))
			}
		})
	}
}

func TestEvaluate_Messages(t *testing.T) {
	c := sellerCoupon(7, DiscountFixed, "10")
	c.MinPurchase = dec("100")

	_, err := Evaluate(c, []uint{7}, dec("60"), now)
	assert.Equal(t, "Minimum purchase of ₹100.00 required", apperrors.GetAppError(err).Message)

	_, err = Evaluate(c, []uint{7, 9}, dec("160"), now)
	assert.Equal(t, "Coupon can only be applied to products of the seller who created it.", apperrors.GetAppError(err).Message)

	_, err = Evaluate(nil, []uint{7}, dec("160"), now)
	assert.Equal(t, "Invalid or expired coupon", apperrors.GetAppError(err).Message)
}

// 多项同时不满足时按固定顺序报告第一个
func TestEvaluate_CheckOrder(t *testing.T) {
	c := sellerCoupon(7, DiscountFixed, "10")
	c.UsageLimit = 1
	c.UsageCount = 1
	c.MinPurchase = dec("500")

	_, err := Evaluate(c, []uint{8}, dec("10"), now)
	assert.ErrorIs(t, err, ErrSellerScope)

	_, err = Evaluate(c, []uint{7}, dec("10"), now)
	assert.ErrorIs(t, err, ErrUsageLimitReached)

	c.EndDate = now.Add(-time.Hour)
	_, err = Evaluate(c, []uint{8}, dec("10"), now)
	assert.ErrorIs(t, err, ErrInvalidOrExpired)
}

func TestEvaluate_WindowBoundsInclusive(t *testing.T) {
	c := sellerCoupon(7, DiscountFixed, "10")
	c.StartDate = now
	c.EndDate = now

	_, err := Evaluate(c, []uint{7}, dec("100"), now)
	assert.NoError(t, err)
}

func TestEvaluate_DuplicateSellerEntries(t *testing.T) {
	c := sellerCoupon(7, DiscountFixed, "10")
	q, err := Evaluate(c, []uint{7, 7, 7}, dec("100"), now)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(q.DiscountAmount))
}

func TestEvaluate_UnlimitedUsage(t *testing.T) {
	c := sellerCoupon(7, DiscountFixed, "10")
	c.UsageLimit = 0
	c.UsageCount = 1000

	_, err := Evaluate(c, []uint{7}, dec("100"), now)
	assert.NoError(t, err)
}
