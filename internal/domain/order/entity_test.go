package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrder(total, discount string) *Order {
	items := []OrderItem{
		{VariantID: 30, SellerID: 2, Quantity: 2, Price: dec("25.50")},
		{VariantID: 10, SellerID: 2, Quantity: 1, Price: dec("49.00")},
	}
	return NewOrder("ORD1", 5, items, dec(total), dec(discount), nil, 1, 2, "", "", "card", "")
}

func TestNewOrder_Defaults(t *testing.T) {
	o := sampleOrder("100", "0")

	assert.Equal(t, OrderStatusPending, o.OrderStatus)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	require.NotNil(t, o.Payment)
	assert.Equal(t, o.PaymentStatus, o.Payment.Status)
	assert.Equal(t, "card", o.Payment.Method)
	assert.False(t, o.HasCoupon())
}

func TestOrder_Subtotal(t *testing.T) {
	o := sampleOrder("100", "0")
	assert.True(t, dec("100").Equal(o.Subtotal()), "subtotal=%s", o.Subtotal())
}

func TestOrder_Reconcile(t *testing.T) {
	t.Run("无折扣金额一致", func(t *testing.T) {
		assert.NoError(t, sampleOrder("100", "0").Reconcile(decimal.Zero))
	})

	t.Run("有折扣金额一致", func(t *testing.T) {
		assert.NoError(t, sampleOrder("85", "15").Reconcile(dec("15")))
	})

	t.Run("折扣与计算结果不一致", func(t *testing.T) {
		err := sampleOrder("70", "30").Reconcile(dec("15"))
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAmountMismatch))
		assert.Contains(t, apperrors.GetAppError(err).Message, "expected 15.00")
	})

	t.Run("总额与小计减折扣不一致", func(t *testing.T) {
		err := sampleOrder("1", "0").Reconcile(decimal.Zero)
		assert.ErrorIs(t, err, ErrAmountMismatch)
		assert.True(t, strings.HasPrefix(apperrors.GetAppError(err).Message, "Total mismatch"))
	})

	t.Run("未使用券却提交折扣", func(t *testing.T) {
		assert.ErrorIs(t, sampleOrder("90", "10").Reconcile(decimal.Zero), ErrAmountMismatch)
	})

	t.Run("负数金额", func(t *testing.T) {
		assert.ErrorIs(t, sampleOrder("-1", "0").Reconcile(decimal.Zero), ErrNegativeAmount)
	})

	t.Run("提交金额多余小数位按两位比较", func(t *testing.T) {
		assert.NoError(t, sampleOrder("100.001", "0").Reconcile(decimal.Zero))
	})
}

func TestOrder_VariantAndSellerIDs(t *testing.T) {
	o := sampleOrder("100", "0")
	o.Items = append(o.Items, OrderItem{VariantID: 20, SellerID: 1, Quantity: 1, Price: dec("1")})

	assert.Equal(t, []uint{10, 20, 30}, o.VariantIDs())
	assert.Equal(t, []uint{1, 2}, o.SellerIDs())
}

func TestGenerateOrderNo(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		no := GenerateOrderNo()
		assert.True(t, strings.HasPrefix(no, "ORD"))
		assert.Len(t, no, 3+14+8)
		_, dup := seen[no]
		assert.False(t, dup)
		seen[no] = struct{}{}
	}
}
