package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
	"github.com/xiebiao/shopcore/internal/domain/order"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

func TestRejectReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{inventory.Insufficient(1, 0, 2), "insufficient_stock"},
		{order.ErrAmountMismatch, "amount_mismatch"},
		{coupon.ErrInvalidOrExpired, "coupon"},
		{coupon.ErrSellerScope, "coupon"},
		{coupon.ErrMinPurchase, "coupon"},
		{apperrors.ErrTimeout, "timeout"},
		{catalog.VariantNotFound(3), "not_found"},
		{order.ErrEmptyItems, "validation"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rejectReason(tt.err), tt.err.Error())
	}
}
