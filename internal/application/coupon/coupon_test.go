package coupon_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appcoupon "github.com/xiebiao/shopcore/internal/application/coupon"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/testutil"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newValidate(db *gorm.DB) *appcoupon.ValidateCouponUseCase {
	return appcoupon.NewValidateCouponUseCase(
		mysql.NewCouponRepository(db),
		catalog.NewService(mysql.NewCatalogRepository(db)),
		zap.NewNop(),
	)
}

func TestValidateCoupon(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.Seller(t, db, "seller@example.com")
	other := testutil.Seller(t, db, "other@example.com")
	shirt := testutil.Variant(t, db, seller, "SHIRT", "100.00", 10)
	hat := testutil.Variant(t, db, seller, "HAT", "50.00", 10)
	foreign := testutil.Variant(t, db, other, "MUG", "10.00", 10)

	couponID := testutil.Coupon(t, db, seller, "SAVE20", testutil.CouponOptions{MaxDiscount: "30", MinPurchase: "50"})
	testutil.Coupon(t, db, seller, "FLAT500", testutil.CouponOptions{DiscountType: "fixed", Value: "500"})
	testutil.Coupon(t, db, seller, "USEDUP", testutil.CouponOptions{UsageLimit: 3, UsageCount: 3})
	testutil.Coupon(t, db, seller, "OFF", testutil.CouponOptions{Inactive: true})
	testutil.Coupon(t, db, seller, "OLD", testutil.CouponOptions{
		Start: time.Now().Add(-48 * time.Hour), End: time.Now().Add(-24 * time.Hour),
	})

	uc := newValidate(db)
	ctx := context.Background()

	t.Run("percentage capped by max discount", func(t *testing.T) {
		d, err := uc.Execute(ctx, appcoupon.ValidateCouponRequest{
			Code: " SAVE20 ", OrderAmount: amount("200"), VariantIDs: []uint{shirt, hat, shirt},
		})
		require.NoError(t, err)
		assert.Equal(t, couponID, d.CouponID)
		assert.True(t, decimal.NewFromInt(30).Equal(d.DiscountAmount))
		assert.True(t, decimal.NewFromInt(170).Equal(d.FinalAmount))
	})

	t.Run("fixed discount never exceeds amount", func(t *testing.T) {
		d, err := uc.Execute(ctx, appcoupon.ValidateCouponRequest{
			Code: "FLAT500", OrderAmount: amount("120"), VariantIDs: []uint{shirt},
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(120).Equal(d.DiscountAmount))
		assert.True(t, d.FinalAmount.IsZero())
	})

	tests := []struct {
		name string
		req  appcoupon.ValidateCouponRequest
		want error
	}{
		{"missing amount", appcoupon.ValidateCouponRequest{Code: "SAVE20", VariantIDs: []uint{shirt}}, coupon.ErrInvalidOrderAmount},
		{"zero amount", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("0"), VariantIDs: []uint{shirt}}, coupon.ErrInvalidOrderAmount},
		{"no products", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("100")}, coupon.ErrNoProducts},
		{"unknown code", appcoupon.ValidateCouponRequest{Code: "NOPE", OrderAmount: amount("100"), VariantIDs: []uint{shirt}}, coupon.ErrInvalidOrExpired},
		{"inactive", appcoupon.ValidateCouponRequest{Code: "OFF", OrderAmount: amount("100"), VariantIDs: []uint{shirt}}, coupon.ErrInvalidOrExpired},
		{"expired", appcoupon.ValidateCouponRequest{Code: "OLD", OrderAmount: amount("100"), VariantIDs: []uint{shirt}}, coupon.ErrInvalidOrExpired},
		{"mixed sellers", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("100"), VariantIDs: []uint{shirt, foreign}}, coupon.ErrSellerScope},
		{"other seller only", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("100"), VariantIDs: []uint{foreign}}, coupon.ErrSellerScope},
		{"exhausted", appcoupon.ValidateCouponRequest{Code: "USEDUP", OrderAmount: amount("100"), VariantIDs: []uint{shirt}}, coupon.ErrUsageLimitReached},
		{"below minimum", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("49.99"), VariantIDs: []uint{shirt}}, coupon.ErrMinPurchase},
		{"unknown variant", appcoupon.ValidateCouponRequest{Code: "SAVE20", OrderAmount: amount("100"), VariantIDs: []uint{777}}, catalog.ErrVariantNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// 校验不占用次数
	assert.Equal(t, 0, testutil.UsageCount(t, db, couponID))
}

func TestValidateCoupon_MinPurchaseMessage(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.Seller(t, db, "seller@example.com")
	v := testutil.Variant(t, db, seller, "A", "10.00", 1)
	testutil.Coupon(t, db, seller, "MIN100", testutil.CouponOptions{MinPurchase: "100"})

	_, err := newValidate(db).Execute(context.Background(), appcoupon.ValidateCouponRequest{
		Code: "MIN100", OrderAmount: amount("10"), VariantIDs: []uint{v},
	})
	assert.Equal(t, "Minimum purchase of ₹100.00 required", apperrors.GetAppError(err).Message)
}

func TestManageCoupon(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.Seller(t, db, "seller@example.com")
	intruder := testutil.Seller(t, db, "intruder@example.com")
	ctx := context.Background()

	repo := mysql.NewCouponRepository(db)
	svc := coupon.NewService(repo)
	query := appcoupon.NewQueryCouponUseCase(repo)

	created, err := appcoupon.NewCreateCouponUseCase(svc, zap.NewNop()).Execute(ctx, seller, coupon.CreateParams{
		Code:         "WELCOME10",
		DiscountType: coupon.DiscountPercentage,
		Value:        decimal.NewFromInt(10),
		StartDate:    time.Now().Add(-time.Hour),
		EndDate:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "active", created.Status)

	t.Run("duplicate code", func(t *testing.T) {
		_, err := appcoupon.NewCreateCouponUseCase(svc, zap.NewNop()).Execute(ctx, seller, coupon.CreateParams{
			Code: "WELCOME10", DiscountType: coupon.DiscountFixed, Value: decimal.NewFromInt(5),
			StartDate: time.Now(), EndDate: time.Now().Add(time.Hour),
		})
		assert.ErrorIs(t, err, coupon.ErrCodeDuplicate)
	})

	t.Run("only owner may update", func(t *testing.T) {
		limit := 5
		_, err := appcoupon.NewUpdateCouponUseCase(svc).Execute(ctx, created.ID, intruder, coupon.UpdateParams{UsageLimit: &limit})
		assert.ErrorIs(t, err, coupon.ErrNotOwner)

		updated, err := appcoupon.NewUpdateCouponUseCase(svc).Execute(ctx, created.ID, seller, coupon.UpdateParams{UsageLimit: &limit})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.UsageLimit)
	})

	t.Run("deactivate keeps the row", func(t *testing.T) {
		del := appcoupon.NewDeleteCouponUseCase(svc, zap.NewNop())
		require.NoError(t, del.Deactivate(ctx, created.ID, seller))

		view, err := query.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, view.IsActive)

		active := true
		list, err := query.List(ctx, appcoupon.ListCouponsRequest{IsActive: &active})
		require.NoError(t, err)
		assert.Zero(t, list.Total)
	})

	t.Run("mine and by code", func(t *testing.T) {
		mine, err := query.Mine(ctx, seller, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, mine.Total)

		view, err := query.GetByCode(ctx, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, created.ID, view.ID)

		_, err = query.List(ctx, appcoupon.ListCouponsRequest{DiscountType: "bogus"})
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountType)
	})

	t.Run("hard delete", func(t *testing.T) {
		require.NoError(t, appcoupon.NewDeleteCouponUseCase(svc, zap.NewNop()).HardDelete(ctx, created.ID))
		_, err := query.Get(ctx, created.ID)
		assert.ErrorIs(t, err, coupon.ErrCouponNotFound)
	})
}
