package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/pkg/metrics"
	"github.com/xiebiao/shopcore/pkg/tracing"
)

// ValidateCouponUseCase 结算前的优惠券校验（只读，不占用次数）
type ValidateCouponUseCase struct {
	couponRepo coupon.Repository
	catalog    catalog.Service
	logger     *zap.Logger
	now        func() time.Time
}

// NewValidateCouponUseCase 创建优惠券校验用例
func NewValidateCouponUseCase(couponRepo coupon.Repository, catalogService catalog.Service, logger *zap.Logger) *ValidateCouponUseCase {
	return &ValidateCouponUseCase{
		couponRepo: couponRepo,
		catalog:    catalogService,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateCouponRequest 校验请求，OrderAmount为nil表示未提供
type ValidateCouponRequest struct {
	Code        string
	OrderAmount *decimal.Decimal
	VariantIDs  []uint
}

// Discount 校验通过时的折扣明细
type Discount struct {
	CouponID       uint            `json:"coupon_id"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
}

// Execute 校验失败返回对应的领域错误，由handler转换为{valid:false, message}
func (uc *ValidateCouponUseCase) Execute(ctx context.Context, req ValidateCouponRequest) (d *Discount, err error) {
	ctx, span := tracing.StartSpan(ctx, "application/coupon", "ValidateCoupon")
	defer func() {
		tracing.EndSpan(span, err)
		if err != nil {
			metrics.RecordCouponValidation("invalid")
		} else {
			metrics.RecordCouponValidation("valid")
		}
	}()

	if req.OrderAmount == nil || !req.OrderAmount.IsPositive() {
		return nil, coupon.ErrInvalidOrderAmount
	}
	ids := uniqueIDs(req.VariantIDs)
	if len(ids) == 0 {
		return nil, coupon.ErrNoProducts
	}

	c, err := uc.couponRepo.FindByCode(ctx, coupon.NormalizeCode(req.Code))
	if err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			return nil, coupon.ErrInvalidOrExpired
		}
		return nil, err
	}

	variants, err := uc.catalog.ResolveVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	sellerIDs := make([]uint, 0, len(ids))
	for _, id := range ids {
		sellerIDs = append(sellerIDs, variants[id].SellerID)
	}

	quote, err := coupon.Evaluate(c, sellerIDs, *req.OrderAmount, uc.now())
	if err != nil {
		uc.logger.Debug("优惠券校验未通过",
			zap.String("code", c.Code),
			zap.Error(err))
		return nil, err
	}

	return &Discount{
		CouponID:       quote.CouponID,
		DiscountAmount: quote.DiscountAmount,
		FinalAmount:    quote.FinalAmount,
	}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
