package coupon

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/coupon"
)

// CreateCouponUseCase 卖家创建优惠券，卖家ID取自JWT
type CreateCouponUseCase struct {
	couponService coupon.Service
	logger        *zap.Logger
}

func NewCreateCouponUseCase(couponService coupon.Service, logger *zap.Logger) *CreateCouponUseCase {
	return &CreateCouponUseCase{couponService: couponService, logger: logger}
}

func (uc *CreateCouponUseCase) Execute(ctx context.Context, sellerID uint, p coupon.CreateParams) (*CouponView, error) {
	c, err := uc.couponService.Create(ctx, sellerID, p)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("优惠券已创建",
		zap.Uint("coupon_id", c.ID),
		zap.String("code", c.Code),
		zap.Uint("seller_id", sellerID))
	return toCouponView(c), nil
}

// UpdateCouponUseCase 更新优惠券（仅创建者）
type UpdateCouponUseCase struct {
	couponService coupon.Service
}

func NewUpdateCouponUseCase(couponService coupon.Service) *UpdateCouponUseCase {
	return &UpdateCouponUseCase{couponService: couponService}
}

func (uc *UpdateCouponUseCase) Execute(ctx context.Context, id, sellerID uint, p coupon.UpdateParams) (*CouponView, error) {
	c, err := uc.couponService.Update(ctx, id, sellerID, p)
	if err != nil {
		return nil, err
	}
	return toCouponView(c), nil
}

// DeleteCouponUseCase 删除优惠券
// 卖家删除是软删除（历史订单与核销记录仍引用该券），管理员可物理删除
type DeleteCouponUseCase struct {
	couponService coupon.Service
	logger        *zap.Logger
}

func NewDeleteCouponUseCase(couponService coupon.Service, logger *zap.Logger) *DeleteCouponUseCase {
	return &DeleteCouponUseCase{couponService: couponService, logger: logger}
}

// Deactivate 软删除
func (uc *DeleteCouponUseCase) Deactivate(ctx context.Context, id, sellerID uint) error {
	return uc.couponService.Deactivate(ctx, id, sellerID)
}

// HardDelete 物理删除
func (uc *DeleteCouponUseCase) HardDelete(ctx context.Context, id uint) error {
	if err := uc.couponService.HardDelete(ctx, id); err != nil {
		return err
	}
	uc.logger.Warn("优惠券已物理删除", zap.Uint("coupon_id", id))
	return nil
}
