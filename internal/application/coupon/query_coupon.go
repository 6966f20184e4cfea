package coupon

import (
	"context"

	"github.com/xiebiao/shopcore/internal/domain/coupon"
)

// QueryCouponUseCase 优惠券查询（详情、按券码、列表、我的）
type QueryCouponUseCase struct {
	couponRepo coupon.Repository
}

func NewQueryCouponUseCase(couponRepo coupon.Repository) *QueryCouponUseCase {
	return &QueryCouponUseCase{couponRepo: couponRepo}
}

// ListCouponsRequest 列表筛选
type ListCouponsRequest struct {
	Page         int
	PageSize     int
	SellerID     *uint
	IsActive     *bool
	DiscountType string
	Search       string
}

// ListCouponsResponse 列表响应
type ListCouponsResponse struct {
	Coupons []*CouponView
	Total   int64
}

func (uc *QueryCouponUseCase) Get(ctx context.Context, id uint) (*CouponView, error) {
	c, err := uc.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCouponView(c), nil
}

func (uc *QueryCouponUseCase) GetByCode(ctx context.Context, code string) (*CouponView, error) {
	c, err := uc.couponRepo.FindByCode(ctx, coupon.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	return toCouponView(c), nil
}

func (uc *QueryCouponUseCase) List(ctx context.Context, req ListCouponsRequest) (*ListCouponsResponse, error) {
	if req.DiscountType != "" && !coupon.DiscountType(req.DiscountType).IsValid() {
		return nil, coupon.ErrInvalidDiscountType
	}
	coupons, total, err := uc.couponRepo.List(ctx, coupon.ListParams{
		Page:         req.Page,
		PageSize:     req.PageSize,
		SellerID:     req.SellerID,
		IsActive:     req.IsActive,
		DiscountType: coupon.DiscountType(req.DiscountType),
		Search:       req.Search,
	})
	if err != nil {
		return nil, err
	}

	views := make([]*CouponView, len(coupons))
	for i, c := range coupons {
		views[i] = toCouponView(c)
	}
	return &ListCouponsResponse{Coupons: views, Total: total}, nil
}

// Mine 当前卖家创建的优惠券
func (uc *QueryCouponUseCase) Mine(ctx context.Context, sellerID uint, page, pageSize int) (*ListCouponsResponse, error) {
	return uc.List(ctx, ListCouponsRequest{Page: page, PageSize: pageSize, SellerID: &sellerID})
}
