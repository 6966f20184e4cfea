package coupon

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

// 校验失败的提示语是对外契约，客户端按原文展示
var (
	ErrInvalidOrExpired = apperrors.New(apperrors.ErrCodeCouponInvalid, "Invalid or expired coupon")

	ErrSellerScope = apperrors.New(apperrors.ErrCodeCouponScope,
		"Coupon can only be applied to products of the seller who created it.")

	ErrUsageLimitReached = apperrors.New(apperrors.ErrCodeCouponExhausted, "Coupon usage limit reached")

	// ErrMinPurchase 使用时通过WithMessage带上具体金额
	ErrMinPurchase = apperrors.New(apperrors.ErrCodeCouponMinPurchase, "Minimum purchase required")

	ErrInvalidOrderAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid or missing order amount")

	ErrNoProducts = apperrors.New(apperrors.ErrCodeInvalidParams, "No products provided to validate coupon against.")
)

// 管理类错误
var (
	ErrCouponNotFound = apperrors.New(apperrors.ErrCodeCouponNotFound, "Coupon not found")

	ErrCodeDuplicate = apperrors.New(apperrors.ErrCodeCouponDuplicate,
		"Coupon code already exists. Please use a different code.")

	ErrInvalidWindow = apperrors.New(apperrors.ErrCodeInvalidParams, "Start date must be before end date")

	ErrInvalidValue = apperrors.New(apperrors.ErrCodeInvalidParams, "Coupon value must be greater than 0")

	ErrInvalidPercentage = apperrors.New(apperrors.ErrCodeInvalidParams, "Percentage coupon value cannot exceed 100")

	ErrInvalidDiscountType = apperrors.New(apperrors.ErrCodeInvalidParams, "discount_type must be percentage or fixed")

	ErrInvalidUsageLimit = apperrors.New(apperrors.ErrCodeInvalidParams, "usage_limit cannot be negative")

	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "Access denied. You can only manage your own coupons")

	ErrCouponInUse = apperrors.New(apperrors.ErrCodeCouponInUse,
		"Coupon has been used by orders and cannot be deleted. Deactivate it instead.")
)
