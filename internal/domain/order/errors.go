package order

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found")

	ErrEmptyItems = apperrors.New(apperrors.ErrCodeInvalidParams, "Order must contain at least one item")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Item quantity must be greater than 0")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Item price cannot be negative")

	ErrDuplicateVariant = apperrors.New(apperrors.ErrCodeInvalidParams, "Each product variant may appear only once per order")

	ErrMissingAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "Billing and shipping addresses are required")

	ErrNegativeAmount = apperrors.New(apperrors.ErrCodeInvalidParams, "Amounts cannot be negative")

	// ErrAmountMismatch 提交金额与服务端计算结果不一致
	ErrAmountMismatch = apperrors.New(apperrors.ErrCodeAmountMismatch, "Order amounts do not reconcile")

	ErrSellerMismatch = apperrors.New(apperrors.ErrCodeSellerMismatch, "Item seller does not match the product seller")

	ErrCreateFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Failed to create order")

	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "Unknown order_status or payment_status")

	ErrForbidden = apperrors.New(apperrors.ErrCodeForbidden, "You can only view your own orders")
)
