package address

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var (
	// ErrAddressNotFound 他人的地址同样按不存在处理
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "Address not found or access denied.")

	ErrInvalidType = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid address type. Must be 'shipping' or 'billing'.")

	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "Missing required fields")

	ErrAddressInUse = apperrors.New(apperrors.ErrCodeAddressInUse,
		"Address is referenced by orders and cannot be deleted.")
)
