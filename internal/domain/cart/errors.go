package cart

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var (
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "Cart item not found")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be between 1 and 99")
)

// MaxQuantity 单个条目数量上限
const MaxQuantity = 99
