package wishlist

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var (
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeWishlistNotFound, "Product not in wishlist")

	ErrDuplicate = apperrors.New(apperrors.ErrCodeWishlistDuplicate, "Product already in wishlist")
)
