package inventory

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var (
	ErrInventoryNotFound = apperrors.New(apperrors.ErrCodeInventoryNotFound, "Inventory not found")

	// ErrInsufficientStock 使用Insufficient构造带规格ID与数量的提示
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "Insufficient stock")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be greater than 0")

	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "Stock cannot be negative")

	ErrForbidden = apperrors.New(apperrors.ErrCodeForbidden, "Only the owning seller can change this inventory")
)

// Insufficient 库存不足错误，提示中包含规格ID、可用与请求数量
func Insufficient(variantID uint, available, requested int) error {
	return ErrInsufficientStock.WithMessage(
		"Insufficient stock for product variant %d: available %d, requested %d",
		variantID, available, requested)
}
