package catalog

import (
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

var (
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "Product not found")

	// ErrVariantNotFound 使用VariantNotFound带上规格ID
	ErrVariantNotFound = apperrors.New(apperrors.ErrCodeVariantNotFound, "Product variant not found")

	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU already exists")

	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "Product name must be 1-200 characters")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Base price must be greater than 0")

	ErrInvalidAdditionalPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Additional price cannot be negative")

	ErrNoVariants = apperrors.New(apperrors.ErrCodeInvalidParams, "A product needs at least one variant")

	ErrInvalidSKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU is required")
)

// VariantNotFound 指定规格不存在
func VariantNotFound(variantID uint) error {
	return ErrVariantNotFound.WithMessage("Product variant %d not found", variantID)
}
