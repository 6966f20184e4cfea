package dto

import "github.com/shopspring/decimal"

// PublishProductRequest 上架商品
type PublishProductRequest struct {
	Name        string                  `json:"name" binding:"required,max=200" example:"Linen Shirt"`
	Description string                  `json:"description" binding:"max=5000"`
	BasePrice   decimal.Decimal         `json:"base_price" binding:"gtdecimal0" swaggertype:"string" example:"49.90"`
	Variants    []PublishVariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// PublishVariantRequest 规格与初始库存
type PublishVariantRequest struct {
	Size            string          `json:"size" binding:"max=20" example:"M"`
	Color           string          `json:"color" binding:"max=30" example:"white"`
	SKU             string          `json:"sku" binding:"required,max=64" example:"LIN-M-WHT"`
	AdditionalPrice decimal.Decimal `json:"additional_price" binding:"money" swaggertype:"string" example:"0"`
	Stock           int             `json:"stock" binding:"min=0" example:"100"`
}

// ListProductsRequest 商品列表
type ListProductsRequest struct {
	PageQuery
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
	SellerID *uint  `form:"seller_id"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc"`
}
