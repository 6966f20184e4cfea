package dto

// AddressFields 地址内容，必填项由领域层统一校验并列出缺失字段
type AddressFields struct {
	FullName   string `json:"full_name" binding:"max=100" example:"Alice Zhang"`
	Line1      string `json:"line1" binding:"max=255" example:"88 Century Ave"`
	Line2      string `json:"line2" binding:"max=255"`
	City       string `json:"city" binding:"max=100" example:"Shanghai"`
	State      string `json:"state" binding:"max=100" example:"Shanghai"`
	Country    string `json:"country" binding:"max=100" example:"CN"`
	PostalCode string `json:"postal_code" binding:"max=20" example:"200120"`
	Phone      string `json:"phone_number" binding:"max=30" example:"13800000000"`
}

// CreateAddressRequest 新建地址
type CreateAddressRequest struct {
	Type string `json:"type" binding:"required" example:"shipping"`
	AddressFields
	BillingSameAsShipping bool `json:"billing_same_as_shipping"`
}

// UpdateAddressRequest 修改地址，type为空时不变
type UpdateAddressRequest struct {
	Type string `json:"type" example:"billing"`
	AddressFields
}

// AddToWishlistRequest 加入心愿单
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"3"`
}

// MoveToCartRequest 心愿单商品移入购物车
type MoveToCartRequest struct {
	ProductVariantID uint `json:"product_variant_id" binding:"required" example:"11"`
	Quantity         int  `json:"quantity" binding:"required,min=1,max=99" example:"1"`
}
