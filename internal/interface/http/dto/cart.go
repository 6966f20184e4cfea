package dto

// AddToCartRequest 加入购物车
type AddToCartRequest struct {
	ProductVariantID uint `json:"product_variant_id" binding:"required" example:"11"`
	Quantity         int  `json:"quantity" binding:"required,min=1,max=99" example:"1"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99" example:"2"`
}
