package handler

import (
	"github.com/gin-gonic/gin"

	appwishlist "github.com/xiebiao/shopcore/internal/application/wishlist"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器
type WishlistHandler struct {
	addUseCase    *appwishlist.AddToWishlistUseCase
	getUseCase    *appwishlist.GetWishlistUseCase
	removeUseCase *appwishlist.RemoveFromWishlistUseCase
	moveUseCase   *appwishlist.MoveToCartUseCase
}

func NewWishlistHandler(
	addUseCase *appwishlist.AddToWishlistUseCase,
	getUseCase *appwishlist.GetWishlistUseCase,
	removeUseCase *appwishlist.RemoveFromWishlistUseCase,
	moveUseCase *appwishlist.MoveToCartUseCase,
) *WishlistHandler {
	return &WishlistHandler{
		addUseCase:    addUseCase,
		getUseCase:    getUseCase,
		removeUseCase: removeUseCase,
		moveUseCase:   moveUseCase,
	}
}

// Add 加入心愿单
// @Summary      加入心愿单
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToWishlistRequest true "商品"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response "已在心愿单中"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	item, err := h.addUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": item.ID, "product_id": item.ProductID})
}

// Get 查看心愿单
// @Summary      查看心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appwishlist.ItemView}
// @Router       /api/v1/wishlist [get]
func (h *WishlistHandler) Get(c *gin.Context) {
	views, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// Remove 移出心愿单
// @Summary      移出心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "不在心愿单中"
// @Router       /api/v1/wishlist/{product_id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	if err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), productID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MoveToCart 选定规格移入购物车
// @Summary      移入购物车
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int                   true "商品ID"
// @Param        request    body dto.MoveToCartRequest true "规格与数量"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "库存不足"
// @Router       /api/v1/wishlist/{product_id}/cart [post]
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	var req dto.MoveToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	err := h.moveUseCase.Execute(c.Request.Context(), appwishlist.MoveToCartRequest{
		UserID:    middleware.MustGetUserID(c),
		ProductID: productID,
		VariantID: req.ProductVariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
