package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/shopcore/internal/application/cart"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	addUseCase    *appcart.AddToCartUseCase
	getUseCase    *appcart.GetCartUseCase
	manageUseCase *appcart.ManageCartUseCase
}

func NewCartHandler(addUseCase *appcart.AddToCartUseCase, getUseCase *appcart.GetCartUseCase, manageUseCase *appcart.ManageCartUseCase) *CartHandler {
	return &CartHandler{
		addUseCase:    addUseCase,
		getUseCase:    getUseCase,
		manageUseCase: manageUseCase,
	}
}

// Add 加入购物车，同一规格数量累加
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "规格与数量"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response "库存不足"
// @Router       /api/v1/cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	item, err := h.addUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.ProductVariantID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"id":                 item.ID,
		"product_variant_id": item.VariantID,
		"quantity":           item.Quantity,
	})
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Update 修改条目数量
// @Summary      修改数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "条目ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response
// @Router       /api/v1/cart/{id} [put]
func (h *CartHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	item, err := h.manageUseCase.UpdateQuantity(c.Request.Context(), middleware.MustGetUserID(c), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":                 item.ID,
		"product_variant_id": item.VariantID,
		"quantity":           item.Quantity,
	})
}

// Remove 删除条目
// @Summary      删除条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/cart/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manageUseCase.Remove(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.manageUseCase.Clear(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
