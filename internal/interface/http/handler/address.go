package handler

import (
	"github.com/gin-gonic/gin"

	appaddress "github.com/xiebiao/shopcore/internal/application/address"
	"github.com/xiebiao/shopcore/internal/domain/address"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// AddressHandler 地址簿HTTP处理器
type AddressHandler struct {
	createUseCase *appaddress.CreateAddressUseCase
	manageUseCase *appaddress.ManageAddressUseCase
}

func NewAddressHandler(createUseCase *appaddress.CreateAddressUseCase, manageUseCase *appaddress.ManageAddressUseCase) *AddressHandler {
	return &AddressHandler{createUseCase: createUseCase, manageUseCase: manageUseCase}
}

// Create 新建地址
// @Summary      新建地址
// @Description  billing_same_as_shipping为true且type为shipping时同时创建账单地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAddressRequest true "地址"
// @Success      201 {object} response.Response{data=[]appaddress.View}
// @Failure      400 {object} response.Response "缺少必填字段或类型非法"
// @Router       /api/v1/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	views, err := h.createUseCase.Execute(c.Request.Context(), appaddress.CreateAddressRequest{
		UserID:                middleware.MustGetUserID(c),
		Type:                  address.Type(req.Type),
		Fields:                addressFields(req.AddressFields),
		BillingSameAsShipping: req.BillingSameAsShipping,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, views)
}

// List 地址簿
// @Summary      查看地址簿
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appaddress.BookView}
// @Router       /api/v1/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	book, err := h.manageUseCase.Book(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, book)
}

// Update 修改地址
// @Summary      修改地址
// @Tags         地址
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                      true "地址ID"
// @Param        request body dto.UpdateAddressRequest true "地址"
// @Success      200 {object} response.Response{data=appaddress.View}
// @Failure      404 {object} response.Response "地址不存在或不属于当前用户"
// @Router       /api/v1/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.manageUseCase.Update(c.Request.Context(), middleware.MustGetUserID(c), id,
		address.Type(req.Type), addressFields(req.AddressFields))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Delete 删除地址，被订单引用的地址不能删除
// @Summary      删除地址
// @Tags         地址
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "地址已被订单引用"
// @Router       /api/v1/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manageUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func addressFields(f dto.AddressFields) address.Fields {
	return address.Fields{
		FullName:   f.FullName,
		Line1:      f.Line1,
		Line2:      f.Line2,
		City:       f.City,
		State:      f.State,
		Country:    f.Country,
		PostalCode: f.PostalCode,
		Phone:      f.Phone,
	}
}
