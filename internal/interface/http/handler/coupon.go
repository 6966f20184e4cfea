package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcoupon "github.com/xiebiao/shopcore/internal/application/coupon"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/response"
)

// CouponHandler 优惠券HTTP处理器
type CouponHandler struct {
	validateUseCase *appcoupon.ValidateCouponUseCase
	createUseCase   *appcoupon.CreateCouponUseCase
	updateUseCase   *appcoupon.UpdateCouponUseCase
	deleteUseCase   *appcoupon.DeleteCouponUseCase
	queryUseCase    *appcoupon.QueryCouponUseCase
}

func NewCouponHandler(
	validateUseCase *appcoupon.ValidateCouponUseCase,
	createUseCase *appcoupon.CreateCouponUseCase,
	updateUseCase *appcoupon.UpdateCouponUseCase,
	deleteUseCase *appcoupon.DeleteCouponUseCase,
	queryUseCase *appcoupon.QueryCouponUseCase,
) *CouponHandler {
	return &CouponHandler{
		validateUseCase: validateUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		queryUseCase:    queryUseCase,
	}
}

// Validate 结算前校验优惠券
// 响应不走统一包装：{valid, message, discount}
// @Summary      校验优惠券
// @Tags         优惠券
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ValidateCouponRequest true "券码、订单金额与商品规格"
// @Success      200 {object} dto.ValidateCouponResponse
// @Failure      400 {object} dto.ValidateCouponResponse "不满足使用条件"
// @Failure      404 {object} dto.ValidateCouponResponse "券无效或已过期"
// @Router       /api/v1/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidateCouponResponse{
			Valid:   false,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	discount, err := h.validateUseCase.Execute(c.Request.Context(), appcoupon.ValidateCouponRequest{
		Code:        req.Code,
		OrderAmount: req.OrderAmount,
		VariantIDs:  req.ProductVariantIDs,
	})
	if err != nil {
		appErr := apperrors.GetAppError(err)
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			response.Error(c, err)
			return
		}
		c.JSON(appErr.HTTPStatus(), dto.ValidateCouponResponse{Valid: false, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusOK, dto.ValidateCouponResponse{
		Valid:    true,
		Message:  "Coupon is valid",
		Discount: discount,
	})
}

// Create 卖家创建优惠券
// @Summary      创建优惠券
// @Tags         优惠券
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCouponRequest true "优惠券"
// @Success      201 {object} response.Response{data=appcoupon.CouponView}
// @Failure      400 {object} response.Response "参数错误或券码重复"
// @Router       /api/v1/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	view, err := h.createUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), coupon.CreateParams{
		Code:         req.Code,
		Description:  req.Description,
		DiscountType: coupon.DiscountType(req.DiscountType),
		Value:        req.Value,
		MinPurchase:  req.MinPurchase,
		MaxDiscount:  req.MaxDiscount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		UsageLimit:   req.UsageLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Update 修改优惠券（仅创建者）
// @Summary      修改优惠券
// @Tags         优惠券
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "优惠券ID"
// @Param        request body dto.UpdateCouponRequest true "待修改字段"
// @Success      200 {object} response.Response{data=appcoupon.CouponView}
// @Failure      403 {object} response.Response "非创建者"
// @Router       /api/v1/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	view, err := h.updateUseCase.Execute(c.Request.Context(), id, middleware.MustGetUserID(c), coupon.UpdateParams{
		Code:        req.Code,
		Description: req.Description,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UsageLimit:  req.UsageLimit,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Deactivate 停用优惠券（软删除）
// @Summary      停用优惠券
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "优惠券ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/coupons/{id} [delete]
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteUseCase.Deactivate(c.Request.Context(), id, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// HardDelete 物理删除（管理员）
// @Summary      删除优惠券
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "优惠券ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/coupons/{id}/hard [delete]
func (h *CouponHandler) HardDelete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteUseCase.HardDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 优惠券详情
// @Summary      优惠券详情
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "优惠券ID"
// @Success      200 {object} response.Response{data=appcoupon.CouponView}
// @Router       /api/v1/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.queryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// GetByCode 按券码查询
// @Summary      按券码查询
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "券码"
// @Success      200 {object} response.Response{data=appcoupon.CouponView}
// @Router       /api/v1/coupons/code/{code} [get]
func (h *CouponHandler) GetByCode(c *gin.Context) {
	view, err := h.queryUseCase.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Mine 当前卖家的优惠券
// @Summary      我的优惠券
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/coupons/mine [get]
func (h *CouponHandler) Mine(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := q.Normalize()

	resp, err := h.queryUseCase.Mine(c.Request.Context(), middleware.MustGetUserID(c), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resp.Coupons, resp.Total, page, size)
}

// List 优惠券列表
// @Summary      优惠券列表
// @Tags         优惠券
// @Produce      json
// @Security     BearerAuth
// @Param        page          query int    false "页码"
// @Param        page_size     query int    false "每页数量"
// @Param        seller_id     query int    false "卖家ID"
// @Param        is_active     query bool   false "是否启用"
// @Param        discount_type query string false "折扣类型" Enums(percentage, fixed)
// @Param        search        query string false "券码关键字"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var req dto.ListCouponsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := req.Normalize()

	resp, err := h.queryUseCase.List(c.Request.Context(), appcoupon.ListCouponsRequest{
		Page:         page,
		PageSize:     size,
		SellerID:     req.SellerID,
		IsActive:     req.IsActive,
		DiscountType: req.DiscountType,
		Search:       req.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resp.Coupons, resp.Total, page, size)
}
