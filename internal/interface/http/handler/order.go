package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/shopcore/internal/application/order"
	"github.com/xiebiao/shopcore/internal/domain/order"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrderUseCase   *apporder.PlaceOrderUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase
}

func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:   placeOrderUseCase,
		getOrderUseCase:     getOrderUseCase,
		listOrdersUseCase:   listOrdersUseCase,
		listMyOrdersUseCase: listMyOrdersUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  锁库存、锁优惠券、对账金额后在一个事务内写入订单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.PlaceOrderResponse}
// @Failure      400 {object} response.Response "参数错误、库存不足、优惠券不可用或金额不一致"
// @Failure      404 {object} response.Response "商品规格不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	items := make([]apporder.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.PlaceOrderItem{
			VariantID: item.ProductVariantID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	resp, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:            middleware.MustGetUserID(c),
		TotalAmount:       req.TotalAmount,
		DiscountAmount:    req.DiscountAmount,
		CouponID:          req.CouponID,
		BillingAddressID:  req.BillingAddressID,
		ShippingAddressID: req.ShippingAddressID,
		OrderStatus:       order.OrderStatus(req.OrderStatus),
		PaymentStatus:     order.PaymentStatus(req.PaymentStatus),
		PaymentMethod:     req.PaymentMethod,
		PaymentReference:  req.PaymentReference,
		Items:             items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Get 订单详情（下单人或管理员）
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      403 {object} response.Response "无权查看"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.getOrderUseCase.Execute(c.Request.Context(), apporder.GetOrderRequest{
		OrderID: id,
		UserID:  middleware.MustGetUserID(c),
		IsAdmin: middleware.IsAdmin(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Mine 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/orders/mine [get]
func (h *OrderHandler) Mine(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := q.Normalize()

	resp, err := h.listMyOrdersUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resp.Orders, resp.Total, page, size)
}

// List 全部订单（管理员）
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page           query int    false "页码"
// @Param        page_size      query int    false "每页数量"
// @Param        user_id        query int    false "下单用户"
// @Param        order_status   query string false "订单状态"
// @Param        payment_status query string false "支付状态"
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "非管理员"
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := req.Normalize()

	resp, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		Page:          page,
		PageSize:      size,
		UserID:        req.UserID,
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resp.Orders, resp.Total, page, size)
}
