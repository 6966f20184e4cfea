package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/shopcore/internal/application/catalog"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	publishUseCase *appcatalog.PublishProductUseCase
	listUseCase    *appcatalog.ListProductsUseCase
	getUseCase     *appcatalog.GetProductUseCase
}

func NewProductHandler(publishUseCase *appcatalog.PublishProductUseCase, listUseCase *appcatalog.ListProductsUseCase, getUseCase *appcatalog.GetProductUseCase) *ProductHandler {
	return &ProductHandler{
		publishUseCase: publishUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
	}
}

// Publish 卖家上架商品
// @Summary      上架商品
// @Description  商品、规格与初始库存在同一事务中创建
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=appcatalog.ProductView}
// @Failure      400 {object} response.Response "参数错误或SKU已存在"
// @Failure      403 {object} response.Response "非卖家"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Publish(c *gin.Context) {
	var req dto.PublishProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	variants := make([]appcatalog.PublishVariant, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = appcatalog.PublishVariant{
			Size:            v.Size,
			Color:           v.Color,
			SKU:             v.SKU,
			AdditionalPrice: v.AdditionalPrice,
			Stock:           v.Stock,
		}
	}
	view, err := h.publishUseCase.Execute(c.Request.Context(), appcatalog.PublishProductRequest{
		SellerID:    middleware.MustGetUserID(c),
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Variants:    variants,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// List 商品列表
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "名称关键字"
// @Param        seller_id query int    false "卖家ID"
// @Param        sort_by   query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := req.Normalize()

	resp, err := h.listUseCase.Execute(c.Request.Context(), appcatalog.ListProductsRequest{
		Page:     page,
		PageSize: size,
		Keyword:  req.Keyword,
		SellerID: req.SellerID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, resp.Products, resp.Total, page, size)
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appcatalog.ProductView}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
