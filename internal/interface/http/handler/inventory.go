package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/shopcore/internal/application/inventory"
	"github.com/xiebiao/shopcore/internal/interface/http/dto"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// InventoryHandler 库存HTTP处理器
type InventoryHandler struct {
	getUseCase    *appinventory.GetStockUseCase
	changeUseCase *appinventory.ChangeStockUseCase
	logsUseCase   *appinventory.ListLogsUseCase
}

func NewInventoryHandler(getUseCase *appinventory.GetStockUseCase, changeUseCase *appinventory.ChangeStockUseCase, logsUseCase *appinventory.ListLogsUseCase) *InventoryHandler {
	return &InventoryHandler{
		getUseCase:    getUseCase,
		changeUseCase: changeUseCase,
		logsUseCase:   logsUseCase,
	}
}

func actor(c *gin.Context) appinventory.Actor {
	return appinventory.Actor{UserID: middleware.MustGetUserID(c), IsAdmin: middleware.IsAdmin(c)}
}

// Get 查询库存
// @Summary      查询库存
// @Tags         库存
// @Produce      json
// @Param        variant_id path int true "规格ID"
// @Success      200 {object} response.Response{data=appinventory.StockView}
// @Failure      404 {object} response.Response "库存记录不存在"
// @Router       /api/v1/inventory/{variant_id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	view, err := h.getUseCase.Execute(c.Request.Context(), variantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Restock 补货
// @Summary      补货
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        variant_id path int                true "规格ID"
// @Param        request    body dto.RestockRequest true "补货数量"
// @Success      200 {object} response.Response{data=appinventory.StockView}
// @Failure      403 {object} response.Response "非规格所属卖家"
// @Router       /api/v1/inventory/{variant_id}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.changeUseCase.Restock(c.Request.Context(), actor(c), appinventory.RestockRequest{
		VariantID:   variantID,
		Quantity:    req.Quantity,
		RestockDate: req.RestockDate,
		Remark:      req.Remark,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Adjust 校正库存
// @Summary      校正库存
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        variant_id path int                    true "规格ID"
// @Param        request    body dto.AdjustStockRequest true "目标库存"
// @Success      200 {object} response.Response{data=appinventory.StockView}
// @Router       /api/v1/inventory/{variant_id} [put]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.changeUseCase.Adjust(c.Request.Context(), actor(c), appinventory.AdjustRequest{
		VariantID:   variantID,
		Stock:       *req.Stock,
		RestockDate: req.RestockDate,
		Remark:      req.Remark,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Logs 库存变更日志
// @Summary      库存日志
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        variant_id path  int true  "规格ID"
// @Param        page       query int false "页码"
// @Param        page_size  query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/inventory/{variant_id}/logs [get]
func (h *InventoryHandler) Logs(c *gin.Context) {
	variantID, ok := pathID(c, "variant_id")
	if !ok {
		return
	}
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	page, size := q.Normalize()

	logs, total, err := h.logsUseCase.Execute(c.Request.Context(), variantID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, logs, total, page, size)
}
