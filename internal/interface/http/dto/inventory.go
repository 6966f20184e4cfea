package dto

import "time"

// RestockRequest 补货
type RestockRequest struct {
	Quantity    int        `json:"quantity" binding:"required,min=1" example:"50"`
	RestockDate *time.Time `json:"restock_date"`
	Remark      string     `json:"remark" binding:"max=255"`
}

// AdjustStockRequest 校正为绝对库存
type AdjustStockRequest struct {
	Stock       *int       `json:"stock" binding:"required,min=0" example:"20"`
	RestockDate *time.Time `json:"restock_date"`
	Remark      string     `json:"remark" binding:"max=255"`
}
