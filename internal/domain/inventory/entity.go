package inventory

import (
	"time"
)

// Inventory 库存（每个商品规格一行）
// Stock不能为负，扣减只能通过带条件的原子UPDATE完成
type Inventory struct {
	ID          uint
	VariantID   uint
	Stock       int
	RestockDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInventory 创建库存记录
func NewInventory(variantID uint, stock int) *Inventory {
	now := time.Now()
	return &Inventory{
		VariantID: variantID,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanDeduct 库存是否足够扣减
func (i *Inventory) CanDeduct(quantity int) bool {
	return quantity > 0 && i.Stock >= quantity
}

// ChangeType 库存变更类型
type ChangeType string

const (
	ChangeTypeDeduct  ChangeType = "DEDUCT"  // 下单扣减
	ChangeTypeRestock ChangeType = "RESTOCK" // 补货
	ChangeTypeAdjust  ChangeType = "ADJUST"  // 初始化或人工校正
)

// Log 库存变更日志，只增不改
// Quantity带符号：负数为减少，正数为增加
type Log struct {
	ID          uint
	VariantID   uint
	ChangeType  ChangeType
	Quantity    int
	BeforeStock int
	AfterStock  int
	OrderID     *uint
	Remark      string
	CreatedAt   time.Time
}

// NewDeductLog 下单扣减日志
func NewDeductLog(variantID uint, quantity, before int, orderID uint) *Log {
	return &Log{
		VariantID:   variantID,
		ChangeType:  ChangeTypeDeduct,
		Quantity:    -quantity,
		BeforeStock: before,
		AfterStock:  before - quantity,
		OrderID:     &orderID,
		CreatedAt:   time.Now(),
	}
}

// NewRestockLog 补货日志
func NewRestockLog(variantID uint, quantity, before int, remark string) *Log {
	return &Log{
		VariantID:   variantID,
		ChangeType:  ChangeTypeRestock,
		Quantity:    quantity,
		BeforeStock: before,
		AfterStock:  before + quantity,
		Remark:      remark,
		CreatedAt:   time.Now(),
	}
}

// NewAdjustLog 校正日志（直接设置为目标库存）
func NewAdjustLog(variantID uint, before, after int, remark string) *Log {
	return &Log{
		VariantID:   variantID,
		ChangeType:  ChangeTypeAdjust,
		Quantity:    after - before,
		BeforeStock: before,
		AfterStock:  after,
		Remark:      remark,
		CreatedAt:   time.Now(),
	}
}
