package order

import (
	"context"
)

// Repository 订单仓储接口
// 由domain层定义，infrastructure层实现；事务通过ctx传递
type Repository interface {
	// Create 写入订单、全部明细和支付记录，回填各自的ID
	// 必须在下单事务中调用
	Create(ctx context.Context, order *Order) error

	// FindByID 查询订单（含明细与支付记录）
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查询
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// ListByUserID 用户订单分页列表（不含明细），按创建时间倒序
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// List 管理端分页列表
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)
}

// ListParams 管理端列表查询参数
type ListParams struct {
	Page          int
	PageSize      int
	UserID        *uint
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
}
