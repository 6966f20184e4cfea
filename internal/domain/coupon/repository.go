package coupon

import (
	"context"
)

// Repository 优惠券仓储接口
// 所有方法都会优先使用ctx中的事务
type Repository interface {
	// Create 创建优惠券，券码重复返回ErrCodeDuplicate
	Create(ctx context.Context, c *Coupon) error

	// FindByID 不存在返回ErrCouponNotFound
	FindByID(ctx context.Context, id uint) (*Coupon, error)

	// FindByCode 按券码精确查找（不过滤状态，资格由Evaluate判断）
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// LockByID SELECT ... FOR UPDATE，必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Coupon, error)

	// Update 保存可编辑字段与启用状态
	Update(ctx context.Context, c *Coupon) error

	// Delete 物理删除，仅当没有订单或核销记录引用该券时生效
	// 不存在返回ErrCouponNotFound，被引用返回ErrCouponInUse
	Delete(ctx context.Context, id uint) error

	// List 分页查询
	List(ctx context.Context, params ListParams) ([]*Coupon, int64, error)

	// IncrementUsage usage_count = usage_count + 1（原子自增）
	IncrementUsage(ctx context.Context, id uint) error

	// CreateRedemption 写入核销记录，同一订单重复写入会被唯一索引拒绝
	CreateRedemption(ctx context.Context, r *Redemption) error

	// FindRedemptionByOrderID 查询订单的核销记录，不存在返回(nil, nil)
	FindRedemptionByOrderID(ctx context.Context, orderID uint) (*Redemption, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page         int
	PageSize     int
	SellerID     *uint
	IsActive     *bool
	DiscountType DiscountType
	Search       string // 券码模糊匹配
}
