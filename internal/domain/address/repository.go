package address

import (
	"context"
)

// Repository 地址仓储接口
type Repository interface {
	Create(ctx context.Context, a *Address) error

	// FindByID 不存在返回ErrAddressNotFound
	FindByID(ctx context.Context, id uint) (*Address, error)

	// LockOwned 下单时对用户自己的地址加共享锁，缺失或不属于该用户的ID不出现在结果中
	LockOwned(ctx context.Context, userID uint, ids []uint) (map[uint]*Address, error)

	// ListByUser 按更新时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)

	Update(ctx context.Context, a *Address) error

	// Delete 仅当没有订单引用时删除，被引用返回ErrAddressInUse
	Delete(ctx context.Context, id uint) error
}
