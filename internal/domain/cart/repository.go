package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// Upsert 按(user_id, variant_id)累加数量，不存在则插入，返回最新条目
	Upsert(ctx context.Context, item *Item) (*Item, error)

	// FindByID 不存在返回ErrItemNotFound
	FindByID(ctx context.Context, id uint) (*Item, error)

	// ListByUser 用户全部条目，按创建时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)

	// UpdateQuantity 设置条目数量
	UpdateQuantity(ctx context.Context, id uint, quantity int) error

	// Delete 删除单个条目
	Delete(ctx context.Context, id uint) error

	// Clear 清空用户购物车
	Clear(ctx context.Context, userID uint) error

	// DeleteByVariantIDs 删除用户购物车中指定规格的条目（下单后清理）
	DeleteByVariantIDs(ctx context.Context, userID uint, variantIDs []uint) (int64, error)
}
