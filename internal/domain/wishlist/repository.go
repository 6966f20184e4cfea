package wishlist

import (
	"context"
)

// Repository 心愿单仓储接口
type Repository interface {
	// Create (user_id, product_id)重复返回ErrDuplicate
	Create(ctx context.Context, item *Item) error

	// ListByUser 按加入时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)

	// Delete 不存在返回ErrItemNotFound
	Delete(ctx context.Context, userID, productID uint) error
}
