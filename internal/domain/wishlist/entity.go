package wishlist

import (
	"time"
)

// Item 心愿单条目，同一用户同一商品只有一行
type Item struct {
	ID        uint
	UserID    uint
	ProductID uint
	CreatedAt time.Time
}

// NewItem 创建心愿单条目
func NewItem(userID, productID uint) *Item {
	return &Item{UserID: userID, ProductID: productID, CreatedAt: time.Now()}
}
