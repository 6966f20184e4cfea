package cart

import (
	"time"
)

// Item 购物车条目，同一用户同一规格只有一行
type Item struct {
	ID        uint
	UserID    uint
	VariantID uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 创建购物车条目
func NewItem(userID, variantID uint, quantity int) *Item {
	now := time.Now()
	return &Item{
		UserID:    userID,
		VariantID: variantID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy 条目是否属于该用户
func (i *Item) IsOwnedBy(userID uint) bool {
	return i.UserID == userID
}
