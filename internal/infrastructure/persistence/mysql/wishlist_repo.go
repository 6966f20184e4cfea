package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/shopcore/internal/domain/wishlist"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *wishlist.Item) error {
	m := &WishlistModel{UserID: item.UserID, ProductID: item.ProductID}
	if err := dbFrom(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicateError(err) {
			return wishlist.ErrDuplicate
		}
		return apperrors.Wrap(err, "加入心愿单失败")
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]*wishlist.Item, error) {
	var models []WishlistModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}
	items := make([]*wishlist.Item, len(models))
	for i, m := range models {
		items[i] = &wishlist.Item{ID: m.ID, UserID: m.UserID, ProductID: m.ProductID, CreatedAt: m.CreatedAt}
	}
	return items, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, productID uint) error {
	result := dbFrom(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "移出心愿单失败")
	}
	if result.RowsAffected == 0 {
		return wishlist.ErrItemNotFound
	}
	return nil
}
