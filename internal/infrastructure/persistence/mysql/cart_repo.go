package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shopcore/internal/domain/cart"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Upsert INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + ?
// sqlite下GORM生成ON CONFLICT(user_id, variant_id) DO UPDATE，语义相同
func (r *cartRepository) Upsert(ctx context.Context, item *cart.Item) (*cart.Item, error) {
	db := dbFrom(ctx, r.db)
	model := &CartItemModel{
		UserID:    item.UserID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", item.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(model).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "加入购物车失败")
	}

	// 冲突更新时自增ID不会回填，重新读取
	var saved CartItemModel
	if err := db.Where("user_id = ? AND variant_id = ?", item.UserID, item.VariantID).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&saved), nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Item, error) {
	var model CartItemModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartItemModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartEntity(&models[i])
	}
	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	result := dbFrom(ctx, r.db).Model(&CartItemModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func (r *cartRepository) DeleteByVariantIDs(ctx context.Context, userID uint, variantIDs []uint) (int64, error) {
	if len(variantIDs) == 0 {
		return 0, nil
	}
	result := dbFrom(ctx, r.db).
		Where("user_id = ? AND variant_id IN ?", userID, variantIDs).
		Delete(&CartItemModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清理购物车失败")
	}
	return result.RowsAffected, nil
}

func toCartEntity(m *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
