package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shopcore/internal/domain/inventory"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	model := &InventoryModel{
		VariantID:   inv.VariantID,
		Stock:       inv.Stock,
		RestockDate: inv.RestockDate,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "Inventory already exists for this variant")
		}
		return apperrors.Wrap(err, "创建库存失败")
	}
	inv.ID = model.ID
	inv.CreatedAt = model.CreatedAt
	inv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *inventoryRepository) FindByVariantID(ctx context.Context, variantID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := dbFrom(ctx, r.db).Where("variant_id = ?", variantID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}
	return toInventoryEntity(&model), nil
}

func (r *inventoryRepository) LockByVariantID(ctx context.Context, variantID uint) (*inventory.Inventory, error) {
	var model InventoryModel
	err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("variant_id = ?", variantID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}
	return toInventoryEntity(&model), nil
}

// LockByVariantIDs 一条语句锁定多行，按variant_id升序扫描唯一索引加锁
func (r *inventoryRepository) LockByVariantIDs(ctx context.Context, variantIDs []uint) (map[uint]*inventory.Inventory, error) {
	result := make(map[uint]*inventory.Inventory, len(variantIDs))
	if len(variantIDs) == 0 {
		return result, nil
	}

	var models []InventoryModel
	err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("variant_id IN ?", variantIDs).
		Order("variant_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}
	for i := range models {
		result[models[i].VariantID] = toInventoryEntity(&models[i])
	}
	return result, nil
}

// Deduct 条件更新保证库存不为负，即使调用方漏了加锁也不会超卖
func (r *inventoryRepository) Deduct(ctx context.Context, inv *inventory.Inventory, quantity int) error {
	if quantity <= 0 {
		return inventory.ErrInvalidQuantity
	}

	result := dbFrom(ctx, r.db).Model(&InventoryModel{}).
		Where("variant_id = ?", inv.VariantID).
		Where("stock - ? >= 0", quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected == 0 {
		return inventory.Insufficient(inv.VariantID, inv.Stock, quantity)
	}

	inv.Stock -= quantity
	return nil
}

func (r *inventoryRepository) SetStock(ctx context.Context, inv *inventory.Inventory, stock int, restockDate *time.Time) error {
	if stock < 0 {
		return inventory.ErrInvalidStock
	}

	now := time.Now()
	result := dbFrom(ctx, r.db).Model(&InventoryModel{}).
		Where("variant_id = ?", inv.VariantID).
		Updates(map[string]interface{}{
			"stock":        stock,
			"restock_date": restockDate,
			"updated_at":   now,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}

	inv.Stock = stock
	inv.RestockDate = restockDate
	inv.UpdatedAt = now
	return nil
}

func (r *inventoryRepository) CreateLog(ctx context.Context, log *inventory.Log) error {
	model := &InventoryLogModel{
		VariantID:   log.VariantID,
		ChangeType:  string(log.ChangeType),
		Quantity:    log.Quantity,
		BeforeStock: log.BeforeStock,
		AfterStock:  log.AfterStock,
		OrderID:     log.OrderID,
		Remark:      log.Remark,
		CreatedAt:   log.CreatedAt,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入库存日志失败")
	}
	log.ID = model.ID
	return nil
}

func (r *inventoryRepository) ListLogs(ctx context.Context, variantID uint, page, pageSize int) ([]*inventory.Log, int64, error) {
	var models []InventoryLogModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&InventoryLogModel{}).Where("variant_id = ?", variantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存日志总数失败")
	}

	limit, offset := paginate(page, pageSize)
	if err := query.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询库存日志失败")
	}

	logs := make([]*inventory.Log, len(models))
	for i, m := range models {
		logs[i] = &inventory.Log{
			ID:          m.ID,
			VariantID:   m.VariantID,
			ChangeType:  inventory.ChangeType(m.ChangeType),
			Quantity:    m.Quantity,
			BeforeStock: m.BeforeStock,
			AfterStock:  m.AfterStock,
			OrderID:     m.OrderID,
			Remark:      m.Remark,
			CreatedAt:   m.CreatedAt,
		}
	}
	return logs, total, nil
}

func toInventoryEntity(m *InventoryModel) *inventory.Inventory {
	return &inventory.Inventory{
		ID:          m.ID,
		VariantID:   m.VariantID,
		Stock:       m.Stock,
		RestockDate: m.RestockDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
