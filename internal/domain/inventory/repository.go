package inventory

import (
	"context"
	"time"
)

// Repository 库存仓储接口
// Lock*与Deduct/Add必须在同一事务中调用（事务通过ctx传递）
type Repository interface {
	// Create 创建库存记录（上架商品时）
	Create(ctx context.Context, inv *Inventory) error

	// FindByVariantID 不加锁查询
	FindByVariantID(ctx context.Context, variantID uint) (*Inventory, error)

	// LockByVariantID SELECT ... FOR UPDATE
	LockByVariantID(ctx context.Context, variantID uint) (*Inventory, error)

	// LockByVariantIDs 按传入顺序逐行加锁，缺失的规格不出现在结果中
	// 调用方应传入升序ID，保证所有事务加锁顺序一致
	LockByVariantIDs(ctx context.Context, variantIDs []uint) (map[uint]*Inventory, error)

	// Deduct 原子扣减：UPDATE ... SET stock = stock - q WHERE stock - q >= 0
	// 影响行数为0时返回库存不足，成功后inv.Stock同步为扣减后的值
	Deduct(ctx context.Context, inv *Inventory, quantity int) error

	// SetStock 直接设置库存与补货日期（补货、校正）
	SetStock(ctx context.Context, inv *Inventory, stock int, restockDate *time.Time) error

	// CreateLog 追加库存日志
	CreateLog(ctx context.Context, log *Log) error

	// ListLogs 规格的库存日志，按时间倒序分页
	ListLogs(ctx context.Context, variantID uint, page, pageSize int) ([]*Log, int64, error)
}
