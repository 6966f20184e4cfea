package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

// TxManager 事务管理器
// 事务DB通过context传递，fn内所有仓储操作都在同一事务中执行
type TxManager struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTxManager 创建事务管理器，timeout<=0表示不额外限制
func NewTxManager(db *gorm.DB, timeout time.Duration) *TxManager {
	return &TxManager{db: db, timeout: timeout}
}

// Transaction 执行事务
// fn返回error时ROLLBACK，返回nil时COMMIT
// 已在事务中时直接复用外层事务
// 超过timeout时回滚并返回ErrTimeout，行锁随之释放
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    inv, err := inventoryRepo.LockByVariantID(ctx, variantID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := orderRepo.Create(ctx, o); err != nil {
//	        return err
//	    }
//	    return inventoryRepo.Deduct(ctx, inv, quantity)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !apperrors.IsAppError(err) {
		return apperrors.ErrTimeout
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	return err
}
