package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
)

// Actor 操作人（从JWT中提取）
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// StockView 库存视图
type StockView struct {
	VariantID   uint       `json:"product_variant_id"`
	Stock       int        `json:"stock"`
	RestockDate *time.Time `json:"restock_date,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toStockView(inv *inventory.Inventory) *StockView {
	return &StockView{
		VariantID:   inv.VariantID,
		Stock:       inv.Stock,
		RestockDate: inv.RestockDate,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// GetStockUseCase 查询库存
type GetStockUseCase struct {
	inventoryRepo inventory.Repository
}

func NewGetStockUseCase(inventoryRepo inventory.Repository) *GetStockUseCase {
	return &GetStockUseCase{inventoryRepo: inventoryRepo}
}

func (uc *GetStockUseCase) Execute(ctx context.Context, variantID uint) (*StockView, error) {
	inv, err := uc.inventoryRepo.FindByVariantID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	return toStockView(inv), nil
}

// ChangeStockUseCase 补货与校正
// 只有规格所属卖家或管理员可以操作；锁行后修改并写日志，与下单扣减互斥
type ChangeStockUseCase struct {
	inventoryRepo inventory.Repository
	catalog       catalog.Service
	txManager     *mysql.TxManager
	logger        *zap.Logger
}

func NewChangeStockUseCase(inventoryRepo inventory.Repository, catalogService catalog.Service, txManager *mysql.TxManager, logger *zap.Logger) *ChangeStockUseCase {
	return &ChangeStockUseCase{
		inventoryRepo: inventoryRepo,
		catalog:       catalogService,
		txManager:     txManager,
		logger:        logger,
	}
}

// RestockRequest 补货：库存 += Quantity
type RestockRequest struct {
	VariantID   uint
	Quantity    int
	RestockDate *time.Time
	Remark      string
}

// AdjustRequest 校正：库存直接设为Stock
type AdjustRequest struct {
	VariantID   uint
	Stock       int
	RestockDate *time.Time
	Remark      string
}

func (uc *ChangeStockUseCase) Restock(ctx context.Context, actor Actor, req RestockRequest) (*StockView, error) {
	if req.Quantity <= 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	return uc.change(ctx, actor, req.VariantID, func(inv *inventory.Inventory) (int, *time.Time, *inventory.Log) {
		restockDate := req.RestockDate
		if restockDate == nil {
			restockDate = inv.RestockDate
		}
		return inv.Stock + req.Quantity, restockDate,
			inventory.NewRestockLog(req.VariantID, req.Quantity, inv.Stock, req.Remark)
	})
}

func (uc *ChangeStockUseCase) Adjust(ctx context.Context, actor Actor, req AdjustRequest) (*StockView, error) {
	if req.Stock < 0 {
		return nil, inventory.ErrInvalidStock
	}
	return uc.change(ctx, actor, req.VariantID, func(inv *inventory.Inventory) (int, *time.Time, *inventory.Log) {
		return req.Stock, req.RestockDate,
			inventory.NewAdjustLog(req.VariantID, inv.Stock, req.Stock, req.Remark)
	})
}

func (uc *ChangeStockUseCase) change(ctx context.Context, actor Actor, variantID uint,
	apply func(inv *inventory.Inventory) (int, *time.Time, *inventory.Log)) (*StockView, error) {
	if err := uc.authorize(ctx, actor, variantID); err != nil {
		return nil, err
	}

	var result *inventory.Inventory
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.inventoryRepo.LockByVariantID(txCtx, variantID)
		if err != nil {
			return err
		}
		stock, restockDate, log := apply(inv)
		if err := uc.inventoryRepo.SetStock(txCtx, inv, stock, restockDate); err != nil {
			return err
		}
		if err := uc.inventoryRepo.CreateLog(txCtx, log); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("库存已变更",
		zap.Uint("variant_id", variantID),
		zap.Int("stock", result.Stock),
		zap.Uint("operator", actor.UserID))
	return toStockView(result), nil
}

func (uc *ChangeStockUseCase) authorize(ctx context.Context, actor Actor, variantID uint) error {
	variants, err := uc.catalog.ResolveVariants(ctx, []uint{variantID})
	if err != nil {
		return err
	}
	if !actor.IsAdmin && variants[variantID].SellerID != actor.UserID {
		return inventory.ErrForbidden
	}
	return nil
}

// LogView 库存日志视图
type LogView struct {
	ID          uint      `json:"id"`
	ChangeType  string    `json:"change_type"`
	Quantity    int       `json:"quantity"`
	BeforeStock int       `json:"before_stock"`
	AfterStock  int       `json:"after_stock"`
	OrderID     *uint     `json:"order_id,omitempty"`
	Remark      string    `json:"remark,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListLogsUseCase 库存变更日志
type ListLogsUseCase struct {
	inventoryRepo inventory.Repository
}

func NewListLogsUseCase(inventoryRepo inventory.Repository) *ListLogsUseCase {
	return &ListLogsUseCase{inventoryRepo: inventoryRepo}
}

func (uc *ListLogsUseCase) Execute(ctx context.Context, variantID uint, page, pageSize int) ([]LogView, int64, error) {
	logs, total, err := uc.inventoryRepo.ListLogs(ctx, variantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	views := make([]LogView, len(logs))
	for i, l := range logs {
		views[i] = LogView{
			ID:          l.ID,
			ChangeType:  string(l.ChangeType),
			Quantity:    l.Quantity,
			BeforeStock: l.BeforeStock,
			AfterStock:  l.AfterStock,
			OrderID:     l.OrderID,
			Remark:      l.Remark,
			CreatedAt:   l.CreatedAt,
		}
	}
	return views, total, nil
}
