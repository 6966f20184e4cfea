package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
)

// PublishProductUseCase 商品上架
// 商品、规格、库存行与初始库存日志在同一事务中写入
type PublishProductUseCase struct {
	catalogService catalog.Service
	inventoryRepo  inventory.Repository
	txManager      *mysql.TxManager
	logger         *zap.Logger
}

func NewPublishProductUseCase(catalogService catalog.Service, inventoryRepo inventory.Repository, txManager *mysql.TxManager, logger *zap.Logger) *PublishProductUseCase {
	return &PublishProductUseCase{
		catalogService: catalogService,
		inventoryRepo:  inventoryRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// PublishProductRequest 上架请求
type PublishProductRequest struct {
	SellerID    uint // 从认证中间件获取
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Variants    []PublishVariant
}

// PublishVariant 规格及其初始库存
type PublishVariant struct {
	Size            string
	Color           string
	SKU             string
	AdditionalPrice decimal.Decimal
	Stock           int
}

func (uc *PublishProductUseCase) Execute(ctx context.Context, req PublishProductRequest) (*ProductView, error) {
	variants := make([]catalog.Variant, len(req.Variants))
	for i, v := range req.Variants {
		if v.Stock < 0 {
			return nil, inventory.ErrInvalidStock
		}
		variants[i] = catalog.Variant{
			Size:            v.Size,
			Color:           v.Color,
			SKU:             v.SKU,
			AdditionalPrice: v.AdditionalPrice,
		}
	}

	var product *catalog.Product
	stocks := make(map[uint]int, len(variants))
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		p, err := uc.catalogService.Publish(txCtx, req.SellerID, req.Name, req.Description, req.BasePrice, variants)
		if err != nil {
			return err
		}
		for i, v := range p.Variants {
			stock := req.Variants[i].Stock
			if err := uc.inventoryRepo.Create(txCtx, inventory.NewInventory(v.ID, stock)); err != nil {
				return err
			}
			if err := uc.inventoryRepo.CreateLog(txCtx, inventory.NewAdjustLog(v.ID, 0, stock, "initial stock")); err != nil {
				return err
			}
			stocks[v.ID] = stock
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("商品已上架",
		zap.Uint("product_id", product.ID),
		zap.Uint("seller_id", product.SellerID),
		zap.Int("variants", len(product.Variants)))
	return toProductView(product, stocks), nil
}

// ProductView 商品视图
type ProductView struct {
	ID          uint            `json:"id"`
	SellerID    uint            `json:"seller_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Variants    []VariantView   `json:"variants,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// VariantView 规格视图，Stock为nil表示未查询库存
type VariantView struct {
	ID              uint            `json:"id"`
	Size            string          `json:"size,omitempty"`
	Color           string          `json:"color,omitempty"`
	SKU             string          `json:"sku"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Stock           *int            `json:"stock,omitempty"`
}

func toProductView(p *catalog.Product, stocks map[uint]int) *ProductView {
	view := &ProductView{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	for _, v := range p.Variants {
		vv := VariantView{
			ID:              v.ID,
			Size:            v.Size,
			Color:           v.Color,
			SKU:             v.SKU,
			AdditionalPrice: v.AdditionalPrice,
			UnitPrice:       v.UnitPrice(),
		}
		if s, ok := stocks[v.ID]; ok {
			stock := s
			vv.Stock = &stock
		}
		view.Variants = append(view.Variants, vv)
	}
	return view
}
