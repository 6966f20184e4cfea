package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcart "github.com/xiebiao/shopcore/internal/application/cart"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/wishlist"
)

// ItemView 心愿单条目，带出商品与规格的当前价格
type ItemView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	Variants  []VariantView   `json:"variants"`
	AddedAt   string          `json:"added_at"`
}

// VariantView 规格视图
type VariantView struct {
	ID        uint            `json:"id"`
	SKU       string          `json:"sku"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// AddToWishlistUseCase 加入心愿单，商品必须存在
type AddToWishlistUseCase struct {
	wishlistService wishlist.Service
	catalog         catalog.Service
}

func NewAddToWishlistUseCase(wishlistService wishlist.Service, catalogService catalog.Service) *AddToWishlistUseCase {
	return &AddToWishlistUseCase{wishlistService: wishlistService, catalog: catalogService}
}

func (uc *AddToWishlistUseCase) Execute(ctx context.Context, userID, productID uint) (*wishlist.Item, error) {
	if _, err := uc.catalog.Get(ctx, productID); err != nil {
		return nil, err
	}
	return uc.wishlistService.Add(ctx, userID, productID)
}

// GetWishlistUseCase 查看心愿单
type GetWishlistUseCase struct {
	wishlistService wishlist.Service
	catalog         catalog.Service
}

func NewGetWishlistUseCase(wishlistService wishlist.Service, catalogService catalog.Service) *GetWishlistUseCase {
	return &GetWishlistUseCase{wishlistService: wishlistService, catalog: catalogService}
}

// Execute 已删除的商品直接跳过
func (uc *GetWishlistUseCase) Execute(ctx context.Context, userID uint) ([]ItemView, error) {
	items, err := uc.wishlistService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		p, err := uc.catalog.Get(ctx, item.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, toItemView(item, p))
	}
	return views, nil
}

func toItemView(item *wishlist.Item, p *catalog.Product) ItemView {
	v := ItemView{
		ProductID: p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Variants:  make([]VariantView, len(p.Variants)),
		AddedAt:   item.CreatedAt.Format(time.RFC3339),
	}
	for i := range p.Variants {
		pv := &p.Variants[i]
		v.Variants[i] = VariantView{
			ID:        pv.ID,
			SKU:       pv.SKU,
			Size:      pv.Size,
			Color:     pv.Color,
			UnitPrice: pv.UnitPrice(),
		}
	}
	return v
}

// RemoveFromWishlistUseCase 移出心愿单
type RemoveFromWishlistUseCase struct {
	wishlistService wishlist.Service
}

func NewRemoveFromWishlistUseCase(wishlistService wishlist.Service) *RemoveFromWishlistUseCase {
	return &RemoveFromWishlistUseCase{wishlistService: wishlistService}
}

func (uc *RemoveFromWishlistUseCase) Execute(ctx context.Context, userID, productID uint) error {
	return uc.wishlistService.Remove(ctx, userID, productID)
}

// MoveToCartUseCase 选定规格加入购物车后移出心愿单
// 加购沿用购物车的库存与数量校验；移出失败只记日志，购物车结果已生效
type MoveToCartUseCase struct {
	wishlistService wishlist.Service
	catalog         catalog.Service
	addToCart       *appcart.AddToCartUseCase
	logger          *zap.Logger
}

func NewMoveToCartUseCase(wishlistService wishlist.Service, catalogService catalog.Service, addToCart *appcart.AddToCartUseCase, logger *zap.Logger) *MoveToCartUseCase {
	return &MoveToCartUseCase{
		wishlistService: wishlistService,
		catalog:         catalogService,
		addToCart:       addToCart,
		logger:          logger,
	}
}

// MoveToCartRequest 移入购物车请求
type MoveToCartRequest struct {
	UserID    uint
	ProductID uint
	VariantID uint
	Quantity  int
}

func (uc *MoveToCartUseCase) Execute(ctx context.Context, req MoveToCartRequest) error {
	if err := uc.ensureListed(ctx, req.UserID, req.ProductID); err != nil {
		return err
	}

	variants, err := uc.catalog.ResolveVariants(ctx, []uint{req.VariantID})
	if err != nil {
		return err
	}
	if variants[req.VariantID].ProductID != req.ProductID {
		return catalog.VariantNotFound(req.VariantID)
	}

	if _, err := uc.addToCart.Execute(ctx, req.UserID, req.VariantID, req.Quantity); err != nil {
		return err
	}

	if err := uc.wishlistService.Remove(context.WithoutCancel(ctx), req.UserID, req.ProductID); err != nil {
		uc.logger.Warn("移出心愿单失败",
			zap.Uint("user_id", req.UserID),
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
	}
	return nil
}

func (uc *MoveToCartUseCase) ensureListed(ctx context.Context, userID, productID uint) error {
	items, err := uc.wishlistService.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ProductID == productID {
			return nil
		}
	}
	return wishlist.ErrItemNotFound
}
