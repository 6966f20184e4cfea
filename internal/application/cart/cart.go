package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/shopcore/internal/domain/cart"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
)

// ItemView 购物车条目视图，价格按当前商品价计算
type ItemView struct {
	ID        uint            `json:"id"`
	VariantID uint            `json:"product_variant_id"`
	SellerID  uint            `json:"seller_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Items     []ItemView      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

// AddToCartUseCase 加入购物车
// 规则：规格必须存在，且库存能覆盖累加后的数量
type AddToCartUseCase struct {
	cartService   cart.Service
	cartRepo      cart.Repository
	catalog       catalog.Service
	inventoryRepo inventory.Repository
}

func NewAddToCartUseCase(cartService cart.Service, cartRepo cart.Repository, catalogService catalog.Service, inventoryRepo inventory.Repository) *AddToCartUseCase {
	return &AddToCartUseCase{
		cartService:   cartService,
		cartRepo:      cartRepo,
		catalog:       catalogService,
		inventoryRepo: inventoryRepo,
	}
}

func (uc *AddToCartUseCase) Execute(ctx context.Context, userID, variantID uint, quantity int) (*cart.Item, error) {
	if quantity <= 0 || quantity > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}
	if _, err := uc.catalog.ResolveVariants(ctx, []uint{variantID}); err != nil {
		return nil, err
	}

	inCart := 0
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.VariantID == variantID {
			inCart = item.Quantity
		}
	}
	want := inCart + quantity
	if want > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}

	inv, err := uc.inventoryRepo.FindByVariantID(ctx, variantID)
	if err != nil {
		if errors.Is(err, inventory.ErrInventoryNotFound) {
			return nil, inventory.Insufficient(variantID, 0, want)
		}
		return nil, err
	}
	if inv.Stock < want {
		return nil, inventory.Insufficient(variantID, inv.Stock, want)
	}

	return uc.cartService.Add(ctx, userID, variantID, quantity)
}

// GetCartUseCase 查看购物车（含价格与小计）
type GetCartUseCase struct {
	cartService cart.Service
	catalogRepo catalog.Repository
}

func NewGetCartUseCase(cartService cart.Service, catalogRepo catalog.Repository) *GetCartUseCase {
	return &GetCartUseCase{cartService: cartService, catalogRepo: catalogRepo}
}

// Execute 已下架的规格不计入小计，只返回数量
func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*CartView, error) {
	items, err := uc.cartService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]ItemView, 0, len(items)), Subtotal: decimal.Zero}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.VariantID
	}
	variants, err := uc.catalogRepo.FindVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		iv := ItemView{ID: item.ID, VariantID: item.VariantID, Quantity: item.Quantity}
		if v, ok := variants[item.VariantID]; ok {
			iv.SellerID = v.SellerID
			iv.SKU = v.SKU
			iv.UnitPrice = v.UnitPrice()
			iv.LineTotal = iv.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			view.Subtotal = view.Subtotal.Add(iv.LineTotal)
		}
		view.ItemCount += item.Quantity
		view.Items = append(view.Items, iv)
	}
	return view, nil
}

// ManageCartUseCase 修改数量、删除条目、清空
type ManageCartUseCase struct {
	cartService cart.Service
}

func NewManageCartUseCase(cartService cart.Service) *ManageCartUseCase {
	return &ManageCartUseCase{cartService: cartService}
}

func (uc *ManageCartUseCase) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*cart.Item, error) {
	return uc.cartService.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (uc *ManageCartUseCase) Remove(ctx context.Context, userID, itemID uint) error {
	return uc.cartService.Remove(ctx, userID, itemID)
}

func (uc *ManageCartUseCase) Clear(ctx context.Context, userID uint) error {
	return uc.cartService.Clear(ctx, userID)
}
