package catalog

import (
	"context"
	"errors"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
)

// ListProductsUseCase 商品列表（公开）
type ListProductsUseCase struct {
	catalogService catalog.Service
}

func NewListProductsUseCase(catalogService catalog.Service) *ListProductsUseCase {
	return &ListProductsUseCase{catalogService: catalogService}
}

// ListProductsRequest 列表请求
type ListProductsRequest struct {
	Page     int
	PageSize int
	Keyword  string
	SellerID *uint
	SortBy   string
}

// ListProductsResponse 列表响应
type ListProductsResponse struct {
	Products []*ProductView
	Total    int64
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	products, total, err := uc.catalogService.List(ctx, catalog.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SellerID: req.SellerID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	views := make([]*ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p, nil)
	}
	return &ListProductsResponse{Products: views, Total: total}, nil
}

// GetProductUseCase 商品详情（含规格与当前库存）
type GetProductUseCase struct {
	catalogService catalog.Service
	inventoryRepo  inventory.Repository
}

func NewGetProductUseCase(catalogService catalog.Service, inventoryRepo inventory.Repository) *GetProductUseCase {
	return &GetProductUseCase{catalogService: catalogService, inventoryRepo: inventoryRepo}
}

func (uc *GetProductUseCase) Execute(ctx context.Context, id uint) (*ProductView, error) {
	p, err := uc.catalogService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stocks := make(map[uint]int, len(p.Variants))
	for _, v := range p.Variants {
		inv, err := uc.inventoryRepo.FindByVariantID(ctx, v.ID)
		if err != nil {
			if errors.Is(err, inventory.ErrInventoryNotFound) {
				stocks[v.ID] = 0
				continue
			}
			return nil, err
		}
		stocks[v.ID] = inv.Stock
	}
	return toProductView(p, stocks), nil
}
