package catalog

import (
	"context"
)

// Repository 商品仓储接口
type Repository interface {
	// Create 写入商品及全部规格，回填ID；SKU重复返回ErrSKUDuplicate
	Create(ctx context.Context, p *Product) error

	// FindByID 查询商品（含规格）
	FindByID(ctx context.Context, id uint) (*Product, error)

	// List 分页查询（不含规格）
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// FindVariantsByIDs 批量查询规格并带出卖家与基础价
	// 不存在的ID不出现在结果中，由调用方判断
	FindVariantsByIDs(ctx context.Context, ids []uint) (map[uint]*Variant, error)

	// SKUExists 检查SKU是否已被占用
	SKUExists(ctx context.Context, skus []string) (bool, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string // 匹配商品名称
	SellerID *uint
	SortBy   string // price_asc | price_desc | created_at_desc（默认）
}
