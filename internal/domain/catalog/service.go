package catalog

import (
	"context"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Service 商品领域服务
type Service interface {
	// Publish 发布商品
	// 规则：
	// - 名称1-200字符
	// - 基础价 > 0，规格加价 >= 0
	// - 至少一个规格，SKU非空且在请求内与库中都唯一
	Publish(ctx context.Context, sellerID uint, name, description string, basePrice decimal.Decimal, variants []Variant) (*Product, error)

	// Get 商品详情
	Get(ctx context.Context, id uint) (*Product, error)

	// List 商品列表，公开接口
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// ResolveVariants 批量解析规格，任一不存在返回VariantNotFound
	ResolveVariants(ctx context.Context, ids []uint) (map[uint]*Variant, error)
}

type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Publish(ctx context.Context, sellerID uint, name, description string, basePrice decimal.Decimal, variants []Variant) (*Product, error) {
	p := NewProduct(sellerID, name, description, basePrice, variants)

	if n := utf8.RuneCountInString(p.Name); n == 0 || n > 200 {
		return nil, ErrInvalidName
	}
	if !basePrice.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if len(p.Variants) == 0 {
		return nil, ErrNoVariants
	}

	skus := make([]string, 0, len(p.Variants))
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if v.SKU == "" {
			return nil, ErrInvalidSKU
		}
		if v.AdditionalPrice.IsNegative() {
			return nil, ErrInvalidAdditionalPrice
		}
		if _, dup := seen[v.SKU]; dup {
			return nil, ErrSKUDuplicate
		}
		seen[v.SKU] = struct{}{}
		skus = append(skus, v.SKU)
	}

	exists, err := s.repo.SKUExists(ctx, skus)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUDuplicate
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) ResolveVariants(ctx context.Context, ids []uint) (map[uint]*Variant, error) {
	variants, err := s.repo.FindVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := variants[id]; !ok {
			return nil, VariantNotFound(id)
		}
	}
	return variants, nil
}
