package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品（聚合根），Variant是聚合内的子实体
// SellerID即卖家的用户ID
type Product struct {
	ID          uint
	SellerID    uint
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant 商品规格（尺码/颜色），下单与库存都以规格为单位
type Variant struct {
	ID              uint
	ProductID       uint
	Size            string
	Color           string
	SKU             string
	AdditionalPrice decimal.Decimal

	// 以下字段由仓储从所属商品带出，不单独持久化
	SellerID  uint
	BasePrice decimal.Decimal
}

// UnitPrice 售价 = 商品基础价 + 规格加价
func (v *Variant) UnitPrice() decimal.Decimal {
	return v.BasePrice.Add(v.AdditionalPrice)
}

// NewProduct 创建商品（工厂方法）
func NewProduct(sellerID uint, name, description string, basePrice decimal.Decimal, variants []Variant) *Product {
	now := time.Now()
	for i := range variants {
		variants[i].SKU = strings.TrimSpace(variants[i].SKU)
		variants[i].SellerID = sellerID
		variants[i].BasePrice = basePrice
	}
	return &Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(name),
		Description: description,
		BasePrice:   basePrice,
		Variants:    variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy 是否由指定卖家发布
func (p *Product) IsOwnedBy(sellerID uint) bool {
	return p.SellerID == sellerID
}
