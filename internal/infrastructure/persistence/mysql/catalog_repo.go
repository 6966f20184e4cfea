package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/shopcore/internal/domain/catalog"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品仓储
func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// Create 商品与规格一起写入（GORM自动保存has-many关联）
func (r *catalogRepository) Create(ctx context.Context, p *catalog.Product) error {
	model := &ProductModel{
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Variants:    make([]VariantModel, len(p.Variants)),
	}
	for i, v := range p.Variants {
		model.Variants[i] = VariantModel{
			Size:            v.Size,
			Color:           v.Color,
			SKU:             v.SKU,
			AdditionalPrice: v.AdditionalPrice,
		}
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	for i := range p.Variants {
		p.Variants[i].ID = model.Variants[i].ID
		p.Variants[i].ProductID = model.ID
	}
	return nil
}

func (r *catalogRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model ProductModel
	err := dbFrom(ctx, r.db).Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

func (r *catalogRepository) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&ProductModel{})
	if params.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+params.Keyword+"%")
	}
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("base_price ASC")
	case "price_desc":
		query = query.Order("base_price DESC")
	default:
		query = query.Order("created_at DESC").Order("id DESC")
	}

	limit, offset := paginate(params.Page, params.PageSize)
	if err := query.Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, total, nil
}

// variantRow 规格联表查询结果
type variantRow struct {
	VariantModel
	SellerID  uint
	BasePrice decimal.Decimal
}

// FindVariantsByIDs 规格联表商品，带出seller_id与base_price
// 已软删除的商品下的规格视为不存在
func (r *catalogRepository) FindVariantsByIDs(ctx context.Context, ids []uint) (map[uint]*catalog.Variant, error) {
	result := make(map[uint]*catalog.Variant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []variantRow
	err := dbFrom(ctx, r.db).Table("product_variants AS v").
		Select("v.*, p.seller_id AS seller_id, p.base_price AS base_price").
		Joins("JOIN products AS p ON p.id = v.product_id AND p.deleted_at IS NULL").
		Where("v.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品规格失败")
	}

	for i := range rows {
		v := toVariantEntity(&rows[i].VariantModel)
		v.SellerID = rows[i].SellerID
		v.BasePrice = rows[i].BasePrice
		result[v.ID] = v
	}
	return result, nil
}

func (r *catalogRepository) SKUExists(ctx context.Context, skus []string) (bool, error) {
	if len(skus) == 0 {
		return false, nil
	}
	var count int64
	if err := dbFrom(ctx, r.db).Model(&VariantModel{}).Where("sku IN ?", skus).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询SKU失败")
	}
	return count > 0, nil
}

func toProductEntity(m *ProductModel) *catalog.Product {
	p := &catalog.Product{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Name:        m.Name,
		Description: m.Description,
		BasePrice:   m.BasePrice,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if len(m.Variants) > 0 {
		p.Variants = make([]catalog.Variant, len(m.Variants))
		for i := range m.Variants {
			v := toVariantEntity(&m.Variants[i])
			v.SellerID = m.SellerID
			v.BasePrice = m.BasePrice
			p.Variants[i] = *v
		}
	}
	return p
}

func toVariantEntity(m *VariantModel) *catalog.Variant {
	return &catalog.Variant{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Size:            m.Size,
		Color:           m.Color,
		SKU:             m.SKU,
		AdditionalPrice: m.AdditionalPrice,
	}
}
