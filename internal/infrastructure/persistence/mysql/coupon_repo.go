package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shopcore/internal/domain/coupon"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) coupon.Repository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	model := toCouponModel(c)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return coupon.ErrCodeDuplicate
		}
		return apperrors.Wrap(err, "创建优惠券失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uint) (*coupon.Coupon, error) {
	return r.first(dbFrom(ctx, r.db).Where("id = ?", id))
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.first(dbFrom(ctx, r.db).Where("code = ?", code))
}

func (r *couponRepository) LockByID(ctx context.Context, id uint) (*coupon.Coupon, error) {
	return r.first(dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *couponRepository) first(query *gorm.DB) (*coupon.Coupon, error) {
	var model CouponModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, apperrors.Wrap(err, "查询优惠券失败")
	}
	return toCouponEntity(&model), nil
}

// Update 只更新可编辑字段，usage_count由IncrementUsage维护
func (r *couponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	m := toCouponModel(c)
	result := dbFrom(ctx, r.db).Model(&CouponModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"code":          m.Code,
		"description":   m.Description,
		"discount_type": m.DiscountType,
		"value":         m.Value,
		"min_purchase":  m.MinPurchase,
		"max_discount":  m.MaxDiscount,
		"start_date":    m.StartDate,
		"end_date":      m.EndDate,
		"usage_limit":   m.UsageLimit,
		"status":        m.Status,
		"is_active":     m.IsActive,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return coupon.ErrCodeDuplicate
		}
		return apperrors.Wrap(result.Error, "更新优惠券失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

// Delete 引用检查与删除在同一条语句中完成，下单事务持有券的行锁时会等待其提交
// DELETE FROM coupons WHERE id = ? AND NOT EXISTS (...redemptions) AND NOT EXISTS (...orders)
func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db)
	redeemed := db.Model(&RedemptionModel{}).Select("1").Where("coupon_id = ?", id)
	ordered := db.Model(&OrderModel{}).Select("1").Where("coupon_id = ?", id)

	result := db.Where("id = ?", id).
		Where("NOT EXISTS (?)", redeemed).
		Where("NOT EXISTS (?)", ordered).
		Delete(&CouponModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除优惠券失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&CouponModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return apperrors.Wrap(err, "删除优惠券失败")
	}
	if n == 0 {
		return coupon.ErrCouponNotFound
	}
	return coupon.ErrCouponInUse
}

func (r *couponRepository) List(ctx context.Context, params coupon.ListParams) ([]*coupon.Coupon, int64, error) {
	var models []CouponModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&CouponModel{})
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.DiscountType != "" {
		query = query.Where("discount_type = ?", string(params.DiscountType))
	}
	if params.Search != "" {
		query = query.Where("code LIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询优惠券总数失败")
	}

	limit, offset := paginate(params.Page, params.PageSize)
	if err := query.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询优惠券列表失败")
	}

	coupons := make([]*coupon.Coupon, len(models))
	for i := range models {
		coupons[i] = toCouponEntity(&models[i])
	}
	return coupons, total, nil
}

// IncrementUsage 带上限条件的原子自增，影响行数为0说明次数已用尽
func (r *couponRepository) IncrementUsage(ctx context.Context, id uint) error {
	result := dbFrom(ctx, r.db).Model(&CouponModel{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR usage_count < usage_limit").
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新优惠券使用次数失败")
	}
	if result.RowsAffected == 0 {
		return coupon.ErrUsageLimitReached
	}
	return nil
}

func (r *couponRepository) CreateRedemption(ctx context.Context, red *coupon.Redemption) error {
	model := &RedemptionModel{
		CouponID:       red.CouponID,
		UserID:         red.UserID,
		OrderID:        red.OrderID,
		DiscountAmount: red.DiscountAmount,
		RedeemedAt:     red.RedeemedAt,
	}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "Coupon already redeemed for this order")
		}
		return apperrors.Wrap(err, "写入核销记录失败")
	}
	red.ID = model.ID
	return nil
}

func (r *couponRepository) FindRedemptionByOrderID(ctx context.Context, orderID uint) (*coupon.Redemption, error) {
	var model RedemptionModel
	err := dbFrom(ctx, r.db).Where("order_id = ?", orderID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询核销记录失败")
	}
	return &coupon.Redemption{
		ID:             model.ID,
		CouponID:       model.CouponID,
		UserID:         model.UserID,
		OrderID:        model.OrderID,
		DiscountAmount: model.DiscountAmount,
		RedeemedAt:     model.RedeemedAt,
	}, nil
}

func toCouponModel(c *coupon.Coupon) *CouponModel {
	m := &CouponModel{
		ID:           c.ID,
		Code:         c.Code,
		Description:  c.Description,
		DiscountType: string(c.DiscountType),
		Value:        c.Value,
		MinPurchase:  c.MinPurchase,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		UsageLimit:   c.UsageLimit,
		UsageCount:   c.UsageCount,
		Status:       string(c.Status),
		IsActive:     c.IsActive,
		SellerID:     c.SellerID,
	}
	if c.MaxDiscount != nil {
		m.MaxDiscount = decimal.NewNullDecimal(*c.MaxDiscount)
	}
	return m
}

func toCouponEntity(m *CouponModel) *coupon.Coupon {
	c := &coupon.Coupon{
		ID:           m.ID,
		Code:         m.Code,
		Description:  m.Description,
		DiscountType: coupon.DiscountType(m.DiscountType),
		Value:        m.Value,
		MinPurchase:  m.MinPurchase,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		UsageLimit:   m.UsageLimit,
		UsageCount:   m.UsageCount,
		Status:       coupon.Status(m.Status),
		IsActive:     m.IsActive,
		SellerID:     m.SellerID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.MaxDiscount.Valid {
		d := m.MaxDiscount.Decimal
		c.MaxDiscount = &d
	}
	return c
}
