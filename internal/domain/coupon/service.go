package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CreateParams 创建优惠券参数
type CreateParams struct {
	Code         string
	Description  string
	DiscountType DiscountType
	Value        decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  *decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	UsageLimit   int
}

// UpdateParams 更新参数，nil字段保持不变
type UpdateParams struct {
	Code        *string
	Description *string
	Value       *decimal.Decimal
	MinPurchase *decimal.Decimal
	MaxDiscount *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	UsageLimit  *int
	IsActive    *bool
}

// Service 优惠券管理的领域服务
type Service interface {
	// Create 卖家创建优惠券
	// 规则：券码唯一、start < end、value > 0、百分比不超过100、usage_limit >= 0
	Create(ctx context.Context, sellerID uint, p CreateParams) (*Coupon, error)

	// Update 只有创建者可以修改
	Update(ctx context.Context, id, sellerID uint, p UpdateParams) (*Coupon, error)

	// Deactivate 软删除，只有创建者可以操作
	Deactivate(ctx context.Context, id, sellerID uint) error

	// HardDelete 物理删除（管理员），已被订单使用过的券只能停用
	HardDelete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建优惠券领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, sellerID uint, p CreateParams) (*Coupon, error) {
	if !p.DiscountType.IsValid() {
		return nil, ErrInvalidDiscountType
	}
	if err := validateTerms(p.DiscountType, p.Value, p.StartDate, p.EndDate, p.UsageLimit); err != nil {
		return nil, err
	}

	code := NormalizeCode(p.Code)
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrCouponNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCodeDuplicate
	}

	c := NewCoupon(sellerID, code, p.Description, p.DiscountType, p.Value, p.MinPurchase,
		p.MaxDiscount, p.StartDate, p.EndDate, p.UsageLimit)

	// 并发创建同一券码时由唯一索引兜底
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id, sellerID uint, p UpdateParams) (*Coupon, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(sellerID) {
		return nil, ErrNotOwner
	}

	if p.Code != nil {
		c.Code = NormalizeCode(*p.Code)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.MinPurchase != nil {
		c.MinPurchase = *p.MinPurchase
	}
	// 传0表示取消封顶
	if p.MaxDiscount != nil {
		c.MaxDiscount = normalizeCap(p.MaxDiscount)
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.UsageLimit != nil {
		c.UsageLimit = *p.UsageLimit
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
		if c.IsActive {
			c.Status = StatusActive
		} else {
			c.Status = StatusInactive
		}
	}

	if err := validateTerms(c.DiscountType, c.Value, c.StartDate, c.EndDate, c.UsageLimit); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Deactivate(ctx context.Context, id, sellerID uint) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !c.IsOwnedBy(sellerID) {
		return ErrNotOwner
	}

	c.Deactivate()
	return s.repo.Update(ctx, c)
}

func (s *service) HardDelete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateTerms(t DiscountType, value decimal.Decimal, start, end time.Time, usageLimit int) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	if !value.IsPositive() {
		return ErrInvalidValue
	}
	if t == DiscountPercentage && value.GreaterThan(hundred) {
		return ErrInvalidPercentage
	}
	if usageLimit < 0 {
		return ErrInvalidUsageLimit
	}
	return nil
}
