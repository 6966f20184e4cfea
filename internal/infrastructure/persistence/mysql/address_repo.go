package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/shopcore/internal/domain/address"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) address.Repository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, a *address.Address) error {
	m := toAddressModel(a)
	if err := dbFrom(ctx, r.db).Create(m).Error; err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, id uint) (*address.Address, error) {
	var m AddressModel
	if err := dbFrom(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, address.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	return toAddressEntity(&m), nil
}

// LockOwned SELECT ... FOR SHARE，与Delete的排他锁互斥，下单提交前地址不会被删除
func (r *addressRepository) LockOwned(ctx context.Context, userID uint, ids []uint) (map[uint]*address.Address, error) {
	out := make(map[uint]*address.Address, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []AddressModel
	if err := dbFrom(ctx, r.db).Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	for i := range models {
		out[models[i].ID] = toAddressEntity(&models[i])
	}
	return out, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uint) ([]*address.Address, error) {
	var models []AddressModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).
		Order("updated_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	list := make([]*address.Address, len(models))
	for i := range models {
		list[i] = toAddressEntity(&models[i])
	}
	return list, nil
}

func (r *addressRepository) Update(ctx context.Context, a *address.Address) error {
	result := dbFrom(ctx, r.db).Model(&AddressModel{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"type":         string(a.Type),
		"full_name":    a.FullName,
		"line1":        a.Line1,
		"line2":        a.Line2,
		"city":         a.City,
		"state":        a.State,
		"country":      a.Country,
		"postal_code":  a.PostalCode,
		"phone_number": a.Phone,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新地址失败")
	}
	if result.RowsAffected == 0 {
		return address.ErrAddressNotFound
	}
	return nil
}

// Delete 与优惠券相同，引用检查和删除在一条语句里完成
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db)
	referenced := db.Model(&OrderModel{}).Select("1").
		Where("billing_address_id = ? OR shipping_address_id = ?", id, id)

	result := db.Where("id = ?", id).Where("NOT EXISTS (?)", referenced).Delete(&AddressModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除地址失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&AddressModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return apperrors.Wrap(err, "删除地址失败")
	}
	if n == 0 {
		return address.ErrAddressNotFound
	}
	return address.ErrAddressInUse
}

func toAddressModel(a *address.Address) *AddressModel {
	return &AddressModel{
		ID:         a.ID,
		UserID:     a.UserID,
		Type:       string(a.Type),
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toAddressEntity(m *AddressModel) *address.Address {
	return &address.Address{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       address.Type(m.Type),
		FullName:   m.FullName,
		Line1:      m.Line1,
		Line2:      m.Line2,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		PostalCode: m.PostalCode,
		Phone:      m.Phone,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
