package address

import (
	"context"
	"strings"
	"time"
)

// Service 地址簿领域服务
type Service interface {
	Create(ctx context.Context, userID uint, t Type, f Fields) (*Address, error)

	// Update 整体替换可编辑字段，t为空时保持原类型
	Update(ctx context.Context, userID, id uint, t Type, f Fields) (*Address, error)

	Delete(ctx context.Context, userID, id uint) error
	List(ctx context.Context, userID uint) ([]*Address, error)
}

type service struct {
	repo Repository
}

// NewService 创建地址服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID uint, t Type, f Fields) (*Address, error) {
	if !t.IsValid() {
		return nil, ErrInvalidType
	}
	a := NewAddress(userID, t, f)
	if err := validate(a); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, t Type, f Fields) (*Address, error) {
	if t != "" && !t.IsValid() {
		return nil, ErrInvalidType
	}
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t != "" {
		a.Type = t
	}
	a.apply(f)
	if err := validate(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) owned(ctx context.Context, userID, id uint) (*Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(userID) {
		return nil, ErrAddressNotFound
	}
	return a, nil
}

func validate(a *Address) error {
	if missing := a.missing(); len(missing) > 0 {
		return ErrMissingFields.WithMessage("Missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
