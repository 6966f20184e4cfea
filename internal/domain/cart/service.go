package cart

import (
	"context"
)

// Service 购物车领域服务
type Service interface {
	Add(ctx context.Context, userID, variantID uint, quantity int) (*Item, error)
	List(ctx context.Context, userID uint) ([]*Item, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*Item, error)
	Remove(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建购物车服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, variantID uint, quantity int) (*Item, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	return s.repo.Upsert(ctx, NewItem(userID, variantID, quantity))
}

func (s *service) List(ctx context.Context, userID uint) ([]*Item, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateQuantity 他人的条目按不存在处理
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*Item, error) {
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	item, err := s.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *service) Remove(ctx context.Context, userID, itemID uint) error {
	if _, err := s.owned(ctx, userID, itemID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) owned(ctx context.Context, userID, itemID uint) (*Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, ErrItemNotFound
	}
	return item, nil
}
