package wishlist

import (
	"context"
)

// Service 心愿单领域服务
type Service interface {
	Add(ctx context.Context, userID, productID uint) (*Item, error)
	List(ctx context.Context, userID uint) ([]*Item, error)
	Remove(ctx context.Context, userID, productID uint) error
}

type service struct {
	repo Repository
}

// NewService 创建心愿单服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Add 重复加入由唯一索引拦截
func (s *service) Add(ctx context.Context, userID, productID uint) (*Item, error) {
	item := NewItem(userID, productID)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Item, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, productID uint) error {
	return s.repo.Delete(ctx, userID, productID)
}
