package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindVariantsByIDs(ctx context.Context, ids []uint) (map[uint]*Variant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uint]*Variant), args.Error(1)
}

func (m *MockRepository) SKUExists(ctx context.Context, skus []string) (bool, error) {
	args := m.Called(ctx, skus)
	return args.Bool(0), args.Error(1)
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	price := decimal.RequireFromString("199.00")

	t.Run("成功", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SKUExists", ctx, []string{"TS-M-RED", "TS-L-RED"}).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		svc := NewService(repo)

		p, err := svc.Publish(ctx, 9, " T-Shirt ", "cotton", price, []Variant{
			{Size: "M", Color: "red", SKU: " TS-M-RED "},
			{Size: "L", Color: "red", SKU: "TS-L-RED", AdditionalPrice: decimal.NewFromInt(20)},
		})
		require.NoError(t, err)
		assert.Equal(t, "T-Shirt", p.Name)
		assert.Equal(t, uint(9), p.Variants[1].SellerID)
		assert.Equal(t, "219", p.Variants[1].UnitPrice().String())
		repo.AssertExpectations(t)
	})

	cases := []struct {
		name     string
		pname    string
		price    decimal.Decimal
		variants []Variant
		want     error
	}{
		{"名称为空", "  ", price, []Variant{{SKU: "A"}}, ErrInvalidName},
		{"价格为0", "T", decimal.Zero, []Variant{{SKU: "A"}}, ErrInvalidPrice},
		{"无规格", "T", price, nil, ErrNoVariants},
		{"SKU为空", "T", price, []Variant{{SKU: " "}}, ErrInvalidSKU},
		{"加价为负", "T", price, []Variant{{SKU: "A", AdditionalPrice: decimal.NewFromInt(-1)}}, ErrInvalidAdditionalPrice},
		{"请求内SKU重复", "T", price, []Variant{{SKU: "A"}, {SKU: "A"}}, ErrSKUDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewService(repo)

			_, err := svc.Publish(ctx, 9, tc.pname, "", tc.price, tc.variants)
			assert.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("库中SKU已存在", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SKUExists", ctx, []string{"A"}).Return(true, nil)
		svc := NewService(repo)

		_, err := svc.Publish(ctx, 9, "T", "", price, []Variant{{SKU: "A"}})
		assert.ErrorIs(t, err, ErrSKUDuplicate)
	})
}

func TestResolveVariants_Missing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("FindVariantsByIDs", ctx, []uint{1, 2}).Return(map[uint]*Variant{1: {ID: 1}}, nil)
	svc := NewService(repo)

	_, err := svc.ResolveVariants(ctx, []uint{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.Contains(t, err.Error(), "Product variant 2 not found")
}
