package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("成功注册卖家", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		u, err := svc.Register(ctx, " Seller@Example.com ", "secret123", "Shop A", RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, "seller@example.com", u.Email)
		assert.Equal(t, RoleSeller, u.Role)
		assert.NotEqual(t, "secret123", u.Password)
		assert.True(t, u.IsSeller())
		repo.AssertExpectations(t)
	})

	t.Run("默认角色为customer", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		u, err := svc.Register(ctx, "a@b.io", "secret123", "Alice", "")
		require.NoError(t, err)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	cases := []struct {
		name     string
		email    string
		password string
		userName string
		role     Role
		code     int
	}{
		{"邮箱格式错误", "bad-email", "secret123", "Alice", RoleCustomer, apperrors.ErrCodeInvalidParams},
		{"密码太短", "a@b.io", "s1", "Alice", RoleCustomer, apperrors.ErrCodeWeakPassword},
		{"密码无数字", "a@b.io", "secretsecret", "Alice", RoleCustomer, apperrors.ErrCodeWeakPassword},
		{"名称太短", "a@b.io", "secret123", "A", RoleCustomer, apperrors.ErrCodeInvalidParams},
		{"不允许注册admin", "a@b.io", "secret123", "Alice", RoleAdmin, apperrors.ErrCodeInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := NewServiceWithCost(repo, bcrypt.MinCost)

			_, err := svc.Register(ctx, tc.email, tc.password, tc.userName, tc.role)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tc.code))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := NewUser("a@b.io", string(hashed), "Alice", RoleCustomer)

	t.Run("成功", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "a@b.io").Return(stored, nil)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		u, err := svc.Login(ctx, "A@B.io", "secret123")
		require.NoError(t, err)
		assert.Equal(t, stored, u)
	})

	t.Run("密码错误", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "a@b.io").Return(stored, nil)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		_, err := svc.Login(ctx, "a@b.io", "wrong1234")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "x@b.io").Return(nil, apperrors.ErrUserNotFound)
		svc := NewServiceWithCost(repo, bcrypt.MinCost)

		_, err := svc.Login(ctx, "x@b.io", "secret123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}
