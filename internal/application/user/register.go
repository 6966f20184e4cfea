package user

import (
	"context"

	"github.com/xiebiao/shopcore/internal/domain/user"
)

// RegisterUseCase 用户注册（买家或卖家）
type RegisterUseCase struct {
	userService user.Service
}

func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     string // customer | seller，空为customer
}

// UserInfo 用户信息
type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name, user.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func toUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
