package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// IsValid 角色是否合法
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User 用户实体（聚合根）
// 卖家也是用户，商品与优惠券上的seller_id即卖家的用户ID
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码，role为空时默认customer
func NewUser(email, hashedPassword, name string, role Role) *User {
	if role == "" {
		role = RoleCustomer
	}
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSeller 卖家或管理员可发布商品与优惠券
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}

// Rename 修改名称
func (u *User) Rename(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}
