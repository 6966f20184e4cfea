package address

import (
	"strings"
	"time"
)

// Type 地址类型
type Type string

const (
	TypeShipping Type = "shipping"
	TypeBilling  Type = "billing"
)

func (t Type) IsValid() bool {
	return t == TypeShipping || t == TypeBilling
}

// Address 用户地址，订单通过ID引用
type Address struct {
	ID         uint
	UserID     uint
	Type       Type
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	Country    string
	PostalCode string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Fields 地址的可编辑部分
type Fields struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	Country    string
	PostalCode string
	Phone      string
}

// NewAddress 创建地址（工厂方法）
func NewAddress(userID uint, t Type, f Fields) *Address {
	now := time.Now()
	a := &Address{UserID: userID, Type: t, CreatedAt: now, UpdatedAt: now}
	a.apply(f)
	return a
}

// IsOwnedBy 地址是否属于该用户
func (a *Address) IsOwnedBy(userID uint) bool {
	return a.UserID == userID
}

// SameLocation 除ID和类型外的字段全部相同
func (a *Address) SameLocation(other *Address) bool {
	return a.fields() == other.fields()
}

func (a *Address) fields() Fields {
	return Fields{
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

func (a *Address) apply(f Fields) {
	a.FullName = strings.TrimSpace(f.FullName)
	a.Line1 = strings.TrimSpace(f.Line1)
	a.Line2 = strings.TrimSpace(f.Line2)
	a.City = strings.TrimSpace(f.City)
	a.State = strings.TrimSpace(f.State)
	a.Country = strings.TrimSpace(f.Country)
	a.PostalCode = strings.TrimSpace(f.PostalCode)
	a.Phone = strings.TrimSpace(f.Phone)
}

// missing 返回为空的必填字段名
func (a *Address) missing() []string {
	var out []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"full_name", a.FullName},
		{"line1", a.Line1},
		{"city", a.City},
		{"state", a.State},
		{"country", a.Country},
		{"postal_code", a.PostalCode},
		{"phone_number", a.Phone},
	} {
		if f.value == "" {
			out = append(out, f.name)
		}
	}
	return out
}
