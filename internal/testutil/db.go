// Package testutil 测试辅助：内存sqlite数据库与常用种子数据
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
)

// NewDB 为每个测试创建独立的内存数据库并完成迁移
// 单连接：事务外的查询会等待事务结束，所以事务内必须使用ctx中的tx
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// Seller 种子卖家
func Seller(t *testing.T, db *gorm.DB, email string) uint {
	return user(t, db, email, "seller")
}

// Customer 种子买家
func Customer(t *testing.T, db *gorm.DB, email string) uint {
	return user(t, db, email, "customer")
}

func user(t *testing.T, db *gorm.DB, email, role string) uint {
	t.Helper()
	m := &mysql.UserModel{Email: email, Password: "x", Name: "test user", Role: role}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

// Variant 种子商品+单个规格+库存，返回规格ID
func Variant(t *testing.T, db *gorm.DB, sellerID uint, sku string, price string, stock int) uint {
	t.Helper()
	p := &mysql.ProductModel{
		SellerID:  sellerID,
		Name:      "product " + sku,
		BasePrice: decimal.RequireFromString(price),
		Variants:  []mysql.VariantModel{{SKU: sku, Size: "M", Color: "black", AdditionalPrice: decimal.Zero}},
	}
	require.NoError(t, db.Create(p).Error)

	variantID := p.Variants[0].ID
	require.NoError(t, db.Create(&mysql.InventoryModel{VariantID: variantID, Stock: stock}).Error)
	return variantID
}

// CouponOptions 种子优惠券参数，零值使用默认
type CouponOptions struct {
	DiscountType string
	Value        string
	MinPurchase  string
	MaxDiscount  string
	UsageLimit   int
	UsageCount   int
	Inactive     bool
	Start        time.Time
	End          time.Time
}

// Coupon 种子卖家优惠券，默认：百分比20、当前有效、不限次数
func Coupon(t *testing.T, db *gorm.DB, sellerID uint, code string, opts CouponOptions) uint {
	t.Helper()
	if opts.DiscountType == "" {
		opts.DiscountType = "percentage"
	}
	if opts.Value == "" {
		opts.Value = "20"
	}
	if opts.MinPurchase == "" {
		opts.MinPurchase = "0"
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now().Add(-24 * time.Hour)
	}
	if opts.End.IsZero() {
		opts.End = time.Now().Add(24 * time.Hour)
	}

	m := &mysql.CouponModel{
		Code:         code,
		DiscountType: opts.DiscountType,
		Value:        decimal.RequireFromString(opts.Value),
		MinPurchase:  decimal.RequireFromString(opts.MinPurchase),
		StartDate:    opts.Start,
		EndDate:      opts.End,
		UsageLimit:   opts.UsageLimit,
		UsageCount:   opts.UsageCount,
		Status:       "active",
		IsActive:     !opts.Inactive,
		SellerID:     &sellerID,
	}
	if opts.MaxDiscount != "" {
		m.MaxDiscount = decimal.NewNullDecimal(decimal.RequireFromString(opts.MaxDiscount))
	}
	if opts.Inactive {
		m.Status = "inactive"
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

// Stock 读取规格当前库存
func Stock(t *testing.T, db *gorm.DB, variantID uint) int {
	t.Helper()
	var m mysql.InventoryModel
	require.NoError(t, db.Where("variant_id = ?", variantID).First(&m).Error)
	return m.Stock
}

// UsageCount 读取优惠券已用次数
func UsageCount(t *testing.T, db *gorm.DB, couponID uint) int {
	t.Helper()
	var m mysql.CouponModel
	require.NoError(t, db.First(&m, couponID).Error)
	return m.UsageCount
}

// Count 表行数
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// Address 种子地址，返回地址ID
func Address(t *testing.T, db *gorm.DB, userID uint, typ string) uint {
	t.Helper()
	m := &mysql.AddressModel{
		UserID:     userID,
		Type:       typ,
		FullName:   "Test User",
		Line1:      "1 Main St",
		City:       "Springfield",
		State:      "IL",
		Country:    "US",
		PostalCode: "62701",
		Phone:      "555-0100",
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}
