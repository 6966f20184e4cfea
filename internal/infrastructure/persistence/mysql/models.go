package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 说明：
// 1. 这里是infrastructure层的数据模型，带GORM tag；领域实体不依赖GORM
// 2. 金额统一为DECIMAL(10,2)，Go侧使用decimal.Decimal
// 3. 带默认值的bool/int字段不写default tag，否则零值会被默认值覆盖

// UserModel 用户表
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:名称"`
	Role      string         `gorm:"index;size:20;not null;comment:角色(customer/seller/admin)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

func (UserModel) TableName() string {
	return "users"
}

// ProductModel 商品表
type ProductModel struct {
	ID          uint            `gorm:"primaryKey"`
	SellerID    uint            `gorm:"index;not null;comment:卖家用户ID"`
	Name        string          `gorm:"index;size:200;not null;comment:商品名称"`
	Description string          `gorm:"type:text;comment:商品描述"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:基础价"`
	Variants    []VariantModel  `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt  `gorm:"index;comment:删除时间（软删除）"`
}

func (ProductModel) TableName() string {
	return "products"
}

// VariantModel 商品规格表
type VariantModel struct {
	ID              uint            `gorm:"primaryKey"`
	ProductID       uint            `gorm:"index;not null;comment:商品ID"`
	Size            string          `gorm:"size:20;comment:尺码"`
	Color           string          `gorm:"size:30;comment:颜色"`
	SKU             string          `gorm:"uniqueIndex;size:64;not null;comment:SKU"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:规格加价"`
	CreatedAt       time.Time       `gorm:"comment:创建时间"`
}

func (VariantModel) TableName() string {
	return "product_variants"
}

// InventoryModel 库存表，一个规格一行
type InventoryModel struct {
	ID          uint       `gorm:"primaryKey"`
	VariantID   uint       `gorm:"uniqueIndex;not null;comment:规格ID"`
	Stock       int        `gorm:"not null;comment:库存数量"`
	RestockDate *time.Time `gorm:"comment:预计补货日期"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

func (InventoryModel) TableName() string {
	return "inventories"
}

// InventoryLogModel 库存日志表（只追加）
type InventoryLogModel struct {
	ID          uint      `gorm:"primaryKey"`
	VariantID   uint      `gorm:"index;not null;comment:规格ID"`
	ChangeType  string    `gorm:"size:20;not null;comment:变更类型(DEDUCT/RESTOCK/ADJUST)"`
	Quantity    int       `gorm:"not null;comment:变更数量(带符号)"`
	BeforeStock int       `gorm:"not null;comment:变更前库存"`
	AfterStock  int       `gorm:"not null;comment:变更后库存"`
	OrderID     *uint     `gorm:"index;comment:关联订单ID"`
	Remark      string    `gorm:"size:255;comment:备注"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
}

func (InventoryLogModel) TableName() string {
	return "inventory_logs"
}

// CartItemModel 购物车表，(user_id, variant_id)唯一
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:uk_cart_user_variant;not null;comment:用户ID"`
	VariantID uint      `gorm:"uniqueIndex:uk_cart_user_variant;not null;comment:规格ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// AddressModel 地址表
type AddressModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null;comment:用户ID"`
	Type       string    `gorm:"size:20;not null;comment:类型 shipping/billing"`
	FullName   string    `gorm:"size:100;not null;comment:收件人"`
	Line1      string    `gorm:"size:255;not null;comment:地址行1"`
	Line2      string    `gorm:"size:255;comment:地址行2"`
	City       string    `gorm:"size:100;not null;comment:城市"`
	State      string    `gorm:"size:100;not null;comment:省/州"`
	Country    string    `gorm:"size:100;not null;comment:国家"`
	PostalCode string    `gorm:"size:20;not null;comment:邮编"`
	Phone      string    `gorm:"column:phone_number;size:30;not null;comment:联系电话"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (AddressModel) TableName() string {
	return "addresses"
}

// WishlistModel 心愿单表，(user_id, product_id)唯一
type WishlistModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:uk_wishlist_user_product;not null;comment:用户ID"`
	ProductID uint      `gorm:"uniqueIndex:uk_wishlist_user_product;index;not null;comment:商品ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (WishlistModel) TableName() string {
	return "wishlists"
}

// CouponModel 优惠券表
type CouponModel struct {
	ID           uint                `gorm:"primaryKey"`
	Code         string              `gorm:"uniqueIndex;size:50;not null;comment:券码"`
	Description  string              `gorm:"size:255;comment:描述"`
	DiscountType string              `gorm:"size:20;not null;comment:折扣类型(percentage/fixed)"`
	Value        decimal.Decimal     `gorm:"type:decimal(10,2);not null;comment:折扣值"`
	MinPurchase  decimal.Decimal     `gorm:"type:decimal(10,2);not null;comment:最低消费"`
	MaxDiscount  decimal.NullDecimal `gorm:"type:decimal(10,2);comment:最高折扣金额"`
	StartDate    time.Time           `gorm:"not null;comment:生效时间"`
	EndDate      time.Time           `gorm:"index;not null;comment:失效时间"`
	UsageLimit   int                 `gorm:"not null;comment:使用次数上限(0不限)"`
	UsageCount   int                 `gorm:"not null;comment:已使用次数"`
	Status       string              `gorm:"size:20;not null;comment:状态(active/inactive)"`
	IsActive     bool                `gorm:"index;not null;comment:是否启用"`
	SellerID     *uint               `gorm:"index;comment:创建卖家ID(空为平台券)"`
	CreatedAt    time.Time           `gorm:"comment:创建时间"`
	UpdatedAt    time.Time           `gorm:"comment:更新时间"`
}

func (CouponModel) TableName() string {
	return "coupons"
}

// RedemptionModel 优惠券核销表，一个订单最多一条
type RedemptionModel struct {
	ID             uint            `gorm:"primaryKey"`
	CouponID       uint            `gorm:"index;not null;comment:优惠券ID"`
	UserID         uint            `gorm:"index;not null;comment:用户ID"`
	OrderID        uint            `gorm:"uniqueIndex;not null;comment:订单ID"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:折扣金额"`
	RedeemedAt     time.Time       `gorm:"not null;comment:核销时间"`
}

func (RedemptionModel) TableName() string {
	return "coupon_redemptions"
}

// OrderModel 订单表，与明细一对多、与支付一对一
type OrderModel struct {
	ID                uint             `gorm:"primaryKey"`
	OrderNo           string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID            uint             `gorm:"index;not null;comment:买家用户ID"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(10,2);not null;comment:应付金额"`
	DiscountAmount    decimal.Decimal  `gorm:"type:decimal(10,2);not null;comment:折扣金额"`
	CouponID          *uint            `gorm:"index;comment:优惠券ID"`
	BillingAddressID  uint             `gorm:"index;not null;comment:账单地址ID"`
	ShippingAddressID uint             `gorm:"index;not null;comment:收货地址ID"`
	OrderStatus       string           `gorm:"index;size:20;not null;comment:订单状态"`
	PaymentStatus     string           `gorm:"index;size:20;not null;comment:支付状态"`
	Items             []OrderItemModel `gorm:"foreignKey:OrderID"`
	Payment           *PaymentModel    `gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt         time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细表，Price为下单时的单价快照
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null;comment:订单ID"`
	VariantID uint            `gorm:"index;not null;comment:规格ID"`
	SellerID  uint            `gorm:"index;not null;comment:卖家ID"`
	Quantity  int             `gorm:"not null;comment:购买数量"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel 支付记录表
type PaymentModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"uniqueIndex;not null;comment:订单ID"`
	Method    string    `gorm:"size:30;not null;comment:支付方式"`
	Status    string    `gorm:"size:20;not null;comment:支付状态"`
	Reference string    `gorm:"size:100;comment:支付流水号"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
