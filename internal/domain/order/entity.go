package order

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid 是否为已知的订单状态
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid 是否为已知的支付状态
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order 订单实体（聚合根）
// 说明:
// 1. OrderItem和Payment是聚合内的子实体，与订单在同一事务中写入
// 2. TotalAmount/DiscountAmount是客户端提交的值，写入前必须通过Reconcile
// 3. 账单地址与收货地址下单后不可修改
type Order struct {
	ID                uint
	OrderNo           string
	UserID            uint
	TotalAmount       decimal.Decimal
	DiscountAmount    decimal.Decimal
	CouponID          *uint
	BillingAddressID  uint
	ShippingAddressID uint
	OrderStatus       OrderStatus
	PaymentStatus     PaymentStatus
	Items             []OrderItem
	Payment           *Payment
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem 订单明细
// Price是下单时提交的单价快照，不随商品改价变化
type OrderItem struct {
	ID        uint
	OrderID   uint
	VariantID uint
	SellerID  uint
	Quantity  int
	Price     decimal.Decimal
}

// LineTotal 单价 × 数量
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment 支付记录，与订单一对一
// 创建时Status与订单的PaymentStatus一致
type Payment struct {
	ID        uint
	OrderID   uint
	Method    string
	Status    PaymentStatus
	Reference string
	CreatedAt time.Time
}

// NewOrder 创建新订单（工厂方法）
// Payment随订单一起生成，状态跟随订单的支付状态
func NewOrder(orderNo string, userID uint, items []OrderItem, total, discount decimal.Decimal, couponID *uint,
	billingAddressID, shippingAddressID uint, status OrderStatus, paymentStatus PaymentStatus,
	paymentMethod, paymentReference string) *Order {
	now := time.Now()
	if status == "" {
		status = OrderStatusPending
	}
	if paymentStatus == "" {
		paymentStatus = PaymentStatusPending
	}
	return &Order{
		OrderNo:           orderNo,
		UserID:            userID,
		TotalAmount:       total,
		DiscountAmount:    discount,
		CouponID:          couponID,
		BillingAddressID:  billingAddressID,
		ShippingAddressID: shippingAddressID,
		OrderStatus:       status,
		PaymentStatus:     paymentStatus,
		Items:             items,
		Payment: &Payment{
			Method:    paymentMethod,
			Status:    paymentStatus,
			Reference: paymentReference,
			CreatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Subtotal 明细金额合计（折扣前）
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Reconcile 校验提交的金额与服务端计算结果一致
// 规则：discount == expectedDiscount，且 total == subtotal - discount
// 比较前统一保留两位小数
func (o *Order) Reconcile(expectedDiscount decimal.Decimal) error {
	if o.TotalAmount.IsNegative() || o.DiscountAmount.IsNegative() {
		return ErrNegativeAmount
	}

	discount := o.DiscountAmount.Round(2)
	expected := expectedDiscount.Round(2)
	if !discount.Equal(expected) {
		return ErrAmountMismatch.WithMessage("Discount mismatch: submitted %s, expected %s",
			discount.StringFixed(2), expected.StringFixed(2))
	}

	wantTotal := o.Subtotal().Sub(expected).Round(2)
	if !o.TotalAmount.Round(2).Equal(wantTotal) {
		return ErrAmountMismatch.WithMessage("Total mismatch: submitted %s, expected %s",
			o.TotalAmount.StringFixed(2), wantTotal.StringFixed(2))
	}
	return nil
}

// VariantIDs 明细中的规格ID，升序去重
// 库存行按此顺序加锁，避免并发下单互相等待形成死锁
func (o *Order) VariantIDs() []uint {
	return sortedUnique(o.Items, func(i OrderItem) uint { return i.VariantID })
}

// SellerIDs 明细中的卖家ID，升序去重
func (o *Order) SellerIDs() []uint {
	return sortedUnique(o.Items, func(i OrderItem) uint { return i.SellerID })
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// HasCoupon 是否使用了优惠券
func (o *Order) HasCoupon() bool {
	return o.CouponID != nil && *o.CouponID != 0
}

func sortedUnique(items []OrderItem, key func(OrderItem) uint) []uint {
	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
