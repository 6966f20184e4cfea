package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/shopcore/internal/domain/order"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
)

// orderRepository 订单仓储
// Order、OrderItem、Payment是同一聚合，一起写入、一起读取
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 一次Create写入订单、明细和支付记录（GORM保存关联）
// 必须在下单事务中调用
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "Duplicate order number, please retry")
		}
		return &apperrors.AppError{Code: order.ErrCreateFailed.Code, Message: order.ErrCreateFailed.Message, Err: err}
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	if o.Payment != nil && model.Payment != nil {
		o.Payment.ID = model.Payment.ID
		o.Payment.OrderID = model.ID
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return r.first(dbFrom(ctx, r.db).Where("id = ?", id))
}

func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return r.first(dbFrom(ctx, r.db).Where("order_no = ?", orderNo))
}

// first Preload明细与支付，避免N+1
func (r *orderRepository) first(query *gorm.DB) (*order.Order, error) {
	var model OrderModel
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Payment").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return r.List(ctx, order.ListParams{Page: page, PageSize: pageSize, UserID: &userID})
}

func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&OrderModel{})
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.OrderStatus != "" {
		query = query.Where("order_status = ?", string(params.OrderStatus))
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", string(params.PaymentStatus))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	limit, offset := paginate(params.Page, params.PageSize)
	if err := query.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	m := &OrderModel{
		OrderNo:           o.OrderNo,
		UserID:            o.UserID,
		TotalAmount:       o.TotalAmount,
		DiscountAmount:    o.DiscountAmount,
		CouponID:          o.CouponID,
		BillingAddressID:  o.BillingAddressID,
		ShippingAddressID: o.ShippingAddressID,
		OrderStatus:       string(o.OrderStatus),
		PaymentStatus:     string(o.PaymentStatus),
		Items:             items,
	}
	if o.Payment != nil {
		m.Payment = &PaymentModel{
			Method:    o.Payment.Method,
			Status:    string(o.Payment.Status),
			Reference: o.Payment.Reference,
		}
	}
	return m
}

func toOrderEntity(m *OrderModel) *order.Order {
	o := &order.Order{
		ID:                m.ID,
		OrderNo:           m.OrderNo,
		UserID:            m.UserID,
		TotalAmount:       m.TotalAmount,
		DiscountAmount:    m.DiscountAmount,
		CouponID:          m.CouponID,
		BillingAddressID:  m.BillingAddressID,
		ShippingAddressID: m.ShippingAddressID,
		OrderStatus:       order.OrderStatus(m.OrderStatus),
		PaymentStatus:     order.PaymentStatus(m.PaymentStatus),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if len(m.Items) > 0 {
		o.Items = make([]order.OrderItem, len(m.Items))
		for i, item := range m.Items {
			o.Items[i] = order.OrderItem{
				ID:        item.ID,
				OrderID:   item.OrderID,
				VariantID: item.VariantID,
				SellerID:  item.SellerID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
		}
	}
	if m.Payment != nil {
		o.Payment = &order.Payment{
			ID:        m.Payment.ID,
			OrderID:   m.Payment.OrderID,
			Method:    m.Payment.Method,
			Status:    order.PaymentStatus(m.Payment.Status),
			Reference: m.Payment.Reference,
			CreatedAt: m.Payment.CreatedAt,
		}
	}
	return o
}
