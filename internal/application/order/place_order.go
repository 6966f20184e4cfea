package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/address"
	"github.com/xiebiao/shopcore/internal/domain/cart"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/internal/domain/inventory"
	"github.com/xiebiao/shopcore/internal/domain/order"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/metrics"
	"github.com/xiebiao/shopcore/pkg/tracing"
)

// Notifier 下单成功后的通知出口
// 实现必须立即返回，不能阻塞请求也不能影响已提交的订单
type Notifier interface {
	OrderPlaced(o *order.Order)
}

// PlaceOrderUseCase 下单用例
//
// 一个事务内依次完成：
//  0. 账单/收货地址必须存在且属于下单用户，加共享锁直到提交
//  1. 解析规格并核对卖家
//  2. 按规格ID升序 SELECT ... FOR UPDATE 锁库存并检查数量
//  3. 使用优惠券时锁券行并在锁内重新校验
//  4. 金额对账（折扣、应付金额都以服务端计算为准）
//  5. 写订单+明细+支付 → 扣库存+写日志 → 核销优惠券
//
// 提交之后再清理购物车、发送通知，两者失败都只记日志
type PlaceOrderUseCase struct {
	orderRepo     order.Repository
	couponRepo    coupon.Repository
	addressRepo   address.Repository
	inventoryRepo inventory.Repository
	cartRepo      cart.Repository
	catalog       catalog.Service
	txManager     *mysql.TxManager
	notifier      Notifier
	logger        *zap.Logger
	now           func() time.Time
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	couponRepo coupon.Repository,
	addressRepo address.Repository,
	inventoryRepo inventory.Repository,
	cartRepo cart.Repository,
	catalogService catalog.Service,
	txManager *mysql.TxManager,
	notifier Notifier,
	logger *zap.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:     orderRepo,
		couponRepo:    couponRepo,
		addressRepo:   addressRepo,
		inventoryRepo: inventoryRepo,
		cartRepo:      cartRepo,
		catalog:       catalogService,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID            uint // 从JWT中提取
	TotalAmount       decimal.Decimal
	DiscountAmount    decimal.Decimal
	CouponID          *uint
	BillingAddressID  uint
	ShippingAddressID uint
	OrderStatus       order.OrderStatus
	PaymentStatus     order.PaymentStatus
	PaymentMethod     string
	PaymentReference  string
	Items             []PlaceOrderItem
}

// PlaceOrderItem 下单明细
type PlaceOrderItem struct {
	VariantID uint
	SellerID  uint
	Quantity  int
	Price     decimal.Decimal // 客户端提交的单价快照，原样落库
}

// PlaceOrderResponse 下单响应
type PlaceOrderResponse struct {
	OrderID        uint            `json:"order_id"`
	OrderNo        string          `json:"order_no"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	OrderStatus    string          `json:"order_status"`
	PaymentStatus  string          `json:"payment_status"`
	CreatedAt      string          `json:"created_at"`
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (resp *PlaceOrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "application/order", "PlaceOrder")
	defer func() { tracing.EndSpan(span, err) }()

	done := metrics.TrackOrderInProgress()
	defer done()
	start := time.Now()

	o, err := uc.buildOrder(req)
	if err != nil {
		metrics.RecordOrderRejected(rejectReason(err))
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.place(txCtx, o)
	})
	if err != nil {
		metrics.RecordOrderRejected(rejectReason(err))
		uc.logger.Info("下单失败",
			zap.Uint("user_id", req.UserID),
			zap.Int("items", len(req.Items)),
			zap.Error(err))
		return nil, err
	}

	metrics.RecordOrderPlaced(time.Since(start))
	if o.HasCoupon() {
		metrics.RecordCouponRedemption()
	}
	uc.logger.Info("下单成功",
		zap.Uint("order_id", o.ID),
		zap.String("order_no", o.OrderNo),
		zap.Uint("user_id", o.UserID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)))

	uc.cleanupCart(ctx, o)
	uc.notifier.OrderPlaced(o)

	return &PlaceOrderResponse{
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		OrderStatus:    string(o.OrderStatus),
		PaymentStatus:  string(o.PaymentStatus),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}, nil
}

// buildOrder 同步参数校验并构造订单实体，不访问存储
func (uc *PlaceOrderUseCase) buildOrder(req PlaceOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, order.ErrEmptyItems
	}
	if req.BillingAddressID == 0 || req.ShippingAddressID == 0 {
		return nil, order.ErrMissingAddress
	}
	if req.TotalAmount.IsNegative() || req.DiscountAmount.IsNegative() {
		return nil, order.ErrNegativeAmount
	}
	if req.OrderStatus != "" && !req.OrderStatus.IsValid() {
		return nil, order.ErrInvalidStatus
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.IsValid() {
		return nil, order.ErrInvalidStatus
	}

	seen := make(map[uint]struct{}, len(req.Items))
	items := make([]order.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, order.ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return nil, order.ErrInvalidPrice
		}
		if _, dup := seen[item.VariantID]; dup {
			return nil, order.ErrDuplicateVariant
		}
		seen[item.VariantID] = struct{}{}

		items[i] = order.OrderItem{
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	couponID := req.CouponID
	if couponID != nil && *couponID == 0 {
		couponID = nil
	}

	return order.NewOrder(order.GenerateOrderNo(), req.UserID, items,
		req.TotalAmount, req.DiscountAmount, couponID,
		req.BillingAddressID, req.ShippingAddressID,
		req.OrderStatus, req.PaymentStatus,
		req.PaymentMethod, req.PaymentReference), nil
}

// place 事务内的全部步骤，任何一步返回错误都会整体回滚
func (uc *PlaceOrderUseCase) place(ctx context.Context, o *order.Order) error {
	owned, err := uc.addressRepo.LockOwned(ctx, o.UserID, []uint{o.BillingAddressID, o.ShippingAddressID})
	if err != nil {
		return err
	}
	for _, id := range []uint{o.BillingAddressID, o.ShippingAddressID} {
		if _, ok := owned[id]; !ok {
			return address.ErrAddressNotFound.WithMessage("Address %d not found or access denied.", id)
		}
	}

	variantIDs := o.VariantIDs()

	variants, err := uc.catalog.ResolveVariants(ctx, variantIDs)
	if err != nil {
		return err
	}
	for _, item := range o.Items {
		if v := variants[item.VariantID]; v.SellerID != item.SellerID {
			return order.ErrSellerMismatch.WithMessage(
				"Seller %d does not own product variant %d", item.SellerID, item.VariantID)
		}
	}

	// 库存预占：升序加锁，锁持有到事务结束
	stocks, err := uc.inventoryRepo.LockByVariantIDs(ctx, variantIDs)
	if err != nil {
		return err
	}
	quantities := make(map[uint]int, len(o.Items))
	for _, item := range o.Items {
		quantities[item.VariantID] = item.Quantity
	}
	for _, id := range variantIDs {
		inv, ok := stocks[id]
		if !ok {
			return inventory.Insufficient(id, 0, quantities[id])
		}
		if !inv.CanDeduct(quantities[id]) {
			return inventory.Insufficient(id, inv.Stock, quantities[id])
		}
	}

	// 优惠券在锁内重新校验，消除校验与核销之间的时间窗口
	expectedDiscount := decimal.Zero
	if o.HasCoupon() {
		c, err := uc.couponRepo.LockByID(ctx, *o.CouponID)
		if err != nil {
			if errors.Is(err, coupon.ErrCouponNotFound) {
				return coupon.ErrInvalidOrExpired
			}
			return err
		}
		quote, err := coupon.Evaluate(c, o.SellerIDs(), o.Subtotal(), uc.now())
		if err != nil {
			return err
		}
		expectedDiscount = quote.DiscountAmount
	}

	if err := o.Reconcile(expectedDiscount); err != nil {
		return err
	}

	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return err
	}

	for _, item := range o.Items {
		inv := stocks[item.VariantID]
		before := inv.Stock
		if err := uc.inventoryRepo.Deduct(ctx, inv, item.Quantity); err != nil {
			return err
		}
		if err := uc.inventoryRepo.CreateLog(ctx, inventory.NewDeductLog(item.VariantID, item.Quantity, before, o.ID)); err != nil {
			return err
		}
	}

	if o.HasCoupon() {
		redemption := coupon.NewRedemption(*o.CouponID, o.UserID, o.ID, expectedDiscount)
		if err := uc.couponRepo.CreateRedemption(ctx, redemption); err != nil {
			return err
		}
		if err := uc.couponRepo.IncrementUsage(ctx, *o.CouponID); err != nil {
			return err
		}
	}
	return nil
}

// cleanupCart 购物车清理与订单结果无关，失败只记日志
func (uc *PlaceOrderUseCase) cleanupCart(ctx context.Context, o *order.Order) {
	n, err := uc.cartRepo.DeleteByVariantIDs(context.WithoutCancel(ctx), o.UserID, o.VariantIDs())
	if err != nil {
		uc.logger.Warn("清理购物车失败",
			zap.Uint("order_id", o.ID),
			zap.Uint("user_id", o.UserID),
			zap.Error(err))
		return
	}
	uc.logger.Debug("购物车已清理", zap.Uint("order_id", o.ID), zap.Int64("rows", n))
}

// rejectReason 失败原因归类，作为指标标签
func rejectReason(err error) string {
	appErr := apperrors.GetAppError(err)
	switch {
	case apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock):
		return "insufficient_stock"
	case apperrors.HasCode(err, apperrors.ErrCodeAmountMismatch):
		return "amount_mismatch"
	case apperrors.HasCode(err, apperrors.ErrCodeCouponInvalid),
		appErr.Code >= apperrors.ErrCodeCouponScope && appErr.Code <= apperrors.ErrCodeCouponMinPurchase:
		return "coupon"
	case apperrors.HasCode(err, apperrors.ErrCodeTimeout):
		return "timeout"
	case appErr.HTTPStatus() == 404:
		return "not_found"
	case appErr.HTTPStatus() == 400:
		return "validation"
	default:
		return "internal"
	}
}
