package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appaddress "github.com/xiebiao/shopcore/internal/application/address"
	appcart "github.com/xiebiao/shopcore/internal/application/cart"
	appcatalog "github.com/xiebiao/shopcore/internal/application/catalog"
	appcoupon "github.com/xiebiao/shopcore/internal/application/coupon"
	appinventory "github.com/xiebiao/shopcore/internal/application/inventory"
	apporder "github.com/xiebiao/shopcore/internal/application/order"
	appuser "github.com/xiebiao/shopcore/internal/application/user"
	appwishlist "github.com/xiebiao/shopcore/internal/application/wishlist"
	"github.com/xiebiao/shopcore/internal/domain/address"
	"github.com/xiebiao/shopcore/internal/domain/cart"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/domain/coupon"
	"github.com/xiebiao/shopcore/internal/domain/user"
	"github.com/xiebiao/shopcore/internal/domain/wishlist"
	"github.com/xiebiao/shopcore/internal/infrastructure/config"
	"github.com/xiebiao/shopcore/internal/infrastructure/messaging"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/interface/http/handler"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/internal/interface/http/router"
	"github.com/xiebiao/shopcore/internal/testutil"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/jwt"
)

// memorySessions 内存版会话与黑名单
type memorySessions struct {
	mu       sync.Mutex
	sessions map[uint]map[string]interface{}
	revoked  map[string]bool
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[uint]map[string]interface{}{}, revoked: map[string]bool{}}
}

func (s *memorySessions) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = data
	return nil
}

func (s *memorySessions) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}

func (s *memorySessions) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memorySessions) AddToBlacklist(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *memorySessions) IsInBlacklist(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token], nil
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	db := testutil.NewDB(t)
	logger := zap.NewNop()
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	userRepo := mysql.NewUserRepository(db)
	catalogRepo := mysql.NewCatalogRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	couponRepo := mysql.NewCouponRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	wishlistService := wishlist.NewService(mysql.NewWishlistRepository(db))
	txManager := mysql.NewTxManager(db, 5*time.Second)
	sessions := newMemorySessions()
	jwtManager := jwt.NewManager("router-test-secret", time.Hour, 24*time.Hour)

	userService := user.NewServiceWithCost(userRepo, bcrypt.MinCost)
	catalogService := catalog.NewService(catalogRepo)
	cartService := cart.NewService(cartRepo)
	couponService := coupon.NewService(couponRepo)
	addressService := address.NewService(addressRepo)
	addToCart := appcart.NewAddToCartUseCase(cartService, cartRepo, catalogService, inventoryRepo)

	h := &router.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessions, 24*time.Hour, logger),
			appuser.NewRefreshUseCase(sessions, jwtManager),
			appuser.NewLogoutUseCase(sessions, jwtManager),
		),
		Product: handler.NewProductHandler(
			appcatalog.NewPublishProductUseCase(catalogService, inventoryRepo, txManager, logger),
			appcatalog.NewListProductsUseCase(catalogService),
			appcatalog.NewGetProductUseCase(catalogService, inventoryRepo),
		),
		Cart: handler.NewCartHandler(
			addToCart,
			appcart.NewGetCartUseCase(cartService, catalogRepo),
			appcart.NewManageCartUseCase(cartService),
		),
		Inventory: handler.NewInventoryHandler(
			appinventory.NewGetStockUseCase(inventoryRepo),
			appinventory.NewChangeStockUseCase(inventoryRepo, catalogService, txManager, logger),
			appinventory.NewListLogsUseCase(inventoryRepo),
		),
		Coupon: handler.NewCouponHandler(
			appcoupon.NewValidateCouponUseCase(couponRepo, catalogService, logger),
			appcoupon.NewCreateCouponUseCase(couponService, logger),
			appcoupon.NewUpdateCouponUseCase(couponService),
			appcoupon.NewDeleteCouponUseCase(couponService, logger),
			appcoupon.NewQueryCouponUseCase(couponRepo),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(orderRepo, couponRepo, addressRepo, inventoryRepo, cartRepo, catalogService,
				txManager, messaging.NewLogNotifier(logger), logger),
			apporder.NewGetOrderUseCase(orderRepo),
			apporder.NewListOrdersUseCase(orderRepo),
			apporder.NewListMyOrdersUseCase(orderRepo),
		),
		Address: handler.NewAddressHandler(
			appaddress.NewCreateAddressUseCase(addressService, txManager, logger),
			appaddress.NewManageAddressUseCase(addressService),
		),
		Wishlist: handler.NewWishlistHandler(
			appwishlist.NewAddToWishlistUseCase(wishlistService, catalogService),
			appwishlist.NewGetWishlistUseCase(wishlistService, catalogService),
			appwishlist.NewRemoveFromWishlistUseCase(wishlistService),
			appwishlist.NewMoveToCartUseCase(wishlistService, catalogService, addToCart, logger),
		),
	}

	auth := middleware.NewAuthMiddleware(jwtManager, sessions)
	return &server{t: t, db: db, engine: router.New(cfg, h, auth, logger)}
}

func (s *server) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// envelope 统一响应
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func data(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	decode(t, w, &env)
	require.NoError(t, json.Unmarshal(env.Data, out), w.Body.String())
}

func (s *server) signup(email, role string) (uint, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/users/register", "", map[string]interface{}{
		"email": email, "password": "secret123", "name": "Tester", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	login := s.login(email)
	return login.User.ID, login.AccessToken
}

func (s *server) login(email string) appuser.LoginResponse {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email": email, "password": "secret123",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var login appuser.LoginResponse
	data(s.t, w, &login)
	return login
}

// admin 注册后直接改库提升为管理员，再重新登录拿到带admin角色的Token
func (s *server) admin(email string) string {
	s.t.Helper()
	s.signup(email, "customer")
	require.NoError(s.t, s.db.Model(&mysql.UserModel{}).Where("email = ?", email).Update("role", "admin").Error)
	return s.login(email).AccessToken
}

// addresses 新建收货地址并同步创建账单地址，返回(账单ID, 收货ID)
func (s *server) addresses(token string) (uint, uint) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/addresses", token, map[string]interface{}{
		"type":                     "shipping",
		"full_name":                "Buyer",
		"line1":                    "1 Main St",
		"city":                     "Springfield",
		"state":                    "IL",
		"country":                  "US",
		"postal_code":              "62701",
		"phone_number":             "555-0100",
		"billing_same_as_shipping": true,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var views []appaddress.View
	data(s.t, w, &views)
	require.Len(s.t, views, 2)
	return views[1].ID, views[0].ID
}

func (s *server) publish(token, sku, price string, stock int) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":       "Product " + sku,
		"base_price": price,
		"variants":   []map[string]interface{}{{"sku": sku, "size": "M", "additional_price": "0", "stock": stock}},
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var view appcatalog.ProductView
	data(s.t, w, &view)
	require.Len(s.t, view.Variants, 1)
	return view.Variants[0].ID
}

func TestPing(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newServer(t)
	sellerID, sellerToken := s.signup("seller@example.com", "seller")
	_, buyerToken := s.signup("buyer@example.com", "customer")
	billingID, shippingID := s.addresses(buyerToken)

	variantID := s.publish(sellerToken, "SHIRT-M", "100.00", 10)

	// 卖家创建优惠券：20%，封顶50
	w := s.do(http.MethodPost, "/api/v1/coupons", sellerToken, map[string]interface{}{
		"code":          "SAVE20",
		"discount_type": "percentage",
		"value":         "20",
		"min_purchase":  "0",
		"max_discount":  "50",
		"start_date":    time.Now().Add(-time.Hour).UTC().Format(time.RFC3339),
		"end_date":      time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"usage_limit":   10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cv appcoupon.CouponView
	data(t, w, &cv)

	w = s.do(http.MethodPost, "/api/v1/cart", buyerToken, map[string]interface{}{
		"product_variant_id": variantID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 校验优惠券
	w = s.do(http.MethodPost, "/api/v1/coupons/validate", buyerToken, map[string]interface{}{
		"code": "SAVE20", "order_amount": "200", "product_variant_ids": []uint{variantID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var valid struct {
		Valid    bool   `json:"valid"`
		Message  string `json:"message"`
		Discount struct {
			CouponID       uint            `json:"coupon_id"`
			DiscountAmount decimal.Decimal `json:"discountAmount"`
			FinalAmount    decimal.Decimal `json:"finalAmount"`
		} `json:"discount"`
	}
	decode(t, w, &valid)
	assert.True(t, valid.Valid)
	assert.Equal(t, "Coupon is valid", valid.Message)
	assert.Equal(t, cv.ID, valid.Discount.CouponID)
	assert.True(t, decimal.NewFromInt(40).Equal(valid.Discount.DiscountAmount))
	assert.True(t, decimal.NewFromInt(160).Equal(valid.Discount.FinalAmount))

	// 下单
	w = s.do(http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"total_amount":        "160.00",
		"discount_amount":     "40.00",
		"coupon_id":           cv.ID,
		"billing_address_id":  billingID,
		"shipping_address_id": shippingID,
		"payment_method":      "card",
		"items": []map[string]interface{}{
			{"product_variant_id": variantID, "seller_id": sellerID, "quantity": 2, "price": "100.00"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed apporder.PlaceOrderResponse
	data(t, w, &placed)
	assert.NotEmpty(t, placed.OrderNo)
	assert.Equal(t, 8, testutil.Stock(t, s.db, variantID))
	assert.Equal(t, 1, testutil.UsageCount(t, s.db, cv.ID))

	// 购物车已清空
	w = s.do(http.MethodGet, "/api/v1/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cartView appcart.CartView
	data(t, w, &cartView)
	assert.Empty(t, cartView.Items)

	// 下单人可查看，卖家不可
	orderPath := fmt.Sprintf("/api/v1/orders/%d", placed.OrderID)
	w = s.do(http.MethodGet, orderPath, buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ov apporder.OrderView
	data(t, w, &ov)
	require.Len(t, ov.Items, 1)
	require.NotNil(t, ov.Payment)
	assert.Equal(t, "card", ov.Payment.Method)

	w = s.do(http.MethodGet, orderPath, sellerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/orders/mine", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	data(t, w, &page)
	assert.EqualValues(t, 1, page.Total)

	// 已被订单使用的券不能物理删除，订单引用的地址也不能删除
	adminToken := s.admin("admin@example.com")
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/coupons/%d/hard", cv.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var env envelope
	decode(t, w, &env)
	assert.Equal(t, apperrors.ErrCodeCouponInUse, env.Code)
	assert.EqualValues(t, 1, testutil.Count(t, s.db, &mysql.CouponModel{}))

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/addresses/%d", shippingID), buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	decode(t, w, &env)
	assert.Equal(t, apperrors.ErrCodeAddressInUse, env.Code)

	// 停用仍然可以
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/coupons/%d", cv.ID), sellerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPlaceOrder_Rejections(t *testing.T) {
	s := newServer(t)
	sellerID, sellerToken := s.signup("seller@example.com", "seller")
	_, buyerToken := s.signup("buyer@example.com", "customer")
	billingID, shippingID := s.addresses(buyerToken)
	_, strangerToken := s.signup("stranger@example.com", "customer")
	_, foreignShipping := s.addresses(strangerToken)
	variantID := s.publish(sellerToken, "MUG", "50.00", 5)

	order := func(total string, qty int) map[string]interface{} {
		return map[string]interface{}{
			"total_amount":        total,
			"discount_amount":     "0",
			"billing_address_id":  billingID,
			"shipping_address_id": shippingID,
			"payment_method":      "cod",
			"items": []map[string]interface{}{
				{"product_variant_id": variantID, "seller_id": sellerID, "quantity": qty, "price": "50.00"},
			},
		}
	}

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   int
	}{
		{"insufficient stock", order("300.00", 6), http.StatusBadRequest, 40001},
		{"amount mismatch", order("90.00", 2), http.StatusBadRequest, 40010},
		{"empty items", map[string]interface{}{
			"total_amount": "0", "billing_address_id": 1, "shipping_address_id": 1,
			"payment_method": "cod", "items": []interface{}{},
		}, http.StatusBadRequest, 40900},
		{"negative total", order("-1", 1), http.StatusBadRequest, 40900},
		{"address of another user", func() map[string]interface{} {
			body := order("50.00", 1)
			body["shipping_address_id"] = foreignShipping
			return body
		}(), http.StatusNotFound, apperrors.ErrCodeAddressNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/v1/orders", buyerToken, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			var env envelope
			decode(t, w, &env)
			assert.Equal(t, tt.code, env.Code)
		})
	}
	assert.Equal(t, 5, testutil.Stock(t, s.db, variantID))
	assert.EqualValues(t, 0, testutil.Count(t, s.db, &mysql.OrderModel{}))
}

func TestValidateCoupon_Rejections(t *testing.T) {
	s := newServer(t)
	_, sellerToken := s.signup("seller@example.com", "seller")
	_, buyerToken := s.signup("buyer@example.com", "customer")
	variantID := s.publish(sellerToken, "CAP", "20.00", 5)

	tests := []struct {
		name    string
		body    map[string]interface{}
		status  int
		message string
	}{
		{"missing amount", map[string]interface{}{"code": "NOPE", "product_variant_ids": []uint{variantID}},
			http.StatusBadRequest, "Invalid or missing order amount"},
		{"no products", map[string]interface{}{"code": "NOPE", "order_amount": "20"},
			http.StatusBadRequest, "No products provided to validate coupon against."},
		{"unknown code", map[string]interface{}{"code": "NOPE", "order_amount": "20", "product_variant_ids": []uint{variantID}},
			http.StatusNotFound, "Invalid or expired coupon"},
		{"missing code", map[string]interface{}{"order_amount": "20"}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/v1/coupons/validate", buyerToken, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			var resp struct {
				Valid   bool   `json:"valid"`
				Message string `json:"message"`
			}
			decode(t, w, &resp)
			assert.False(t, resp.Valid)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestAuthorization(t *testing.T) {
	s := newServer(t)
	_, buyerToken := s.signup("buyer@example.com", "customer")

	w := s.do(http.MethodGet, "/api/v1/orders/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 买家不能上架商品，也不能查看全部订单
	w = s.do(http.MethodPost, "/api/v1/products", buyerToken, map[string]interface{}{
		"name": "x", "base_price": "1", "variants": []map[string]interface{}{{"sku": "X"}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/v1/orders", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 登出后Token失效
	w = s.do(http.MethodPost, "/api/v1/users/logout", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/orders/mine", buyerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken(t *testing.T) {
	s := newServer(t)
	s.signup("buyer@example.com", "customer")
	login := s.login("buyer@example.com")

	// Refresh Token不能当作Access Token使用
	w := s.do(http.MethodGet, "/api/v1/orders/mine", login.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var env envelope
	decode(t, w, &env)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)

	// Access Token不能用来刷新
	w = s.do(http.MethodPost, "/api/v1/users/refresh", "", map[string]interface{}{"refresh_token": login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/users/refresh", "", map[string]interface{}{"refresh_token": login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed appuser.RefreshResponse
	data(t, w, &refreshed)
	require.NotEmpty(t, refreshed.AccessToken)

	w = s.do(http.MethodGet, "/api/v1/orders/mine", refreshed.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 登出时一并吊销Refresh Token
	w = s.do(http.MethodPost, "/api/v1/users/logout", refreshed.AccessToken, map[string]interface{}{"refresh_token": login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/v1/users/refresh", "", map[string]interface{}{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddressAndWishlistEndpoints(t *testing.T) {
	s := newServer(t)
	_, sellerToken := s.signup("seller@example.com", "seller")
	_, buyerToken := s.signup("buyer@example.com", "customer")
	_, otherToken := s.signup("other@example.com", "customer")
	variantID := s.publish(sellerToken, "LAMP", "30.00", 4)

	t.Run("地址簿", func(t *testing.T) {
		billingID, shippingID := s.addresses(buyerToken)

		w := s.do(http.MethodPost, "/api/v1/addresses", buyerToken, map[string]interface{}{
			"type": "office", "full_name": "x",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodPost, "/api/v1/addresses", buyerToken, map[string]interface{}{
			"type": "billing", "full_name": "x", "line1": "y",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env envelope
		decode(t, w, &env)
		assert.Contains(t, env.Message, "postal_code")

		w = s.do(http.MethodGet, "/api/v1/addresses", buyerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var book appaddress.BookView
		data(t, w, &book)
		assert.Equal(t, 2, book.Count)
		assert.True(t, book.BillingSameAsShipping)
		require.NotNil(t, book.ShippingAddress)
		assert.Equal(t, shippingID, book.ShippingAddress.ID)

		// 他人的地址按不存在处理
		w = s.do(http.MethodPut, fmt.Sprintf("/api/v1/addresses/%d", billingID), otherToken, map[string]interface{}{
			"full_name": "Mallory", "line1": "1", "city": "c", "state": "s", "country": "US",
			"postal_code": "1", "phone_number": "1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/addresses/%d", billingID), otherToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/addresses/%d", billingID), buyerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("心愿单", func(t *testing.T) {
		var v mysql.VariantModel
		require.NoError(t, s.db.First(&v, variantID).Error)
		productID := v.ProductID

		w := s.do(http.MethodPost, "/api/v1/wishlist", buyerToken, map[string]interface{}{"product_id": productID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = s.do(http.MethodPost, "/api/v1/wishlist", buyerToken, map[string]interface{}{"product_id": productID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = s.do(http.MethodPost, "/api/v1/wishlist", buyerToken, map[string]interface{}{"product_id": 9999})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodGet, "/api/v1/wishlist", buyerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var items []appwishlist.ItemView
		data(t, w, &items)
		require.Len(t, items, 1)
		assert.True(t, decimal.NewFromInt(30).Equal(items[0].Variants[0].UnitPrice))

		w = s.do(http.MethodPost, fmt.Sprintf("/api/v1/wishlist/%d/cart", productID), buyerToken, map[string]interface{}{
			"product_variant_id": variantID, "quantity": 2,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.do(http.MethodGet, "/api/v1/cart", buyerToken, nil)
		var cartView appcart.CartView
		data(t, w, &cartView)
		require.Len(t, cartView.Items, 1)
		assert.Equal(t, 2, cartView.Items[0].Quantity)

		w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/wishlist/%d", productID), buyerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInventoryEndpoints(t *testing.T) {
	s := newServer(t)
	_, sellerToken := s.signup("seller@example.com", "seller")
	_, otherToken := s.signup("other@example.com", "seller")
	variantID := s.publish(sellerToken, "SOCK", "5.00", 3)
	base := fmt.Sprintf("/api/v1/inventory/%d", variantID)

	w := s.do(http.MethodPost, base+"/restock", sellerToken, map[string]interface{}{"quantity": 7})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 10, testutil.Stock(t, s.db, variantID))

	w = s.do(http.MethodPut, base, otherToken, map[string]interface{}{"stock": 0})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, base, sellerToken, map[string]interface{}{"stock": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stock appinventory.StockView
	data(t, w, &stock)
	assert.Equal(t, 4, stock.Stock)

	w = s.do(http.MethodGet, base+"/logs", sellerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	data(t, w, &page)
	// 初始库存 + 补货 + 校正
	assert.EqualValues(t, 3, page.Total)

	w = s.do(http.MethodGet, "/api/v1/inventory/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
