package main

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shopcore/internal/interface/http/handler"
	"github.com/xiebiao/shopcore/internal/interface/http/router"
	"github.com/xiebiao/shopcore/pkg/circuitbreaker"
	"github.com/xiebiao/shopcore/pkg/jwt"
	"github.com/xiebiao/shopcore/pkg/mq"
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideTxManager(db *gorm.DB, cfg *config.Config) *mysql.TxManager {
	return mysql.NewTxManager(db, cfg.Order.TxTimeout)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessions *redis.SessionStore, cfg *config.Config, logger *zap.Logger) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessions, cfg.JWT.RefreshTokenExpire, logger)
}

// provideNotifier 返回下单通知器及其关闭函数
// 关闭时先等在途发布结束再关连接
func provideNotifier(cfg *config.Config, logger *zap.Logger) (apporder.Notifier, func(), error) {
	if !cfg.RabbitMQ.Enabled {
		return messaging.NewLogNotifier(logger), func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic", logger)
	if err != nil {
		return nil, nil, err
	}
	breaker := circuitbreaker.NewCircuitBreaker("rabbitmq-publisher", circuitbreaker.DefaultConfig())
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		logger.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	})

	notifier := messaging.NewRabbitNotifier(publisher, breaker, cfg.Order.NotifyTimeout, logger)
	return notifier, func() {
		notifier.Wait()
		_ = publisher.Close()
	}, nil
}

// buildHandlers 手动组装仓储、领域服务、用例与处理器
func buildHandlers(cfg *config.Config, db *gorm.DB, sessions *redis.SessionStore, jwtManager *jwt.Manager, notifier apporder.Notifier, logger *zap.Logger) *router.Handlers {
	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	catalogRepo := mysql.NewCatalogRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	couponRepo := mysql.NewCouponRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	wishlistRepo := mysql.NewWishlistRepository(db)
	txManager := provideTxManager(db, cfg)

	// 领域层
	userService := user.NewService(userRepo)
	catalogService := catalog.NewService(catalogRepo)
	cartService := cart.NewService(cartRepo)
	couponService := coupon.NewService(couponRepo)
	addressService := address.NewService(addressRepo)
	wishlistService := wishlist.NewService(wishlistRepo)

	addToCart := appcart.NewAddToCartUseCase(cartService, cartRepo, catalogService, inventoryRepo)

	return &router.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			provideLoginUseCase(userService, jwtManager, sessions, cfg, logger),
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
				txManager, notifier, logger),
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
}
