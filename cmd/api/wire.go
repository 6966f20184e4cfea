//go:build wireinject
// +build wireinject

// wire gen ./cmd/api 生成wire_gen.go
// 依赖图与main.go中的手动组装一致

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

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
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shopcore/internal/interface/http/handler"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、事务、会话、通知
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	provideTxManager,
	provideSessionStore,
	provideJWTManager,
	provideNotifier,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCatalogRepository,
	mysql.NewInventoryRepository,
	mysql.NewCartRepository,
	mysql.NewCouponRepository,
	mysql.NewOrderRepository,
	mysql.NewAddressRepository,
	mysql.NewWishlistRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	catalog.NewService,
	cart.NewService,
	coupon.NewService,
	address.NewService,
	wishlist.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewLogoutUseCase,
	appcatalog.NewPublishProductUseCase,
	appcatalog.NewListProductsUseCase,
	appcatalog.NewGetProductUseCase,
	appcart.NewAddToCartUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewManageCartUseCase,
	appinventory.NewGetStockUseCase,
	appinventory.NewChangeStockUseCase,
	appinventory.NewListLogsUseCase,
	appcoupon.NewValidateCouponUseCase,
	appcoupon.NewCreateCouponUseCase,
	appcoupon.NewUpdateCouponUseCase,
	appcoupon.NewDeleteCouponUseCase,
	appcoupon.NewQueryCouponUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewListMyOrdersUseCase,
	appaddress.NewCreateAddressUseCase,
	appaddress.NewManageAddressUseCase,
	appwishlist.NewAddToWishlistUseCase,
	appwishlist.NewGetWishlistUseCase,
	appwishlist.NewRemoveFromWishlistUseCase,
	appwishlist.NewMoveToCartUseCase,
)

// handlerSet HTTP处理器与中间件
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCartHandler,
	handler.NewInventoryHandler,
	handler.NewCouponHandler,
	handler.NewOrderHandler,
	handler.NewAddressHandler,
	handler.NewWishlistHandler,
	middleware.NewAuthMiddleware,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 返回注册好全部路由的Gin引擎
// cleanup负责等待在途通知并关闭MQ连接
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
