package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/shopcore/docs"
	"github.com/xiebiao/shopcore/internal/domain/user"
	"github.com/xiebiao/shopcore/internal/infrastructure/config"
	"github.com/xiebiao/shopcore/internal/interface/http/handler"
	"github.com/xiebiao/shopcore/internal/interface/http/middleware"
	"github.com/xiebiao/shopcore/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Inventory *handler.InventoryHandler
	Coupon    *handler.CouponHandler
	Order     *handler.OrderHandler
	Address   *handler.AddressHandler
	Wishlist  *handler.WishlistHandler
}

// New 创建Gin引擎并注册全部路由
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		middleware.RateLimit(cfg.Server.RateLimitQPS, cfg.Server.RateLimitBurst),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	seller := middleware.RequireRole(string(user.RoleSeller), string(user.RoleAdmin))
	admin := middleware.RequireRole(string(user.RoleAdmin))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/refresh", h.User.Refresh)
			users.POST("/logout", auth.RequireAuth(), h.User.Logout)
		}

		// 商品浏览公开
		products := v1.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
			products.POST("", auth.RequireAuth(), seller, h.Product.Publish)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("/:variant_id", h.Inventory.Get)
			inventory.POST("/:variant_id/restock", auth.RequireAuth(), seller, h.Inventory.Restock)
			inventory.PUT("/:variant_id", auth.RequireAuth(), seller, h.Inventory.Adjust)
			inventory.GET("/:variant_id/logs", auth.RequireAuth(), seller, h.Inventory.Logs)
		}

		cart := v1.Group("/cart")
		cart.Use(auth.RequireAuth())
		{
			cart.POST("", h.Cart.Add)
			cart.GET("", h.Cart.Get)
			cart.DELETE("", h.Cart.Clear)
			cart.PUT("/:id", h.Cart.Update)
			cart.DELETE("/:id", h.Cart.Remove)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(auth.RequireAuth())
		{
			addresses.POST("", h.Address.Create)
			addresses.GET("", h.Address.List)
			addresses.PUT("/:id", h.Address.Update)
			addresses.DELETE("/:id", h.Address.Delete)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(auth.RequireAuth())
		{
			wishlist.POST("", h.Wishlist.Add)
			wishlist.GET("", h.Wishlist.Get)
			wishlist.DELETE("/:product_id", h.Wishlist.Remove)
			wishlist.POST("/:product_id/cart", h.Wishlist.MoveToCart)
		}

		coupons := v1.Group("/coupons")
		coupons.Use(auth.RequireAuth())
		{
			coupons.POST("/validate", h.Coupon.Validate)
			coupons.GET("", h.Coupon.List)
			coupons.GET("/mine", seller, h.Coupon.Mine)
			coupons.GET("/code/:code", h.Coupon.GetByCode)
			coupons.GET("/:id", h.Coupon.Get)
			coupons.POST("", seller, h.Coupon.Create)
			coupons.PUT("/:id", seller, h.Coupon.Update)
			coupons.DELETE("/:id", seller, h.Coupon.Deactivate)
			coupons.DELETE("/:id/hard", admin, h.Coupon.HardDelete)
		}

		orders := v1.Group("/orders")
		orders.Use(auth.RequireAuth())
		{
			orders.POST("", h.Order.PlaceOrder)
			orders.GET("/mine", h.Order.Mine)
			orders.GET("/:id", h.Order.Get)
			orders.GET("", admin, h.Order.List)
		}
	}

	return r
}
