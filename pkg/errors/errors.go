package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，客户端据此判断错误类型
// 2. Message是面向用户的提示信息
// 3. Err是内部错误，只写日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误经过WithMessage派生后仍可用errors.Is匹配
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 返回该错误对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// WithMessage 复制错误码并替换提示信息（用于携带具体的变体ID、金额等）
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     e.Err,
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 底层错误被隐藏，客户端只看到message
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 业务规则校验失败
// - 401xx: 认证失败
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 409xx: 参数错误
// - 42900: 限流
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeTimeout       = 50003 // 事务超时

	// 认证错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误

	// 授权错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeCouponInvalid     = 40401 // 优惠券无效或已过期
	ErrCodeUserNotFound      = 40402 // 用户不存在
	ErrCodeOrderNotFound     = 40403 // 订单不存在
	ErrCodeVariantNotFound   = 40404 // 商品规格不存在
	ErrCodeProductNotFound   = 40405 // 商品不存在
	ErrCodeCouponNotFound    = 40406 // 优惠券不存在
	ErrCodeCartItemNotFound  = 40407 // 购物车条目不存在
	ErrCodeInventoryNotFound = 40408 // 库存记录不存在
	ErrCodeAddressNotFound   = 40409 // 地址不存在
	ErrCodeWishlistNotFound  = 40410 // 心愿单条目不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock  = 40001 // 库存不足
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeSKUDuplicate       = 40004 // SKU已存在
	ErrCodeWeakPassword       = 40005 // 密码强度不足
	ErrCodeCouponDuplicate    = 40006 // 优惠券码已存在
	ErrCodeSellerMismatch     = 40007 // 明细卖家与商品不一致
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)
	ErrCodeAmountMismatch     = 40010 // 订单金额对账失败
	ErrCodeCouponScope        = 40011 // 优惠券卖家范围不符
	ErrCodeCouponExhausted    = 40012 // 优惠券次数用尽
	ErrCodeCouponMinPurchase  = 40013 // 未达到最低消费
	ErrCodeCouponInUse        = 40014 // 优惠券已被订单引用
	ErrCodeAddressInUse       = 40015 // 地址已被订单引用
	ErrCodeWishlistDuplicate  = 40016 // 已在心愿单中

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败

	// 限流（42900）
	ErrCodeTooManyRequests = 42900 // 请求过于频繁
)

// HTTPStatus 业务错误码 → HTTP状态码
// 规则按错误码区间划分，未知错误码一律视为500
func HTTPStatus(code int) int {
	switch {
	case code == 0:
		return http.StatusOK
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40300 && code < 40400:
		return http.StatusForbidden
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	case code == ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")
	ErrTimeout       = New(ErrCodeTimeout, "Request timed out, please retry")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "User authentication required")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token expired")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "Invalid email or password")
	ErrForbidden       = New(ErrCodeForbidden, "Access denied")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "Resource not found")
	ErrUserNotFound = New(ErrCodeUserNotFound, "User not found")

	// 业务规则
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "Email already registered")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "Password must be 8-20 characters and contain letters and digits")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body")

	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
