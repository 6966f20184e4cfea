package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/jwt"
	"github.com/xiebiao/shopcore/pkg/response"
)

// Context键
const (
	ctxUserID      = "user_id"
	ctxEmail       = "email"
	ctxRole        = "role"
	ctxAccessToken = "access_token"
)

// TokenBlacklist 已登出Token的黑名单（*redis.SessionStore实现）
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
//  1. 从Header提取Bearer Token
//  2. 检查黑名单
//  3. 校验签名与有效期
//  4. 将用户ID、邮箱、角色写入gin.Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(auth.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}
		token := parts[1]

		revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.Error(c, apperrors.ErrInvalidToken.WithMessage("Token revoked, please log in again"))
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxAccessToken, token)
		c.Next()
	}
}

// RequireRole 要求角色之一，必须在RequireAuth之后使用
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, apperrors.ErrForbidden.WithMessage("Access denied. Required role: %s", strings.Join(roles, " or ")))
		c.Abort()
	}
}

// GetUserID 当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetRole 当前登录用户角色
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// IsAdmin 当前用户是否为管理员
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}

// GetAccessToken 当前请求携带的Access Token（登出时拉黑）
func GetAccessToken(c *gin.Context) string {
	return c.GetString(ctxAccessToken)
}

// MustGetUserID 只能用于RequireAuth之后的Handler
func MustGetUserID(c *gin.Context) uint {
	id := GetUserID(c)
	if id == 0 {
		panic("user_id not found in context")
	}
	return id
}
