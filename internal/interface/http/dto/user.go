package dto

// RegisterRequest 注册请求，role缺省为customer
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"seller@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
	Name     string `json:"name" binding:"required,min=2,max=50" example:"Alice"`
	Role     string `json:"role" binding:"omitempty,oneof=customer seller" example:"seller"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"seller@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Access Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest 登出，refresh_token可选
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
