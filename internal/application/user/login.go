package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/user"
	apperrors "github.com/xiebiao/shopcore/pkg/errors"
	"github.com/xiebiao/shopcore/pkg/jwt"
)

// SessionStore 会话与Token黑名单存储（Redis实现）
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// LoginUseCase 登录：校验密码 → 签发Token对 → 保存会话
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	sessionTTL   time.Duration
	logger       *zap.Logger
}

// NewLoginUseCase sessionTTL与Refresh Token有效期一致
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore, sessionTTL time.Duration, logger *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(jwt.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
	})
	if err != nil {
		return nil, err
	}

	session := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	// 会话保存失败不影响登录
	if err := uc.sessionStore.SaveSession(ctx, u.ID, session, uc.sessionTTL); err != nil {
		uc.logger.Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         *toUserInfo(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// RefreshUseCase 用Refresh Token换取新的Access Token
// 要求会话仍然存在且Refresh Token未被拉黑，登出后无法再刷新
type RefreshUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

func NewRefreshUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.sessionStore.IsInBlacklist(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken.WithMessage("Token revoked, please log in again")
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.ErrUnauthorized.WithMessage("Session expired, please log in again")
		}
		return nil, err
	}

	access, _, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// LogoutUseCase 登出：删除会话，Access Token与（若提供的）Refresh Token在剩余有效期内拉黑
type LogoutUseCase struct {
	sessionStore SessionStore
	jwtManager   *jwt.Manager
}

func NewLogoutUseCase(sessionStore SessionStore, jwtManager *jwt.Manager) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, jwtManager: jwtManager}
}

// Execute refreshToken为空时只拉黑Access Token；会话已删除，旧Refresh Token同样无法刷新
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken, refreshToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.jwtManager.AccessTokenTTL()); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil || claims.UserID != userID {
		return apperrors.ErrInvalidToken
	}
	return uc.sessionStore.AddToBlacklist(ctx, refreshToken, uc.jwtManager.RefreshTokenTTL())
}
