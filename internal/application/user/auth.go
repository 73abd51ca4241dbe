package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/user"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
	"github.com/xiebiao/gypsumstore/pkg/jwt"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// SessionStore 登录会话与Token黑名单
// 未启用Redis时为nil，登出只依赖客户端丢弃Token
type SessionStore interface {
	SaveSession(ctx context.Context, userID string, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID string) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// errSessionRevoked Refresh Token已登出或用户已被删除
var errSessionRevoked = apperrors.ErrInvalidToken.WithMessage("登录已失效，请重新登录")

// RegisterUseCase 用户注册用例
type RegisterUseCase struct {
	userService user.Service
}

func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// Execute 执行注册，新用户角色为USER
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}
	return toUserView(u), nil
}

// LoginUseCase 用户登录用例
// 验证邮箱密码 → 签发Token对 → 保存会话
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	log          *zap.Logger
}

func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore, log *zap.Logger) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		log:          log,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserView `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}

	// 会话有效期与Refresh Token一致，保存失败不影响登录
	if uc.sessionStore != nil {
		session := map[string]interface{}{
			"user_id":  u.ID,
			"email":    u.Email,
			"role":     string(u.Role),
			"login_at": time.Now().Unix(),
		}
		if err := uc.sessionStore.SaveSession(ctx, u.ID, session, uc.jwtManager.RefreshTokenTTL()); err != nil {
			uc.log.Warn("保存会话失败", zap.String("user_id", u.ID), zap.Error(err))
		}
	}

	return &LoginResponse{
		User:         *toUserView(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// RefreshUseCase 用Refresh Token换取新的Access Token
// 角色取自存储的用户，降级或删除后旧的Refresh Token无法再换出管理员Token
type RefreshUseCase struct {
	jwtManager   *jwt.Manager
	users        user.Repository
	sessionStore SessionStore
	log          *zap.Logger
}

func NewRefreshUseCase(jwtManager *jwt.Manager, users user.Repository, sessionStore SessionStore, log *zap.Logger) *RefreshUseCase {
	return &RefreshUseCase{
		jwtManager:   jwtManager,
		users:        users,
		sessionStore: sessionStore,
		log:          log,
	}
}

// RefreshRequest 刷新请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (uc *RefreshUseCase) Execute(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	claims, err := uc.jwtManager.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if uc.sessionStore != nil {
		revoked, err := uc.sessionStore.IsInBlacklist(ctx, req.RefreshToken)
		if err != nil {
			uc.log.Warn("检查Token黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, errSessionRevoked
		}
	}

	u, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, errSessionRevoked
		}
		return nil, err
	}

	token, err := uc.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// LogoutRequest 登出请求，携带Refresh Token时一并吊销
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Execute 删除会话并把Token加入黑名单，黑名单过期时间为Token剩余有效期
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string, req LogoutRequest) error {
	claims, err := uc.jwtManager.ParseAccessToken(accessToken)
	if err != nil {
		return err
	}

	var refresh *jwt.Claims
	if req.RefreshToken != "" {
		refresh, err = uc.jwtManager.ParseRefreshToken(req.RefreshToken)
		if err != nil {
			return err
		}
		if refresh.UserID != claims.UserID {
			return apperrors.ErrInvalidToken
		}
	}

	if uc.sessionStore == nil {
		return nil
	}

	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	if err := uc.sessionStore.AddToBlacklist(ctx, accessToken, remaining(claims)); err != nil {
		return err
	}
	if refresh != nil {
		return uc.sessionStore.AddToBlacklist(ctx, req.RefreshToken, remaining(refresh))
	}
	return nil
}

func remaining(claims *jwt.Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}
