package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/user"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
	"github.com/xiebiao/gypsumstore/pkg/jwt"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

const accessTokenKey = "access_token"

// Blacklist 已登出的Token，未启用Redis时为nil
type Blacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// UserLookup 读取存储的用户，角色以数据库为准
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// AuthMiddleware JWT认证与访问控制
// 解析Access Token → 检查黑名单 → 读取用户 → 身份写入请求Context → 按策略放行
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  Blacklist
	users      UserLookup
	log        *zap.Logger
}

func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist Blacklist, users UserLookup, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
		users:      users,
		log:        log,
	}
}

// Require 按访问策略保护路由组
//
//	admin := v1.Group("/admin", auth.Require(user.PolicyAdmin))
//
// 公开接口的Token可选，无效Token按匿名处理
func (m *AuthMiddleware) Require(policy user.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			m.authorize(c, policy, nil)
			return
		}

		principal, err := m.resolve(c.Request.Context(), token)
		if err != nil {
			if policy == user.PolicyPublic {
				c.Next()
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(accessTokenKey, token)
		c.Request = c.Request.WithContext(user.WithPrincipal(c.Request.Context(), principal))
		m.authorize(c, policy, principal)
	}
}

func (m *AuthMiddleware) authorize(c *gin.Context, policy user.Policy, principal *user.Principal) {
	if err := policy.Check(principal); err != nil {
		response.Error(c, err)
		c.Abort()
		return
	}
	c.Next()
}

// resolve 校验Token并构造身份
func (m *AuthMiddleware) resolve(ctx context.Context, token string) (*user.Principal, error) {
	if m.blacklist != nil {
		revoked, err := m.blacklist.IsInBlacklist(ctx, token)
		if err != nil {
			// 黑名单不可用时只依赖签名校验
			m.log.Warn("检查Token黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, apperrors.ErrTokenExpired.WithMessage("Token已失效，请重新登录")
		}
	}

	claims, err := m.jwtManager.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	u, err := m.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken.WithMessage("用户不存在，请重新登录")
		}
		return nil, err
	}
	return &user.Principal{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}, nil
}

// bearerToken 提取Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// AccessToken 当前请求的Access Token，登出时使用
func AccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}

// Principal 当前请求的身份，未登录返回nil
func Principal(c *gin.Context) *user.Principal {
	return user.PrincipalFrom(c.Request.Context())
}
