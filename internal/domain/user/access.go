package user

import (
	"context"
)

// Principal 当前请求的身份
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// IsAdmin 是否为管理员
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Policy 访问策略
type Policy int

const (
	PolicyPublic        Policy = iota // 无需登录
	PolicyAuthenticated               // 需要登录
	PolicyAdmin                       // 需要管理员
)

func (p Policy) String() string {
	switch p {
	case PolicyPublic:
		return "public"
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Allows 判断身份是否满足策略，principal为nil表示未登录
func (p Policy) Allows(principal *Principal) bool {
	switch p {
	case PolicyPublic:
		return true
	case PolicyAuthenticated:
		return principal != nil
	case PolicyAdmin:
		return principal.IsAdmin()
	default:
		return false
	}
}

// Check 不满足策略时返回统一的鉴权错误
func (p Policy) Check(principal *Principal) error {
	if p.Allows(principal) {
		return nil
	}
	if principal == nil {
		return ErrUnauthorized
	}
	return ErrForbidden
}

type principalKey struct{}

// WithPrincipal 将身份写入Context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom 从Context读取身份，未登录返回nil
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
