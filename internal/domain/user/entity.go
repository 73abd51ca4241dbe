package user

import (
	"strings"
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User 用户实体
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt哈希值，第三方登录用户可为空
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建普通用户
func NewUser(email, passwordHash, name string) *User {
	now := time.Now()
	return &User{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword 是否设置过密码
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// NormalizeEmail 邮箱统一小写去空白
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
