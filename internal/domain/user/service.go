package user

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// MinPasswordLength 密码最小长度
const MinPasswordLength = 6

// Service 用户领域服务
type Service interface {
	// Register 注册普通用户
	Register(ctx context.Context, email, password, name string) (*User, error)

	// Login 校验邮箱和密码
	Login(ctx context.Context, email, password string) (*User, error)

	// ChangePassword 只能修改自己的密码，且需验证当前密码
	ChangePassword(ctx context.Context, actor *Principal, userID, currentPassword, newPassword string) error

	// SetRole 管理员修改他人角色
	SetRole(ctx context.Context, actor *Principal, userID string, role Role) (*User, error)

	// Delete 管理员删除他人账号
	Delete(ctx context.Context, actor *Principal, userID string) error

	List(ctx context.Context) ([]*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: bcrypt.DefaultCost}
}

// NewServiceWithCost 指定bcrypt成本，测试中使用bcrypt.MinCost
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

func (s *service) Register(ctx context.Context, email, password, name string) (*User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := NewUser(email, hash, name)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if err := validatePassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, actor *Principal, userID, currentPassword, newPassword string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if actor.UserID != userID {
		return ErrForbidden
	}
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.HasPassword() {
		return ErrInvalidPassword
	}
	if err := validatePassword(u.PasswordHash, currentPassword); err != nil {
		return err
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return s.repo.Update(ctx, u)
}

func (s *service) SetRole(ctx context.Context, actor *Principal, userID string, role Role) (*User, error) {
	if err := PolicyAdmin.Check(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if actor.UserID == userID {
		return nil, ErrSelfRoleChange
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, actor *Principal, userID string) error {
	if err := PolicyAdmin.Check(actor); err != nil {
		return err
	}
	if actor.UserID == userID {
		return ErrSelfDelete
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(h), nil
}

// validatePassword 比较bcrypt哈希
func validatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}
