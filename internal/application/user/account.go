package user

import (
	"context"
	"time"

	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// UserView 用户信息，不包含密码哈希
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// AccountService 账号管理：修改密码、后台用户列表、角色和删除
type AccountService struct {
	userService user.Service
}

func NewAccountService(userService user.Service) *AccountService {
	return &AccountService{userService: userService}
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// ChangePassword 修改当前登录用户的密码
func (s *AccountService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	principal := user.PrincipalFrom(ctx)
	if err := user.PolicyAuthenticated.Check(principal); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.userService.ChangePassword(ctx, principal, principal.UserID, req.CurrentPassword, req.NewPassword)
}

// List 全部用户（管理员）
func (s *AccountService) List(ctx context.Context) ([]*UserView, error) {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}

	users, err := s.userService.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*UserView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}
	return views, nil
}

// SetRoleRequest 修改角色请求
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// SetRole 修改他人角色（管理员）
func (s *AccountService) SetRole(ctx context.Context, userID string, req SetRoleRequest) (*UserView, error) {
	principal := user.PrincipalFrom(ctx)
	if err := user.PolicyAdmin.Check(principal); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	u, err := s.userService.SetRole(ctx, principal, userID, user.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return toUserView(u), nil
}

// Delete 删除他人账号（管理员），其订单和评价保留
func (s *AccountService) Delete(ctx context.Context, userID string) error {
	return s.userService.Delete(ctx, user.PrincipalFrom(ctx), userID)
}
