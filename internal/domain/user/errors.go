package user

import (
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var (
	ErrUserNotFound    = apperrors.ErrUserNotFound
	ErrEmailDuplicate  = apperrors.ErrEmailDuplicate
	ErrInvalidPassword = apperrors.ErrInvalidPassword
	ErrUnauthorized    = apperrors.ErrUnauthorized
	ErrForbidden       = apperrors.ErrForbidden

	// ErrInvalidCredentials 登录失败，不区分邮箱不存在和密码错误
	ErrInvalidCredentials = apperrors.New(apperrors.ErrCodeInvalidPassword, "邮箱或密码错误")

	ErrWeakPassword = apperrors.New(apperrors.ErrCodeInvalidParams, "密码长度不能少于6位")

	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的角色")

	// ErrSelfDelete 管理员不能删除自己
	ErrSelfDelete = apperrors.New(apperrors.ErrCodeSelfOperation, "不能删除自己的账号")

	// ErrSelfRoleChange 管理员不能修改自己的角色
	ErrSelfRoleChange = apperrors.New(apperrors.ErrCodeSelfOperation, "不能修改自己的角色")
)
