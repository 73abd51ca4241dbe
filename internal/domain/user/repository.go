package user

import (
	"context"
)

// Repository 用户仓储接口
type Repository interface {
	Create(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id string) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, user *User) error

	Delete(ctx context.Context, id string) error

	// List 全部用户，新注册的在前
	List(ctx context.Context) ([]*User, error)
}
