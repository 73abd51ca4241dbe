package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/user"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// userRepository 用户仓储实现
// 仓储层负责领域实体与GORM模型的转换，领域层不依赖GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户，邮箱冲突返回ErrEmailDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(conn(ctx, r.db).Where("email = ?", user.NormalizeEmail(email)))
}

func (r *userRepository) first(query *gorm.DB) (*user.User, error) {
	var model UserModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// Update 更新用户（姓名、密码、角色）
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()
	result := conn(ctx, r.db).Model(&UserModel{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":          u.Name,
		"password_hash": u.PasswordHash,
		"role":          string(u.Role),
		"updated_at":    u.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete 删除用户，其订单保留并解除关联
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&OrderModel{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "解除订单关联失败")
		}
		if err := tx.Model(&ReviewModel{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return apperrors.Wrap(err, "解除评价关联失败")
		}
		result := tx.Where("id = ?", id).Delete(&UserModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除用户失败")
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}

// List 全部用户
func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         user.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
