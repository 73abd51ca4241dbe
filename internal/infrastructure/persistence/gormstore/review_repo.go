package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/review"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	if err := conn(ctx, r.db).Omit("Product").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建评价失败")
	}
	rv.ID = model.ID
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var model ReviewModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// SetApproved 设置审核状态
func (r *reviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	result := conn(ctx, r.db).Model(&ReviewModel{}).Where("id = ?", id).Update("approved", approved)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// DeleteByProduct 删除商品的全部评价
func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID string) error {
	if err := conn(ctx, r.db).Where("product_id = ?", productID).Delete(&ReviewModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除商品评价失败")
	}
	return nil
}

// ListApprovedByProduct 商品详情页展示的评价
func (r *reviewRepository) ListApprovedByProduct(ctx context.Context, productID string) ([]*review.Review, error) {
	return r.find(conn(ctx, r.db).Where("product_id = ? AND approved = ?", productID, true))
}

func (r *reviewRepository) List(ctx context.Context) ([]*review.Review, error) {
	return r.find(conn(ctx, r.db))
}

func (r *reviewRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&ReviewModel{}).Where("approved = ?", false).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计待审核评价失败")
	}
	return total, nil
}

func (r *reviewRepository) find(query *gorm.DB) ([]*review.Review, error) {
	var models []ReviewModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评价列表失败")
	}
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:        rv.ID,
		Name:      rv.Name,
		Email:     rv.Email,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		Approved:  rv.Approved,
		ProductID: rv.ProductID,
		UserID:    rv.UserID,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Approved:  m.Approved,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
