package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) catalog.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	model := toCategoryModel(c)
	if err := conn(ctx, r.db).Omit("Parent").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	return r.first(conn(ctx, r.db).Where("slug = ?", slug))
}

func (r *categoryRepository) first(query *gorm.DB) (*catalog.Category, error) {
	var model CategoryModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	result := conn(ctx, r.db).Model(&CategoryModel{ID: c.ID}).
		Select("*").
		Omit("id", "created_at", "Parent").
		Updates(toCategoryModel(c))
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return catalog.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&CategoryModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return catalog.ErrCategoryInUse
		}
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	return r.find(conn(ctx, r.db))
}

func (r *categoryRepository) ListChildren(ctx context.Context, parentID string) ([]*catalog.Category, error) {
	return r.find(conn(ctx, r.db).Where("parent_id = ?", parentID))
}

func (r *categoryRepository) find(query *gorm.DB) ([]*catalog.Category, error) {
	var models []CategoryModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	categories := make([]*catalog.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func toCategoryModel(c *catalog.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryEntity(m *CategoryModel) *catalog.Category {
	return &catalog.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Image:       m.Image,
		ParentID:    m.ParentID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
