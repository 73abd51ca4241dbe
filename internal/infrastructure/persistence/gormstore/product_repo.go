package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// productRepository 商品仓储实现
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) catalog.ProductRepository {
	return &productRepository{db: db}
}

// Create 创建商品，slug冲突返回ErrSlugDuplicate
func (r *productRepository) Create(ctx context.Context, p *catalog.Product) error {
	model := toProductModel(p)

	if err := conn(ctx, r.db).Omit("Category").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrSlugDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	return r.first(conn(ctx, r.db).Where("products.id = ?", id))
}

// FindBySlug 根据slug查找商品
func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return r.first(conn(ctx, r.db).Where("products.slug = ?", slug))
}

func (r *productRepository) first(query *gorm.DB) (*catalog.Product, error) {
	var model ProductModel
	if err := query.Preload("Category").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindByIDs 批量查询，用于下单时校验商品
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	result := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []ProductModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询商品失败")
	}

	for i := range models {
		result[models[i].ID] = toProductEntity(&models[i])
	}
	return result, nil
}

// Update 更新商品全部可编辑字段
func (r *productRepository) Update(ctx context.Context, p *catalog.Product) error {
	model := toProductModel(p)

	result := conn(ctx, r.db).Model(&ProductModel{ID: p.ID}).
		Select("*").
		Omit("id", "created_at", "Category").
		Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return catalog.ErrSlugDuplicate
		}
		return apperrors.Wrap(result.Error, "更新商品失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Delete 删除商品，被订单明细引用时返回ErrProductInOrders
func (r *productRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		if isForeignKeyError(result.Error) {
			return catalog.ErrProductInOrders
		}
		return apperrors.Wrap(result.Error, "删除商品失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// List 分页查询商品
func (r *productRepository) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Product, int64, error) {
	params.Normalize()

	query := conn(ctx, r.db).Model(&ProductModel{})
	if len(params.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", params.CategoryIDs)
	}
	if params.Featured != nil {
		query = query.Where("featured = ?", *params.Featured)
	}
	if params.InStock != nil {
		query = query.Where("in_stock = ?", *params.InStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "name":
		query = query.Order("name ASC")
	default:
		query = query.Order("created_at DESC")
	}

	var models []ProductModel
	err := query.Preload("Category").
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	return toProductEntities(models), total, nil
}

// Search 按商品名称、描述、分类名称不区分大小写匹配
func (r *productRepository) Search(ctx context.Context, keyword string, limit int) ([]*catalog.Product, error) {
	pattern := likePattern(keyword)
	cond := "LOWER(products.name) LIKE ? ESCAPE '" + likeEscape + "'" +
		" OR LOWER(products.description) LIKE ? ESCAPE '" + likeEscape + "'" +
		" OR LOWER(categories.name) LIKE ? ESCAPE '" + likeEscape + "'"

	var models []ProductModel
	err := conn(ctx, r.db).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where(cond, pattern, pattern, pattern).
		Preload("Category").
		Order("products.featured DESC, products.created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索商品失败")
	}
	return toProductEntities(models), nil
}

// Count 商品总数
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&ProductModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计商品失败")
	}
	return total, nil
}

// CountByCategory 分类下的商品数量
func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&ProductModel{}).Where("category_id = ?", categoryID).Count(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类商品失败")
	}
	return total, nil
}

// =========================================
// 模型转换
// =========================================

func toProductModel(p *catalog.Product) *ProductModel {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &ProductModel{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		Images:           images,
		InStock:          p.InStock,
		Featured:         p.Featured,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProductEntity(m *ProductModel) *catalog.Product {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	p := &catalog.Product{
		ID:               m.ID,
		Name:             m.Name,
		Slug:             m.Slug,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Price:            m.Price,
		CompareAtPrice:   m.CompareAtPrice,
		Images:           images,
		InStock:          m.InStock,
		Featured:         m.Featured,
		SKU:              m.SKU,
		CategoryID:       m.CategoryID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Category != nil {
		p.Category = toCategoryEntity(m.Category)
	}
	return p
}

func toProductEntities(models []ProductModel) []*catalog.Product {
	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}
