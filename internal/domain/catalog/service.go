package catalog

import (
	"context"
	"errors"
)

// Service 商品目录领域服务
// 负责slug唯一性、分类层级和删除前的引用检查
type Service interface {
	CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error)

	UpdateProduct(ctx context.Context, id string, draft ProductDraft) (*Product, error)

	CreateCategory(ctx context.Context, draft CategoryDraft) (*Category, error)

	UpdateCategory(ctx context.Context, id string, draft CategoryDraft) (*Category, error)

	DeleteCategory(ctx context.Context, id string) error

	// CategoryTree 分类及其直接子分类的ID
	CategoryTree(ctx context.Context, slug string) (*Category, []string, error)
}

type service struct {
	products   ProductRepository
	categories CategoryRepository
}

// NewService 创建领域服务
func NewService(products ProductRepository, categories CategoryRepository) Service {
	return &service{products: products, categories: categories}
}

func (s *service) CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error) {
	if !draft.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if _, err := s.categories.FindByID(ctx, draft.CategoryID); err != nil {
		return nil, err
	}

	product := NewProduct(draft)
	if err := s.ensureProductSlug(ctx, product.Slug, ""); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, draft ProductDraft) (*Product, error) {
	if !draft.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, draft.CategoryID); err != nil {
		return nil, err
	}

	product.Apply(draft)
	if err := s.ensureProductSlug(ctx, product.Slug, product.ID); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) CreateCategory(ctx context.Context, draft CategoryDraft) (*Category, error) {
	if draft.ParentID != nil && *draft.ParentID != "" {
		if _, err := s.categories.FindByID(ctx, *draft.ParentID); err != nil {
			return nil, err
		}
	}

	category := NewCategory(draft)
	if err := s.ensureCategorySlug(ctx, category.Slug, ""); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, draft CategoryDraft) (*Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if draft.ParentID != nil && *draft.ParentID != "" {
		if *draft.ParentID == id {
			return nil, ErrCategoryParentLoop
		}
		if _, err := s.categories.FindByID(ctx, *draft.ParentID); err != nil {
			return nil, err
		}
	}

	category.Apply(draft)
	if err := s.ensureCategorySlug(ctx, category.Slug, category.ID); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	children, err := s.categories.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 || len(children) > 0 {
		return ErrCategoryInUse
	}

	return s.categories.Delete(ctx, id)
}

func (s *service) CategoryTree(ctx context.Context, slug string) (*Category, []string, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	children, err := s.categories.ListChildren(ctx, category.ID)
	if err != nil {
		return nil, nil, err
	}

	ids := []string{category.ID}
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	return category, ids, nil
}

// ensureProductSlug slug被其他商品占用时报错，selfID为当前商品
func (s *service) ensureProductSlug(ctx context.Context, slug, selfID string) error {
	existing, err := s.products.FindBySlug(ctx, slug)
	if errors.Is(err, ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrSlugDuplicate
	}
	return nil
}

func (s *service) ensureCategorySlug(ctx context.Context, slug, selfID string) error {
	existing, err := s.categories.FindBySlug(ctx, slug)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrSlugDuplicate
	}
	return nil
}
