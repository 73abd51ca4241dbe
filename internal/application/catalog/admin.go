package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/review"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
	"github.com/xiebiao/gypsumstore/pkg/validation"
)

// TxManager 事务管理
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdminService 后台商品与分类管理
// 所有写操作要求管理员，商品变更后清空搜索缓存
type AdminService struct {
	catalogService catalog.Service
	products       catalog.ProductRepository
	reviews        review.Repository
	orders         order.Repository
	txManager      TxManager
	cache          SearchCache
	log            *zap.Logger
}

func NewAdminService(
	catalogService catalog.Service,
	products catalog.ProductRepository,
	reviews review.Repository,
	orders order.Repository,
	txManager TxManager,
	cache SearchCache,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		catalogService: catalogService,
		products:       products,
		reviews:        reviews,
		orders:         orders,
		txManager:      txManager,
		cache:          cache,
		log:            log,
	}
}

// ProductRequest 创建/修改商品
type ProductRequest struct {
	Name             string              `json:"name" validate:"required,max=200"`
	Slug             string              `json:"slug" validate:"omitempty,max=200"`
	Description      string              `json:"description" validate:"required"`
	ShortDescription string              `json:"shortDescription" validate:"max=500"`
	Price            decimal.Decimal     `json:"price" validate:"gt=0" swaggertype:"string"`
	CompareAtPrice   decimal.NullDecimal `json:"compareAtPrice" validate:"omitempty,gt=0" swaggertype:"string"`
	Images           []string            `json:"images" validate:"max=20,dive,required,max=500"`
	InStock          bool                `json:"inStock"`
	Featured         bool                `json:"featured"`
	SKU              string              `json:"sku" validate:"max=64"`
	CategoryID       string              `json:"categoryId" validate:"required"`
}

func (r ProductRequest) draft() catalog.ProductDraft {
	return catalog.ProductDraft{
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Price:            r.Price,
		CompareAtPrice:   r.CompareAtPrice,
		Images:           r.Images,
		InStock:          r.InStock,
		Featured:         r.Featured,
		SKU:              r.SKU,
		CategoryID:       r.CategoryID,
	}
}

// CategoryRequest 创建/修改分类
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Image       string  `json:"image" validate:"max=500"`
	ParentID    *string `json:"parentId"`
}

func (r CategoryRequest) draft() catalog.CategoryDraft {
	return catalog.CategoryDraft{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		ParentID:    r.ParentID,
	}
}

// guard 管理员校验和参数校验
func guard(ctx context.Context, req interface{}) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	if req == nil {
		return nil
	}
	return validation.Struct(req)
}

func (s *AdminService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	p, err := s.catalogService.CreateProduct(ctx, req.draft())
	if err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return s.reload(ctx, p)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	p, err := s.catalogService.UpdateProduct(ctx, id, req.draft())
	if err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return s.reload(ctx, p)
}

// DeleteProduct 删除商品及其评价
// 有订单明细引用时拒绝删除，订单中的商品名称和单价快照保持不变
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}

	err := s.txManager.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.FindByID(ctx, id); err != nil {
			return err
		}

		referenced, err := s.orders.ExistsForProduct(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return catalog.ErrProductInOrders
		}

		if err := s.reviews.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return s.products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("商品已删除", zap.String("product_id", id))
	s.invalidateSearch(ctx)
	return nil
}

func (s *AdminService) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	c, err := s.catalogService.CreateCategory(ctx, req.draft())
	if err != nil {
		return nil, err
	}
	return toCategoryView(c), nil
}

// UpdateCategory 修改分类，分类名参与搜索匹配，需清空搜索缓存
func (s *AdminService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryView, error) {
	if err := guard(ctx, req); err != nil {
		return nil, err
	}

	c, err := s.catalogService.UpdateCategory(ctx, id, req.draft())
	if err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	return toCategoryView(c), nil
}

// DeleteCategory 删除空分类
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	return s.catalogService.DeleteCategory(ctx, id)
}

// reload 重新查询以带上分类信息
func (s *AdminService) reload(ctx context.Context, p *catalog.Product) (*ProductView, error) {
	loaded, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toProductView(loaded), nil
}

func (s *AdminService) invalidateSearch(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("清空搜索缓存失败", zap.Error(err))
	}
}
