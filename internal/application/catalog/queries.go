package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
)

// SearchLimit 搜索结果上限
const SearchLimit = 10

// SearchCache 搜索结果缓存，未启用Redis时为nil
type SearchCache interface {
	Get(ctx context.Context, keyword string) ([]*catalog.Product, bool, error)
	Set(ctx context.Context, keyword string, products []*catalog.Product) error
	Invalidate(ctx context.Context) error
}

// QueryService 商品目录的公开查询
type QueryService struct {
	catalogService catalog.Service
	products       catalog.ProductRepository
	categories     catalog.CategoryRepository
	cache          SearchCache
	log            *zap.Logger
}

func NewQueryService(
	catalogService catalog.Service,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	cache SearchCache,
	log *zap.Logger,
) *QueryService {
	return &QueryService{
		catalogService: catalogService,
		products:       products,
		categories:     categories,
		cache:          cache,
		log:            log,
	}
}

// ListCategories 分类树，顶级分类在外层
func (s *QueryService) ListCategories(ctx context.Context) ([]*CategoryView, error) {
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*CategoryView, len(all))
	for _, c := range all {
		byID[c.ID] = toCategoryView(c)
	}

	roots := make([]*CategoryView, 0, len(all))
	for _, c := range all {
		v := byID[c.ID]
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, v)
				continue
			}
		}
		roots = append(roots, v)
	}
	return roots, nil
}

// GetCategory 按slug查询分类及其直接子分类
func (s *QueryService) GetCategory(ctx context.Context, slug string) (*CategoryView, error) {
	c, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	children, err := s.categories.ListChildren(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	v := toCategoryView(c)
	for _, child := range children {
		v.Children = append(v.Children, toCategoryView(child))
	}
	return v, nil
}

// ListProductsRequest 商品列表查询
type ListProductsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Category string `form:"category"` // 分类slug，包含直接子分类
	Featured *bool  `form:"featured"`
	InStock  *bool  `form:"inStock"`
	Sort     string `form:"sort"` // price_asc | price_desc | name | newest
}

// ListProducts 分页查询商品
func (s *QueryService) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductListResponse, error) {
	params := catalog.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Featured: req.Featured,
		InStock:  req.InStock,
		SortBy:   req.Sort,
	}
	params.Normalize()

	if req.Category != "" {
		_, ids, err := s.catalogService.CategoryTree(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		params.CategoryIDs = ids
	}

	products, total, err := s.products.List(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]*ProductView, len(products))
	for i, p := range products {
		list[i] = toProductView(p)
	}
	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize > 0 {
		totalPages++
	}
	return &ProductListResponse{
		List:       list,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProduct 按slug查询商品
func (s *QueryService) GetProduct(ctx context.Context, slug string) (*ProductView, error) {
	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toProductView(p), nil
}

// Search 按名称、描述、分类名模糊搜索，最多SearchLimit条
// 关键词为空返回空列表；缓存读写失败时回退到数据库
func (s *QueryService) Search(ctx context.Context, keyword string) ([]SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []SearchResult{}, nil
	}

	products, err := s.search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(products))
	for i, p := range products {
		results[i] = toSearchResult(p)
	}
	return results, nil
}

func (s *QueryService) search(ctx context.Context, keyword string) ([]*catalog.Product, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, keyword)
		if err != nil {
			s.log.Warn("读取搜索缓存失败", zap.String("keyword", keyword), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	products, err := s.products.Search(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, keyword, products); err != nil {
			s.log.Warn("写入搜索缓存失败", zap.String("keyword", keyword), zap.Error(err))
		}
	}
	return products, nil
}
