package catalog

import (
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

var (
	ErrProductNotFound = apperrors.ErrProductNotFound

	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	ErrSlugDuplicate = apperrors.ErrSlugDuplicate

	// ErrProductInOrders 商品已被订单引用，不能删除
	ErrProductInOrders = apperrors.New(apperrors.ErrCodeReferenced, "该商品已存在于订单中，无法删除")

	// ErrCategoryInUse 分类下仍有商品或子分类
	ErrCategoryInUse = apperrors.New(apperrors.ErrCodeReferenced, "该分类下仍有商品或子分类，无法删除")

	ErrCategoryParentLoop = apperrors.New(apperrors.ErrCodeInvalidParams, "分类不能以自身为父分类")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
)
