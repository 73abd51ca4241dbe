package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/gypsumstore/internal/domain/order"
	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// orderRepository 订单仓储实现
// Order和OrderItem是聚合关系，创建时一起保存，查询时Preload明细
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单（GORM通过foreignKey自动保存Items）
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填ID
	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	err := conn(ctx, r.db).Preload("Items").Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 更新状态和快递单号，版本号自增
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order, expectedVersion *int) error {
	db := conn(ctx, r.db)

	query := db.Model(&OrderModel{}).Where("id = ?", o.ID)
	if expectedVersion != nil {
		query = query.Where("version = ?", *expectedVersion)
	}

	result := query.Updates(map[string]interface{}{
		"status":          string(o.Status),
		"tracking_number": o.TrackingNumber,
		"version":         gorm.Expr("version + 1"),
		"updated_at":      o.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}

	if result.RowsAffected == 0 {
		// 区分订单不存在和版本冲突
		var count int64
		if err := db.Model(&OrderModel{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询订单失败")
		}
		if count == 0 {
			return order.ErrOrderNotFound
		}
		return order.ErrStaleOrder
	}

	if expectedVersion != nil {
		o.Version = *expectedVersion + 1
	} else {
		o.Version++
	}
	return nil
}

// Delete 删除订单及明细
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		result := tx.Where("id = ?", id).Delete(&OrderModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

// List 全部订单
func (r *orderRepository) List(ctx context.Context) ([]*order.Order, error) {
	return r.find(conn(ctx, r.db))
}

// ListByUserID 用户的订单
func (r *orderRepository) ListByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	return r.find(conn(ctx, r.db).Where("user_id = ?", userID))
}

func (r *orderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var models []OrderModel
	err := query.Preload("Items").Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, nil
}

// Count 订单数量
func (r *orderRepository) Count(ctx context.Context, status order.Status) (int64, error) {
	query := conn(ctx, r.db).Model(&OrderModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计订单失败")
	}
	return total, nil
}

// ExistsForProduct 是否有订单明细引用该商品
func (r *orderRepository) ExistsForProduct(ctx context.Context, productID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&OrderItemModel{}).Where("product_id = ?", productID).Limit(1).Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询订单明细失败")
	}
	return count > 0, nil
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &OrderModel{
		ID:              o.ID,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		DeliveryMethod:  string(o.Delivery.Method),
		Courier:         string(o.Delivery.Courier),
		DeliveryOffice:  o.Delivery.Office,
		DeliveryAddress: o.Delivery.Address,
		DeliveryCity:    o.Delivery.City,
		PostalCode:      o.Delivery.PostalCode,
		Notes:           o.Notes,
		TotalAmount:     o.TotalAmount,
		DeliveryFee:     o.DeliveryFee,
		PaymentMethod:   o.PaymentMethod,
		Status:          string(o.Status),
		TrackingNumber:  o.TrackingNumber,
		UserID:          strPtr(o.UserID),
		Version:         o.Version,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &order.Order{
		ID: m.ID,
		Customer: order.Customer{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		Delivery: order.Delivery{
			Method:     order.DeliveryMethod(m.DeliveryMethod),
			Courier:    order.Courier(m.Courier),
			Office:     m.DeliveryOffice,
			Address:    m.DeliveryAddress,
			City:       m.DeliveryCity,
			PostalCode: m.PostalCode,
		},
		Notes:          m.Notes,
		TotalAmount:    m.TotalAmount,
		DeliveryFee:    m.DeliveryFee,
		PaymentMethod:  m.PaymentMethod,
		Status:         order.Status(m.Status),
		TrackingNumber: m.TrackingNumber,
		UserID:         strVal(m.UserID),
		Version:        m.Version,
		Items:          items,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
