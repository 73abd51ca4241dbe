package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/gypsumstore/internal/domain/order"
	"github.com/xiebiao/gypsumstore/internal/domain/user"
)

// OrderItemView 订单明细
type OrderItemView struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Subtotal    decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

// PurchaserView 下单的注册用户
type PurchaserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderView 订单详情
type OrderView struct {
	ID                 string          `json:"id"`
	CustomerName       string          `json:"customerName"`
	CustomerEmail      string          `json:"customerEmail"`
	CustomerPhone      string          `json:"customerPhone"`
	DeliveryMethod     string          `json:"deliveryMethod"`
	Courier            string          `json:"courier"`
	DeliveryOffice     string          `json:"deliveryOffice,omitempty"`
	DeliveryAddress    string          `json:"deliveryAddress,omitempty"`
	DeliveryCity       string          `json:"deliveryCity,omitempty"`
	DeliveryPostalCode string          `json:"deliveryPostalCode,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	ItemsTotal         decimal.Decimal `json:"itemsTotal" swaggertype:"string"`
	DeliveryFee        decimal.Decimal `json:"deliveryFee" swaggertype:"string"`
	TotalAmount        decimal.Decimal `json:"totalAmount" swaggertype:"string"`
	PaymentMethod      string          `json:"paymentMethod"`
	Status             string          `json:"status"`
	TrackingNumber     string          `json:"trackingNumber,omitempty"`
	Version            int             `json:"version"`
	User               *PurchaserView  `json:"user,omitempty"`
	Items              []OrderItemView `json:"items"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func toOrderView(o *order.Order, purchaser *user.User) *OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal(),
		}
	}

	v := &OrderView{
		ID:                 o.ID,
		CustomerName:       o.Customer.Name,
		CustomerEmail:      o.Customer.Email,
		CustomerPhone:      o.Customer.Phone,
		DeliveryMethod:     string(o.Delivery.Method),
		Courier:            string(o.Delivery.Courier),
		DeliveryOffice:     o.Delivery.Office,
		DeliveryAddress:    o.Delivery.Address,
		DeliveryCity:       o.Delivery.City,
		DeliveryPostalCode: o.Delivery.PostalCode,
		Notes:              o.Notes,
		ItemsTotal:         o.ItemsTotal(),
		DeliveryFee:        o.DeliveryFee,
		TotalAmount:        o.TotalAmount,
		PaymentMethod:      o.PaymentMethod,
		Status:             string(o.Status),
		TrackingNumber:     o.TrackingNumber,
		Version:            o.Version,
		Items:              items,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if purchaser != nil {
		v.User = &PurchaserView{ID: purchaser.ID, Name: purchaser.Name, Email: purchaser.Email}
	}
	return v
}

// QueryService 订单查询与删除
type QueryService struct {
	orderRepo order.Repository
	userRepo  user.Repository
}

func NewQueryService(orderRepo order.Repository, userRepo user.Repository) *QueryService {
	return &QueryService{orderRepo: orderRepo, userRepo: userRepo}
}

// GetOrder 下单完成页查询，公开
func (s *QueryService) GetOrder(ctx context.Context, id string) (*OrderView, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderView(o, nil), nil
}

// ListOrders 全部订单，附带下单用户，仅管理员
func (s *QueryService) ListOrders(ctx context.Context) ([]*OrderView, error) {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	purchasers := make(map[string]*user.User)
	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		var purchaser *user.User
		if o.UserID != "" {
			purchaser, err = s.purchaser(ctx, purchasers, o.UserID)
			if err != nil {
				return nil, err
			}
		}
		views[i] = toOrderView(o, purchaser)
	}
	return views, nil
}

// purchaser 按用户ID缓存查询结果，用户已删除时返回nil
func (s *QueryService) purchaser(ctx context.Context, cache map[string]*user.User, id string) (*user.User, error) {
	if u, ok := cache[id]; ok {
		return u, nil
	}
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}
	cache[id] = u
	return u, nil
}

// ListMyOrders 当前登录用户的订单
func (s *QueryService) ListMyOrders(ctx context.Context) ([]*OrderView, error) {
	principal := user.PrincipalFrom(ctx)
	if err := user.PolicyAuthenticated.Check(principal); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o, nil)
	}
	return views, nil
}

// DeleteOrder 删除订单及明细，仅管理员，无其他业务限制
func (s *QueryService) DeleteOrder(ctx context.Context, id string) error {
	if err := user.PolicyAdmin.Check(user.PrincipalFrom(ctx)); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}
