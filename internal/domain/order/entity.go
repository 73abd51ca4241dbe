package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "PENDING"    // 待处理(初始状态)
	StatusProcessing Status = "PROCESSING" // 处理中
	StatusShipped    Status = "SHIPPED"    // 已发货(必须有快递单号)
	StatusDelivered  Status = "DELIVERED"  // 已送达
	StatusCancelled  Status = "CANCELLED"  // 已取消
)

// AllStatuses 全部状态，按流程顺序
var AllStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Label 面向顾客的状态名称（邮件使用）
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Received"
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// transitions 状态流转表
// 当前允许任意状态互转（包括自身），新增约束只需修改此表
var transitions = func() map[Status][]Status {
	m := make(map[Status][]Status, len(AllStatuses))
	for _, from := range AllStatuses {
		m[from] = AllStatuses
	}
	return m
}()

// DeliveryMethod 配送方式
type DeliveryMethod string

const (
	DeliveryToOffice  DeliveryMethod = "office"  // 快递网点自提
	DeliveryToAddress DeliveryMethod = "address" // 送货上门
)

// Courier 快递公司
type Courier string

const (
	CourierSpeedy Courier = "speedy"
	CourierEcont  Courier = "econt"
)

// PaymentCashOnDelivery 货到付款，目前唯一支付方式
const PaymentCashOnDelivery = "cod"

// Customer 下单人信息
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Delivery 配送信息
// Office仅在网点自提时有值，Address/City/PostalCode仅在送货上门时有值
type Delivery struct {
	Method     DeliveryMethod
	Courier    Courier
	Office     string
	Address    string
	City       string
	PostalCode string
}

// Normalize 清除与配送方式无关的字段
func (d Delivery) Normalize() Delivery {
	switch d.Method {
	case DeliveryToOffice:
		d.Address, d.City, d.PostalCode = "", "", ""
	case DeliveryToAddress:
		d.Office = ""
	}
	return d
}

// Order 订单聚合根
type Order struct {
	ID             string
	Customer       Customer
	Delivery       Delivery
	Notes          string
	TotalAmount    decimal.Decimal // 商品合计 + 运费，创建时计算，之后不再重算
	DeliveryFee    decimal.Decimal
	PaymentMethod  string
	Status         Status
	TrackingNumber string
	UserID         string // 登录用户下单时记录，游客为空
	Version        int    // 乐观锁版本号
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem 订单明细
// Price为下单时的单价快照，商品后续改价不影响历史订单
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal 明细小计
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建待处理订单，金额取自quote
func NewOrder(customer Customer, delivery Delivery, notes string, items []OrderItem, quote Quote, userID string) *Order {
	now := time.Now()
	return &Order{
		Customer:      customer,
		Delivery:      delivery.Normalize(),
		Notes:         strings.TrimSpace(notes),
		TotalAmount:   quote.GrandTotal,
		DeliveryFee:   quote.DeliveryFee,
		PaymentMethod: PaymentCashOnDelivery,
		Status:        StatusPending,
		UserID:        userID,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ItemsTotal 明细合计（不含运费）
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CanTransitionTo 按流转表判断是否允许切换到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ChangeStatus 切换状态
// trackingNumber为nil时沿用原单号；发货状态必须有非空单号，校验失败不修改订单
func (o *Order) ChangeStatus(target Status, trackingNumber *string) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}

	tracking := o.TrackingNumber
	if trackingNumber != nil {
		tracking = strings.TrimSpace(*trackingNumber)
	}
	if target == StatusShipped && tracking == "" {
		return ErrTrackingNumberRequired
	}

	o.Status = target
	o.TrackingNumber = tracking
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 是否为该用户的订单
func (o *Order) IsOwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}
