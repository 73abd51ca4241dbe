package order

import "github.com/shopspring/decimal"

var (
	// DefaultFreeDeliveryThreshold 商品合计达到该金额免运费
	DefaultFreeDeliveryThreshold = decimal.NewFromInt(40)
	// DefaultStandardDeliveryFee 标准运费
	DefaultStandardDeliveryFee = decimal.NewFromInt(3)
)

// Line 计价行
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Quote 计价结果
type Quote struct {
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// Calculator 运费计算器，无副作用
type Calculator struct {
	FreeDeliveryThreshold decimal.Decimal
	StandardDeliveryFee   decimal.Decimal
}

// NewCalculator 创建计算器
func NewCalculator(threshold, fee decimal.Decimal) Calculator {
	return Calculator{FreeDeliveryThreshold: threshold, StandardDeliveryFee: fee}
}

// DefaultCalculator 默认规则：满40免运费，否则运费3
func DefaultCalculator() Calculator {
	return NewCalculator(DefaultFreeDeliveryThreshold, DefaultStandardDeliveryFee)
}

// Quote 计算商品合计、运费和应付总额
func (c Calculator) Quote(lines []Line) Quote {
	itemsTotal := decimal.Zero
	for _, l := range lines {
		itemsTotal = itemsTotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	fee := c.StandardDeliveryFee
	if itemsTotal.GreaterThanOrEqual(c.FreeDeliveryThreshold) {
		fee = decimal.Zero
	}

	return Quote{
		ItemsTotal:  itemsTotal,
		DeliveryFee: fee,
		GrandTotal:  itemsTotal.Add(fee),
	}
}

// LinesOf 订单明细转计价行
func LinesOf(items []OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Price: it.Price, Quantity: it.Quantity})
	}
	return lines
}
