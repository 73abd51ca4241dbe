package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_Quote(t *testing.T) {
	calc := DefaultCalculator()

	cases := []struct {
		name      string
		lines     []Line
		itemsWant string
		feeWant   string
		totalWant string
	}{
		{"空购物车收取运费", nil, "0", "3", "3"},
		{"35元收取运费", []Line{{d("20"), 1}, {d("15"), 1}}, "35", "3", "38"},
		{"刚好40元免运费", []Line{{d("20"), 1}, {d("15"), 1}, {d("5"), 1}}, "40", "0", "40"},
		{"39.99元收取运费", []Line{{d("13.33"), 3}}, "39.99", "3", "42.99"},
		{"多件商品", []Line{{d("12.50"), 4}}, "50", "0", "50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := calc.Quote(tc.lines)
			assert.True(t, d(tc.itemsWant).Equal(q.ItemsTotal), "itemsTotal=%s", q.ItemsTotal)
			assert.True(t, d(tc.feeWant).Equal(q.DeliveryFee), "deliveryFee=%s", q.DeliveryFee)
			assert.True(t, d(tc.totalWant).Equal(q.GrandTotal), "grandTotal=%s", q.GrandTotal)
		})
	}

	t.Run("幂等", func(t *testing.T) {
		lines := []Line{{d("20"), 1}, {d("15"), 1}}
		assert.Equal(t, calc.Quote(lines), calc.Quote(lines))
	})

	t.Run("自定义阈值", func(t *testing.T) {
		q := NewCalculator(d("100"), d("5.90")).Quote([]Line{{d("60"), 1}})
		assert.True(t, d("5.90").Equal(q.DeliveryFee))
		assert.True(t, d("65.90").Equal(q.GrandTotal))
	})
}
