package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *Order {
	items := []OrderItem{
		{ProductID: "p-1", Quantity: 1, Price: d("20")},
		{ProductID: "p-2", Quantity: 1, Price: d("15")},
	}
	quote := DefaultCalculator().Quote(LinesOf(items))
	return NewOrder(
		Customer{Name: "Ivan", Email: "ivan@example.com", Phone: "+359888000000"},
		Delivery{Method: DeliveryToOffice, Courier: CourierSpeedy, Office: "Sofia Center", Address: "ignored"},
		"", items, quote, "",
	)
}

func strPtr(s string) *string { return &s }

func TestNewOrder(t *testing.T) {
	o := newTestOrder()

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentCashOnDelivery, o.PaymentMethod)
	assert.Empty(t, o.Delivery.Address, "网点自提应清除地址字段")
	assert.True(t, o.TotalAmount.Equal(o.ItemsTotal().Add(o.DeliveryFee)))
	assert.True(t, d("38").Equal(o.TotalAmount))
}

func TestDeliveryNormalize(t *testing.T) {
	del := Delivery{Method: DeliveryToAddress, Office: "x", Address: "ul. Vitosha 1", City: "Sofia", PostalCode: "1000"}.Normalize()
	assert.Empty(t, del.Office)
	assert.Equal(t, "Sofia", del.City)
}

func TestChangeStatus(t *testing.T) {
	t.Run("发货必须有快递单号", func(t *testing.T) {
		o := newTestOrder()
		err := o.ChangeStatus(StatusShipped, nil)
		assert.ErrorIs(t, err, ErrTrackingNumberRequired)
		assert.Equal(t, StatusPending, o.Status, "失败时不修改状态")

		err = o.ChangeStatus(StatusShipped, strPtr("   "))
		assert.ErrorIs(t, err, ErrTrackingNumberRequired)
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("发货成功", func(t *testing.T) {
		o := newTestOrder()
		require.NoError(t, o.ChangeStatus(StatusShipped, strPtr("SP123")))
		assert.Equal(t, StatusShipped, o.Status)
		assert.Equal(t, "SP123", o.TrackingNumber)
	})

	t.Run("未提供单号时沿用原值", func(t *testing.T) {
		o := newTestOrder()
		require.NoError(t, o.ChangeStatus(StatusShipped, strPtr("SP123")))
		require.NoError(t, o.ChangeStatus(StatusDelivered, nil))
		assert.Equal(t, "SP123", o.TrackingNumber)

		// 已有单号时可再次发货
		require.NoError(t, o.ChangeStatus(StatusShipped, nil))
	})

	t.Run("未知状态", func(t *testing.T) {
		o := newTestOrder()
		assert.ErrorIs(t, o.ChangeStatus(Status("LOST"), nil), ErrInvalidStatus)
	})

	t.Run("流转表允许任意状态互转", func(t *testing.T) {
		for _, from := range AllStatuses {
			for _, to := range AllStatuses {
				o := &Order{Status: from}
				assert.True(t, o.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})
}
