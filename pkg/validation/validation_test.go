package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

type line struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

type checkout struct {
	Email   string `json:"email" validate:"required,email"`
	Method  string `json:"deliveryMethod" validate:"required,oneof=office address"`
	Office  string `json:"deliveryOffice" validate:"required_if=Method office"`
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,min=10"`
	Items   []line `json:"items" validate:"min=1,dive"`
}

func valid() checkout {
	return checkout{
		Email:  "ivan@example.com",
		Method: "office",
		Office: "Sofia-1",
		Items:  []line{{Quantity: 1}},
	}
}

func TestStruct(t *testing.T) {
	t.Run("合法请求", func(t *testing.T) {
		assert.NoError(t, Struct(valid()))
	})

	cases := []struct {
		name   string
		mutate func(c *checkout)
		field  string
	}{
		{"邮箱格式错误", func(c *checkout) { c.Email = "not-an-email" }, "email"},
		{"配送方式非法", func(c *checkout) { c.Method = "drone" }, "deliveryMethod"},
		{"网点配送缺少网点", func(c *checkout) { c.Office = "" }, "deliveryOffice"},
		{"评分越界", func(c *checkout) { c.Rating = 6 }, "rating"},
		{"评论过短", func(c *checkout) { c.Comment = "short" }, "comment"},
		{"商品为空", func(c *checkout) { c.Items = nil }, "items"},
		{"数量为0", func(c *checkout) { c.Items = []line{{Quantity: 0}} }, "items[0].quantity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)

			err := Struct(req)
			require.Error(t, err)

			appErr := apperrors.GetAppError(err)
			assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
			assert.Contains(t, appErr.Message, tc.field)
			t.Logf("✓ %s", appErr.Message)
		})
	}
}
