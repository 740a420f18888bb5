package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_SalePrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount int
		expected string
	}{
		{"twenty percent off", "100", 20, "80"},
		{"no discount", "100", 0, "100"},
		{"full discount", "100", 100, "0"},
		{"fractional price", "19.99", 50, "9.995"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Product{
				Price:           decimal.RequireFromString(tc.price),
				DiscountPercent: tc.discount,
			}
			assert.True(t, p.SalePrice().Equal(decimal.RequireFromString(tc.expected)),
				"got %s", p.SalePrice())
		})
	}
}

func TestProduct_AverageRating(t *testing.T) {
	p := &Product{Reviews: []*Review{{Rating: 5}, {Rating: 3}, {Rating: 4}}}
	assert.InDelta(t, 4.0, p.AverageRating(), 0.0001)

	empty := &Product{}
	assert.Zero(t, empty.AverageRating())
}

func TestProductVariant_FinalPrice(t *testing.T) {
	p := &Product{
		Price:           decimal.RequireFromString("100"),
		DiscountPercent: 20,
	}
	v := &ProductVariant{ExtraPrice: decimal.RequireFromString("5.50")}

	assert.True(t, v.FinalPrice(p).Equal(decimal.RequireFromString("85.50")),
		"got %s", v.FinalPrice(p))
}

func TestProduct_IsInStock(t *testing.T) {
	assert.True(t, (&Product{Stock: 1}).IsInStock())
	assert.False(t, (&Product{Stock: 0}).IsInStock())
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}
