package pricing

import (
	"math"
	"testing"

	"scoop_storefront/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateExample(t *testing.T) {
	items := []models.CartItem{{Price: 5.00, Quantity: 2}}

	s := Calculate(items, 0.10)

	assert.Equal(t, 10.00, s.Subtotal)
	assert.Equal(t, 1.00, s.DiscountAmount)
	assert.Equal(t, 9.00, s.TaxableSubtotal)
	assert.Equal(t, 0.90, s.Tax)
	assert.Equal(t, 9.90, s.Total)
	assert.Equal(t, 2, s.ItemCount)
}

func TestCalculateEmptyCart(t *testing.T) {
	s := Calculate(nil, 0.10)

	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Tax)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.ItemCount)
}

func TestCalculateMatchesFormula(t *testing.T) {
	carts := [][]models.CartItem{
		{{Price: 4.99, Quantity: 3}},
		{{Price: 12.50, Quantity: 1}, {Price: 3.25, Quantity: 4}},
		{{Price: 0.99, Quantity: 7}, {Price: 7.00, Quantity: 2}},
		{{Price: 0, Quantity: 5}},
	}
	discounts := []float64{0, 0.05, 0.10, 0.25, 0.5}

	for _, items := range carts {
		for _, d := range discounts {
			s := Calculate(items, d)
			want := s.Subtotal * (1 - d) * 1.1
			// arrondi au centime sur la remise et la taxe
			assert.InDelta(t, want, s.Total, 0.011, "subtotal=%v d=%v", s.Subtotal, d)
			assert.InDelta(t, s.TaxableSubtotal+s.Tax, s.Total, 1e-9)
		}
	}
}

func TestCalculateNoDiscount(t *testing.T) {
	items := []models.CartItem{{Price: 2.50, Quantity: 4}, {Price: 1.00, Quantity: 1}}

	s := Calculate(items, 0)

	assert.Equal(t, 11.00, s.Subtotal)
	assert.Zero(t, s.DiscountAmount)
	assert.True(t, math.Abs(s.Total-11.00*1.1) < 0.005)
}

func TestLookupDiscount(t *testing.T) {
	tests := []struct {
		input string
		code  string
		pct   float64
		ok    bool
	}{
		{"cone10", "CONE10", 0.10, true},
		{"CONE10", "CONE10", 0.10, true},
		{" ConE10 ", "CONE10", 0.10, true},
		{"CONE20", "", 0, false},
		{"", "", 0, false},
		{"CONE 10", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, pct, ok := LookupDiscount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.pct, pct)
		})
	}
}
