package services

import (
	"testing"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func ing(price float64) models.Ingredient {
	return models.Ingredient{Price: price}
}

func TestLinePrice(t *testing.T) {
	testCases := []struct {
		name     string
		base     float64
		sauce    float64
		cheese   float64
		toppings []float64
		size     models.PizzaSize
		quantity int
		expected float64
	}{
		{
			name:     "large with one topping times two",
			base:     150, sauce: 80, cheese: 120,
			toppings: []float64{60},
			size:     models.SizeLarge,
			quantity: 2,
			expected: 1066.00,
		},
		{
			name:     "medium keeps the subtotal unchanged",
			base:     100, sauce: 50, cheese: 50,
			size:     models.SizeMedium,
			quantity: 1,
			expected: 200.00,
		},
		{
			name:     "small discounts the subtotal",
			base:     100, sauce: 50, cheese: 50,
			size:     models.SizeSmall,
			quantity: 1,
			expected: 160.00,
		},
		{
			name:     "extra large with several toppings",
			base:     100, sauce: 40, cheese: 60,
			toppings: []float64{30, 30, 40},
			size:     models.SizeExtraLarge,
			quantity: 3,
			expected: 1440.00,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var toppings []models.Ingredient
			for _, p := range tt.toppings {
				toppings = append(toppings, ing(p))
			}
			got := LinePrice(ing(tt.base), ing(tt.sauce), ing(tt.cheese), toppings, tt.size, tt.quantity)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestSizeMultipliersCoverAllSizes(t *testing.T) {
	for _, size := range []models.PizzaSize{
		models.SizeSmall, models.SizeMedium, models.SizeLarge, models.SizeExtraLarge,
	} {
		m, ok := SizeMultipliers[size]
		assert.True(t, ok, "missing multiplier for %s", size)
		assert.Greater(t, m, 0.0)
	}
}

func TestToPaisa(t *testing.T) {
	assert.Equal(t, int64(106600), ToPaisa(1066.00))
	assert.Equal(t, int64(10), ToPaisa(0.1))
	assert.Equal(t, int64(100), ToPaisa(0.999999))
	assert.Equal(t, int64(0), ToPaisa(0))
}
