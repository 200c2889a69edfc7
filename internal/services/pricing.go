package services

import (
	"math"

	"github.com/ovenfresh/pizza-order-api/internal/models"
)

// SizeMultipliers scales the ingredient subtotal by the chosen pizza size.
// The table is fixed and shared with every client surface.
var SizeMultipliers = map[models.PizzaSize]float64{
	models.SizeSmall:      0.8,
	models.SizeMedium:     1.0,
	models.SizeLarge:      1.3,
	models.SizeExtraLarge: 1.6,
}

// LinePrice computes the price of one order line:
// (base + sauce + cheese + sum of toppings) x size multiplier x quantity.
// No discounts, taxes or delivery fees are modeled.
func LinePrice(base, sauce, cheese models.Ingredient, toppings []models.Ingredient, size models.PizzaSize, quantity int) float64 {
	subtotal := base.Price + sauce.Price + cheese.Price
	for _, t := range toppings {
		subtotal += t.Price
	}
	return subtotal * SizeMultipliers[size] * float64(quantity)
}

// ToPaisa converts a rupee amount to integer minor currency units for
// gateway submission.
func ToPaisa(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
