package models

import (
	"time"
)

// IngredientCategory identifies one of the five catalogs composed into a pizza.
type IngredientCategory string

const (
	CategoryBase   IngredientCategory = "base"
	CategorySauce  IngredientCategory = "sauce"
	CategoryCheese IngredientCategory = "cheese"
	CategoryVeggie IngredientCategory = "veggie"
	CategoryMeat   IngredientCategory = "meat"
)

// AllCategories lists every catalog in the order the inventory views present them.
var AllCategories = []IngredientCategory{
	CategoryBase,
	CategorySauce,
	CategoryCheese,
	CategoryVeggie,
	CategoryMeat,
}

// Valid reports whether c is one of the known catalog categories.
func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryBase, CategorySauce, CategoryCheese, CategoryVeggie, CategoryMeat:
		return true
	}
	return false
}

// Ingredient is a single catalog entry. Names are unique within a category.
// IsAvailable must track stock > 0; every stock mutation keeps the two in sync
// and the inventory monitor re-asserts it as a periodic patch.
type Ingredient struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Category    IngredientCategory `gorm:"size:16;not null;uniqueIndex:idx_ingredient_category_name" json:"category"`
	Name        string             `gorm:"size:100;not null;uniqueIndex:idx_ingredient_category_name" json:"name"`
	Description string             `gorm:"size:500" json:"description"`
	Price       float64            `gorm:"not null" json:"price"`
	ImageURL    string             `gorm:"size:255" json:"image_url"`
	Stock       int                `gorm:"not null;default:0" json:"stock"`
	Threshold   int                `gorm:"not null;default:10" json:"threshold"`
	IsAvailable bool               `gorm:"not null;default:true" json:"is_available"`
	IsActive    bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// LowOnStock reports whether the item sits at or under its restock threshold.
func (i *Ingredient) LowOnStock() bool {
	return i.Stock <= i.Threshold
}
