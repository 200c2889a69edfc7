package database

import (
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemTopping{},
		&models.OrderStatusEvent{},
	)
}

// SeedIngredients loads an initial catalog when the ingredient table is empty.
func SeedIngredients(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Ingredient catalog already seeded")
		return nil
	}

	log.Info("Seeding ingredient catalog")
	ingredients := []models.Ingredient{
		{Category: models.CategoryBase, Name: "Thin Crust", Description: "Classic hand-stretched thin base", Price: 150, Stock: 50, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategoryBase, Name: "Cheese Burst", Description: "Double-layer base filled with cheese", Price: 220, Stock: 50, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategoryBase, Name: "Whole Wheat", Description: "Fiber-rich wheat base", Price: 180, Stock: 40, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategoryBase, Name: "Gluten Free", Description: "Rice flour base", Price: 250, Stock: 30, Threshold: 8, IsAvailable: true, IsActive: true},
		{Category: models.CategoryBase, Name: "Sourdough", Description: "Slow-fermented sourdough base", Price: 240, Stock: 30, Threshold: 8, IsAvailable: true, IsActive: true},
		{Category: models.CategorySauce, Name: "Classic Marinara", Description: "Slow-cooked tomato sauce", Price: 80, Stock: 60, Threshold: 15, IsAvailable: true, IsActive: true},
		{Category: models.CategorySauce, Name: "Pesto", Description: "Basil and pine nut pesto", Price: 120, Stock: 40, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategorySauce, Name: "BBQ", Description: "Smoky barbecue sauce", Price: 100, Stock: 50, Threshold: 12, IsAvailable: true, IsActive: true},
		{Category: models.CategorySauce, Name: "White Garlic", Description: "Creamy garlic sauce", Price: 110, Stock: 45, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategoryCheese, Name: "Mozzarella", Description: "Fresh mozzarella", Price: 120, Stock: 70, Threshold: 15, IsAvailable: true, IsActive: true},
		{Category: models.CategoryCheese, Name: "Cheddar", Description: "Aged cheddar", Price: 140, Stock: 50, Threshold: 12, IsAvailable: true, IsActive: true},
		{Category: models.CategoryCheese, Name: "Parmesan", Description: "Grated parmesan", Price: 160, Stock: 40, Threshold: 10, IsAvailable: true, IsActive: true},
		{Category: models.CategoryVeggie, Name: "Bell Peppers", Description: "Mixed bell peppers", Price: 40, Stock: 80, Threshold: 20, IsAvailable: true, IsActive: true},
		{Category: models.CategoryVeggie, Name: "Mushrooms", Description: "Button mushrooms", Price: 60, Stock: 70, Threshold: 18, IsAvailable: true, IsActive: true},
		{Category: models.CategoryVeggie, Name: "Olives", Description: "Black olives", Price: 50, Stock: 60, Threshold: 15, IsAvailable: true, IsActive: true},
		{Category: models.CategoryVeggie, Name: "Onions", Description: "Red onions", Price: 30, Stock: 90, Threshold: 25, IsAvailable: true, IsActive: true},
		{Category: models.CategoryVeggie, Name: "Jalapenos", Description: "Pickled jalapenos", Price: 55, Stock: 50, Threshold: 12, IsAvailable: true, IsActive: true},
		{Category: models.CategoryMeat, Name: "Pepperoni", Description: "Spiced pepperoni slices", Price: 110, Stock: 60, Threshold: 15, IsAvailable: true, IsActive: true},
		{Category: models.CategoryMeat, Name: "Grilled Chicken", Description: "Marinated grilled chicken", Price: 130, Stock: 55, Threshold: 14, IsAvailable: true, IsActive: true},
		{Category: models.CategoryMeat, Name: "Italian Sausage", Description: "Fennel sausage crumble", Price: 140, Stock: 45, Threshold: 12, IsAvailable: true, IsActive: true},
	}
	if err := db.Create(&ingredients).Error; err != nil {
		return err
	}
	log.Infof("Seeded %d catalog ingredients", len(ingredients))
	return nil
}
