package services

import (
	"errors"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	"gorm.io/gorm"
)

// IngredientUpdate carries the admin absolute-set fields. Nil pointers leave
// the column untouched.
type IngredientUpdate struct {
	Stock       *int
	Threshold   *int
	Price       *float64
	IsAvailable *bool
}

// CategoryInventory groups one catalog's items for the admin overview.
type CategoryInventory struct {
	Category models.IngredientCategory `json:"category"`
	Items    []models.Ingredient       `json:"items"`
}

// InventoryStats aggregates the overview across all five catalogs.
type InventoryStats struct {
	TotalItems      int `json:"total_items"`
	LowStockItems   int `json:"low_stock_items"`
	OutOfStockItems int `json:"out_of_stock_items"`
	AvailableItems  int `json:"available_items"`
}

// InventoryOverview is the composed admin view of the whole catalog.
type InventoryOverview struct {
	Categories []CategoryInventory `json:"inventory"`
	Stats      InventoryStats      `json:"statistics"`
}

// CatalogService manages the five ingredient catalogs.
type CatalogService interface {
	// ListByCategory returns active items of one catalog, name-sorted.
	// includeInactive widens the result to soft-deactivated items.
	ListByCategory(category models.IngredientCategory, includeInactive bool) ([]models.Ingredient, error)
	// GetIngredient returns one catalog item by category and id.
	GetIngredient(category models.IngredientCategory, id uint) (models.Ingredient, error)
	// CreateIngredient adds a new catalog item.
	CreateIngredient(ing *models.Ingredient) error
	// UpdateIngredient absolute-sets stock/threshold/price/availability.
	// A stock write re-derives IsAvailable from the new count.
	UpdateIngredient(category models.IngredientCategory, id uint, update IngredientUpdate) (models.Ingredient, error)
	// DeactivateIngredient soft-deletes an item; referenced orders keep their
	// snapshots so nothing is ever hard-deleted.
	DeactivateIngredient(category models.IngredientCategory, id uint) error
	// InventoryOverview composes all catalogs plus aggregate statistics.
	InventoryOverview() (*InventoryOverview, error)
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListByCategory(category models.IngredientCategory, includeInactive bool) ([]models.Ingredient, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	q := s.db.Where("category = ?", category)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Ingredient
	if err := q.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *catalogService) GetIngredient(category models.IngredientCategory, id uint) (models.Ingredient, error) {
	if !category.Valid() {
		return models.Ingredient{}, ErrInvalidCategory
	}
	var ing models.Ingredient
	err := s.db.Where("category = ? AND id = ?", category, id).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Ingredient{}, ErrIngredientNotFound
	}
	if err != nil {
		return models.Ingredient{}, err
	}
	return ing, nil
}

func (s *catalogService) CreateIngredient(ing *models.Ingredient) error {
	if !ing.Category.Valid() {
		return ErrInvalidCategory
	}
	ing.IsAvailable = ing.Stock > 0
	return s.db.Create(ing).Error
}

func (s *catalogService) UpdateIngredient(category models.IngredientCategory, id uint, update IngredientUpdate) (models.Ingredient, error) {
	ing, err := s.GetIngredient(category, id)
	if err != nil {
		return models.Ingredient{}, err
	}

	fields := map[string]interface{}{}
	if update.Stock != nil {
		fields["stock"] = *update.Stock
		// Availability follows stock at the mutation boundary.
		fields["is_available"] = *update.Stock > 0
	}
	if update.Threshold != nil {
		fields["threshold"] = *update.Threshold
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.IsAvailable != nil && update.Stock == nil {
		fields["is_available"] = *update.IsAvailable
	}
	if len(fields) == 0 {
		return ing, nil
	}

	if err := s.db.Model(&ing).Updates(fields).Error; err != nil {
		return models.Ingredient{}, err
	}
	return s.GetIngredient(category, id)
}

func (s *catalogService) DeactivateIngredient(category models.IngredientCategory, id uint) error {
	ing, err := s.GetIngredient(category, id)
	if err != nil {
		return err
	}
	return s.db.Model(&ing).Updates(map[string]interface{}{
		"is_active":    false,
		"is_available": false,
	}).Error
}

func (s *catalogService) InventoryOverview() (*InventoryOverview, error) {
	overview := &InventoryOverview{}
	for _, category := range models.AllCategories {
		var items []models.Ingredient
		if err := s.db.Where("category = ?", category).Order("name asc").Find(&items).Error; err != nil {
			return nil, err
		}
		overview.Categories = append(overview.Categories, CategoryInventory{Category: category, Items: items})
		for _, item := range items {
			overview.Stats.TotalItems++
			if item.Stock == 0 {
				overview.Stats.OutOfStockItems++
			} else if item.LowOnStock() {
				overview.Stats.LowStockItems++
			}
			if item.IsAvailable {
				overview.Stats.AvailableItems++
			}
		}
	}
	return overview, nil
}

// decrementStock applies a conditional decrement inside a transaction: the
// update matches only when enough stock remains, so the counter can never go
// negative even under concurrent payment verifications. Availability is synced
// in the same statement.
func decrementStock(tx *gorm.DB, ingredientID uint, qty int) error {
	res := tx.Model(&models.Ingredient{}).
		Where("id = ? AND stock >= ?", ingredientID, qty).
		Updates(map[string]interface{}{
			"stock":        gorm.Expr("stock - ?", qty),
			"is_available": gorm.Expr("stock - ? > 0", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
