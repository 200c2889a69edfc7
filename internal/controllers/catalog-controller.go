package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
)

// CatalogController serves the public ingredient catalog and the admin
// inventory endpoints.
type CatalogController interface {
	ListIngredients(c *gin.Context)
	ListByCategory(c *gin.Context)
	GetIngredient(c *gin.Context)
	CreateIngredient(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	DeactivateIngredient(c *gin.Context)
	InventoryOverview(c *gin.Context)
}

type catalogController struct {
	service services.CatalogService
}

func NewCatalogController(service services.CatalogService) *catalogController {
	return &catalogController{service: service}
}

func parseCategory(c *gin.Context) (models.IngredientCategory, bool) {
	category := models.IngredientCategory(c.Param("type"))
	if !category.Valid() {
		respondError(c, http.StatusBadRequest, models.NewAPIError(
			models.ErrInvalidCategory, "Unknown ingredient category: "+c.Param("type")))
		return "", false
	}
	return category, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.NewAPIError(
			models.ErrBadRequest, "Invalid ID format"))
		return 0, false
	}
	return uint(id), true
}

// ListIngredients godoc
// @Summary List the available catalog grouped by category
// @Description Returns only active, in-stock ingredients for the pizza builder
// @Tags catalog
// @Produce json
// @Success 200 {object} Envelope
// @Router /api/v1/public/ingredients [get]
func (cc *catalogController) ListIngredients(c *gin.Context) {
	grouped := map[models.IngredientCategory][]models.Ingredient{}
	for _, category := range models.AllCategories {
		items, err := cc.service.ListByCategory(category, false)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		grouped[category] = items
	}
	respondOK(c, "", grouped)
}

// ListByCategory godoc
// @Summary List ingredients of one category
// @Tags catalog
// @Produce json
// @Param type path string true "Ingredient category" Enums(base, sauce, cheese, veggie, meat)
// @Param include_unavailable query bool false "Include out-of-stock items (admin views)"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/v1/public/ingredients/{type} [get]
func (cc *catalogController) ListByCategory(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	includeUnavailable := c.Query("include_unavailable") == "true"

	items, err := cc.service.ListByCategory(category, includeUnavailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", items)
}

// GetIngredient godoc
// @Summary Get one catalog item
// @Tags catalog
// @Produce json
// @Param type path string true "Ingredient category"
// @Param id path int true "Ingredient ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/v1/public/ingredients/{type}/{id} [get]
func (cc *catalogController) GetIngredient(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	ing, err := cc.service.GetIngredient(category, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", ing)
}

// CreateIngredient godoc
// @Summary Add an ingredient to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param type path string true "Ingredient category" Enums(base, sauce, cheese, veggie, meat)
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory/{type} [post]
func (cc *catalogController) CreateIngredient(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"min=0"`
		Stock       int     `json:"stock" binding:"min=0"`
		Threshold   int     `json:"threshold" binding:"min=0"`
		ImageURL    string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ingredient := &models.Ingredient{
		Category:    category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Threshold:   req.Threshold,
		ImageURL:    req.ImageURL,
		IsAvailable: req.Stock > 0,
		IsActive:    true,
	}
	if err := cc.service.CreateIngredient(ingredient); err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Ingredient created", ingredient)
}

// UpdateIngredient godoc
// @Summary Update stock, threshold, price or availability of an ingredient
// @Tags admin
// @Accept json
// @Produce json
// @Param type path string true "Ingredient category"
// @Param id path int true "Ingredient ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory/{type}/{id} [put]
func (cc *catalogController) UpdateIngredient(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.IngredientUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ingredient, err := cc.service.UpdateIngredient(category, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Ingredient updated", ingredient)
}

// DeactivateIngredient godoc
// @Summary Retire an ingredient from the catalog
// @Description Soft delete, the ingredient stays referenced by past orders
// @Tags admin
// @Produce json
// @Param type path string true "Ingredient category"
// @Param id path int true "Ingredient ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory/{type}/{id} [delete]
func (cc *catalogController) DeactivateIngredient(c *gin.Context) {
	category, ok := parseCategory(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.service.DeactivateIngredient(category, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Ingredient deactivated", nil)
}

// InventoryOverview godoc
// @Summary Inventory totals and alerts per category
// @Tags admin
// @Produce json
// @Success 200 {object} Envelope
// @Security BearerAuth
// @Router /api/v1/admin/inventory [get]
func (cc *catalogController) InventoryOverview(c *gin.Context) {
	overview, err := cc.service.InventoryOverview()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "", overview)
}
