package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/middleware"
	"github.com/freshtrack/freshtrack-golang/internal/service"
)

type CreateItemInput struct {
	Name             string  `json:"name" binding:"required"`
	Quantity         float64 `json:"quantity" binding:"gte=0"`
	Unit             string  `json:"unit" binding:"required,oneof=kg g l ml pcs box pack"`
	Category         string  `json:"category" binding:"required,oneof=dairy meat seafood produce bakery grocery frozen prepared beverage other"`
	PurchaseDate     string  `json:"purchaseDate"` // YYYY-MM-DD, defaults to today
	ExpiryDate       string  `json:"expiryDate"`   // YYYY-MM-DD, defaults per category shelf life
	Notes            string  `json:"notes"`
	SharingAvailable bool    `json:"sharingAvailable"`
}

type UpdateItemInput struct {
	Name             *string  `json:"name,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Unit             *string  `json:"unit,omitempty"`
	Category         *string  `json:"category,omitempty"`
	PurchaseDate     *string  `json:"purchaseDate,omitempty"`
	ExpiryDate       *string  `json:"expiryDate,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	SharingAvailable *bool    `json:"sharingAvailable,omitempty"`
}

// CreateItem registers a new inventory item.
// POST /v1/inventory
func (h *Handlers) CreateItem(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := parseDate(input.PurchaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchaseDate must be YYYY-MM-DD"})
		return
	}
	expiry, err := parseDate(input.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiryDate must be YYYY-MM-DD"})
		return
	}

	item, err := h.Ledger.CreateItem(c.Request.Context(), service.CreateItemInput{
		OwnerID:          identity.ID,
		Name:             input.Name,
		Quantity:         input.Quantity,
		Unit:             input.Unit,
		Category:         input.Category,
		PurchaseDate:     purchase,
		ExpiryDate:       expiry,
		Notes:            input.Notes,
		SharingAvailable: input.SharingAvailable,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItems returns the inventory, optionally filtered.
// GET /v1/inventory?filter=all|expiring|sharing&days=3
func (h *Handlers) ListItems(c *gin.Context) {
	filter := service.ListFilter{Kind: service.ListKind(c.DefaultQuery("filter", "all"))}
	if daysRaw := c.Query("days"); daysRaw != "" {
		days, err := strconv.Atoi(daysRaw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		filter.WithinDays = days
	}

	items, err := h.Ledger.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns one item by id.
// GET /v1/inventory/:id
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.Ledger.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem applies a partial edit.
// PUT /v1/inventory/:id
func (h *Handlers) UpdateItem(c *gin.Context) {
	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.UpdateItemInput{
		Name:             input.Name,
		Quantity:         input.Quantity,
		Unit:             input.Unit,
		Category:         input.Category,
		Notes:            input.Notes,
		SharingAvailable: input.SharingAvailable,
	}
	if input.PurchaseDate != nil {
		d, err := parseDate(*input.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchaseDate must be YYYY-MM-DD"})
			return
		}
		patch.PurchaseDate = &d
	}
	if input.ExpiryDate != nil {
		d, err := parseDate(*input.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiryDate must be YYYY-MM-DD"})
			return
		}
		patch.ExpiryDate = &d
	}

	item, err := h.Ledger.UpdateItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item. Historical consumption/waste/sharing records
// keep their snapshots.
// DELETE /v1/inventory/:id
func (h *Handlers) DeleteItem(c *gin.Context) {
	if err := h.Ledger.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
