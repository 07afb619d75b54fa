package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/service"
)

type LogConsumptionInput struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today
	Notes    string  `json:"notes"`
}

type LogWasteInput struct {
	ItemID   string  `json:"itemId" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Reason   string  `json:"reason" binding:"required,oneof=expired spoiled overproduction damaged quality other"`
	Date     string  `json:"date"` // YYYY-MM-DD, defaults to today
	Notes    string  `json:"notes"`
}

// LogConsumption records a consumption entry and decrements the item.
// POST /v1/consumption
func (h *Handlers) LogConsumption(c *gin.Context) {
	var input LogConsumptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.Recorder.RecordConsumption(c.Request.Context(), service.ConsumptionInput{
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Date:     date,
		Notes:    input.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListConsumption returns consumption history, newest first.
// GET /v1/consumption?itemId=...
func (h *Handlers) ListConsumption(c *gin.Context) {
	entries, err := h.Recorder.ListConsumption(c.Request.Context(), service.EventQuery{
		ItemID: c.Query("itemId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// LogWaste records a waste entry and decrements the item.
// POST /v1/waste
func (h *Handlers) LogWaste(c *gin.Context) {
	var input LogWasteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	entry, err := h.Recorder.RecordWaste(c.Request.Context(), service.WasteInput{
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Reason:   input.Reason,
		Date:     date,
		Notes:    input.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListWaste returns waste history, newest first.
// GET /v1/waste?itemId=...
func (h *Handlers) ListWaste(c *gin.Context) {
	entries, err := h.Recorder.ListWaste(c.Request.Context(), service.EventQuery{
		ItemID: c.Query("itemId"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
