package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary returns the landing-page counts and highlight lists.
// GET /v1/dashboard/summary
func (h *Handlers) GetDashboardSummary(c *gin.Context) {
	summary, err := h.Reports.DashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetWasteBreakdown totals waste by reason over a trailing window.
// GET /v1/reports/waste-breakdown?window=30
func (h *Handlers) GetWasteBreakdown(c *gin.Context) {
	window := 0
	if raw := c.Query("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a non-negative integer"})
			return
		}
		window = w
	}

	breakdown, err := h.Reports.WasteBreakdown(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// GetForecast returns an item's recent actuals plus the 7-day prediction.
// GET /v1/forecast/:itemId
func (h *Handlers) GetForecast(c *gin.Context) {
	forecast, err := h.Reports.ForecastFor(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// GetAdminSummary is the admin view over the same dashboard read model.
// GET /v1/admin/summary
func (h *Handlers) GetAdminSummary(c *gin.Context) {
	summary, err := h.Reports.DashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
