package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/middleware"
)

type SharingRequestInput struct {
	ItemID string `json:"itemId" binding:"required"`
	Notes  string `json:"notes"`
}

// ListAvailable returns items offered for sharing.
// GET /v1/sharing/available
func (h *Handlers) ListAvailable(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	items, err := h.Sharing.ListAvailable(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// RequestItem files a sharing request for an offered item.
// POST /v1/sharing/requests
func (h *Handlers) RequestItem(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input SharingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.Sharing.RequestItem(c.Request.Context(), input.ItemID, identity, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListRequests returns all sharing requests, newest first.
// GET /v1/sharing/requests
func (h *Handlers) ListRequests(c *gin.Context) {
	reqs, err := h.Sharing.ListRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}
