package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/auth"
	"github.com/freshtrack/freshtrack-golang/internal/service"
)

// Handlers holds all dependencies the HTTP layer needs. Everything is
// injected from main so tests can swap in an in-memory store.
type Handlers struct {
	Ledger   *service.Ledger
	Recorder *service.Recorder
	Reports  *service.Reports
	Sharing  *service.Matcher
	Accounts *service.Accounts
	Tokens   *auth.Tokens
}

const dateLayout = "2006-01-02"

// parseDate parses the YYYY-MM-DD strings the date inputs submit. Empty is
// allowed and returns a zero time (services default it).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// respondError translates the service error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		conflictErr   *service.ConflictError
		authErr       *service.AuthError
		storeErr      *service.StoreError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Storage operation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}
