package service

import (
	"math"
	"time"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

// Freshness status derived from days until expiry.
type ExpiryStatus string

const (
	StatusExpired  ExpiryStatus = "expired"
	StatusCritical ExpiryStatus = "critical"
	StatusWarning  ExpiryStatus = "warning"
	StatusNormal   ExpiryStatus = "normal"
)

// Default shelf life per category, in days from purchase.
var shelfLifeDays = map[string]int{
	models.CategoryDairy:    7,
	models.CategoryMeat:     3,
	models.CategorySeafood:  2,
	models.CategoryProduce:  5,
	models.CategoryBakery:   4,
	models.CategoryGrocery:  180,
	models.CategoryFrozen:   90,
	models.CategoryPrepared: 3,
	models.CategoryBeverage: 14,
	models.CategoryOther:    7,
}

// CalculateExpiryDate derives an expiry date from the purchase date and the
// category shelf life. Unknown categories fall back to 7 days.
func CalculateExpiryDate(purchaseDate time.Time, category string) time.Time {
	days, ok := shelfLifeDays[category]
	if !ok {
		days = 7
	}
	return purchaseDate.AddDate(0, 0, days)
}

// DaysUntilExpiry counts calendar days between now and the expiry date, both
// taken at UTC midnight (all stored dates are UTC). Zero means it expires
// today, negative means already expired.
func DaysUntilExpiry(expiryDate, now time.Time) int {
	diff := midnight(expiryDate.UTC()).Sub(midnight(now.UTC()))
	return int(math.Ceil(diff.Hours() / 24))
}

// StatusForDays maps remaining days onto the urgency scale used across the
// dashboard.
func StatusForDays(days int) ExpiryStatus {
	switch {
	case days < 0:
		return StatusExpired
	case days <= 1:
		return StatusCritical
	case days <= 3:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// IsLowStock applies the stock heuristic: meat under 2, produce under 3,
// dairy under 2, anything else under 1.
func IsLowStock(item models.InventoryItem) bool {
	switch item.Category {
	case models.CategoryMeat:
		return item.Quantity < 2
	case models.CategoryProduce:
		return item.Quantity < 3
	case models.CategoryDairy:
		return item.Quantity < 2
	default:
		return item.Quantity < 1
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
